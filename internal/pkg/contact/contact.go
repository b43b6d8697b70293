package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InquiryTypes are the accepted values for the contact form dropdown.
var InquiryTypes = []string{"general", "support", "billing", "feature", "partnership", "demo", "other"}

// Submission is one contact form payload. It lives for the duration of the
// request and is never persisted. Timestamp is the client-supplied ISO-8601
// string and is passed through without re-validation.
type Submission struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Company     string `json:"company" validate:"omitempty,max=100"`
	Subject     string `json:"subject" validate:"required,min=5,max=200"`
	Message     string `json:"message" validate:"required,min=10,max=2000"`
	InquiryType string `json:"inquiryType" validate:"required,oneof=general support billing feature partnership demo other"`
	Timestamp   string `json:"timestamp"`
}

// FieldError is one field-level validation failure, reported as a list in
// the 400 response body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Normalize trims all fields and folds the email address. Must run before
// Validate so length checks see the trimmed values.
func (s *Submission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = NormalizeEmail(s.Email)
	s.Company = strings.TrimSpace(s.Company)
	s.Subject = strings.TrimSpace(s.Subject)
	s.Message = strings.TrimSpace(s.Message)
	s.InquiryType = strings.ToLower(strings.TrimSpace(s.InquiryType))
}

// Validate checks the submission and returns every failing field.
func (s *Submission) Validate() []FieldError {
	v := validator.New()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: jsonField(fe.Field()), Message: fieldMessage(fe)})
	}
	return out
}

func jsonField(structField string) string {
	switch structField {
	case "InquiryType":
		return "inquiryType"
	default:
		return strings.ToLower(structField)
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "Name must be between 2 and 100 characters"
	case "Email":
		return "A valid email address is required"
	case "Company":
		return "Company must be at most 100 characters"
	case "Subject":
		return "Subject must be between 5 and 200 characters"
	case "Message":
		return "Message must be between 10 and 2000 characters"
	case "InquiryType":
		return fmt.Sprintf("Inquiry type must be one of: %s", strings.Join(InquiryTypes, ", "))
	default:
		return fmt.Sprintf("Invalid value for %s", jsonField(fe.Field()))
	}
}

// NormalizeEmail lowercases the address and applies gmail-style folding:
// dots in the local part are insignificant and a +tag suffix is dropped.
func NormalizeEmail(email string) string {
	e := strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(e, "@")
	if at <= 0 {
		return e
	}

	local, domain := e[:at], e[at+1:]
	if domain == "gmail.com" || domain == "googlemail.com" {
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	}
	return local + "@" + domain
}
