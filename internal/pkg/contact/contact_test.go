package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSubmission() Submission {
	return Submission{
		Name:        "Al",
		Email:       "a@b.com",
		Subject:     "Hi there",
		Message:     "1234567890",
		InquiryType: "general",
		Timestamp:   "2025-06-01T12:00:00Z",
	}
}

func TestValidateAcceptsMinimalValidSubmission(t *testing.T) {
	s := validSubmission()
	s.Normalize()
	assert.Empty(t, s.Validate())
}

func TestValidateMessageLength(t *testing.T) {
	tooShort := validSubmission()
	tooShort.Message = "123456789" // 9 < 10
	tooShort.Normalize()
	errs := tooShort.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "message", errs[0].Field)

	tooLong := validSubmission()
	tooLong.Message = strings.Repeat("x", 2001)
	tooLong.Normalize()
	errs = tooLong.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "message", errs[0].Field)
}

func TestValidateSubjectTooShort(t *testing.T) {
	s := validSubmission()
	s.Subject = "Hi"
	s.Normalize()

	errs := s.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "subject", errs[0].Field)
}

func TestValidateRejectsUnknownInquiryType(t *testing.T) {
	s := validSubmission()
	s.InquiryType = "sales"
	s.Normalize()

	errs := s.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "inquiryType", errs[0].Field)
}

func TestValidateAcceptsEveryInquiryType(t *testing.T) {
	for _, it := range InquiryTypes {
		s := validSubmission()
		s.InquiryType = it
		s.Normalize()
		assert.Empty(t, s.Validate(), "inquiryType %q should be valid", it)
	}
}

func TestValidateCompanyOptional(t *testing.T) {
	s := validSubmission()
	s.Company = ""
	s.Normalize()
	assert.Empty(t, s.Validate())

	s.Company = strings.Repeat("c", 101)
	errs := s.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "company", errs[0].Field)
}

func TestValidateReportsAllFailingFields(t *testing.T) {
	s := Submission{Name: "A", Email: "nope", Subject: "Hi", Message: "short", InquiryType: "bogus"}
	s.Normalize()

	errs := s.Validate()
	fields := make(map[string]bool, len(errs))
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"name", "email", "subject", "message", "inquiryType"} {
		assert.True(t, fields[want], "expected a %s error", want)
	}
}

func TestNormalizeTrimsBeforeLengthCheck(t *testing.T) {
	s := validSubmission()
	s.Subject = "  Hi   " // trims to 2 chars
	s.Normalize()

	errs := s.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "subject", errs[0].Field)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "User@Example.COM", want: "user@example.com"},
		{in: "first.last+news@gmail.com", want: "firstlast@gmail.com"},
		{in: "f.o.o@googlemail.com", want: "foo@gmail.com"},
		{in: "keep.dots+tag@fastmail.com", want: "keep.dots+tag@fastmail.com"},
		{in: "  padded@example.com ", want: "padded@example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in))
	}
}

func TestNotificationTemplatesEscapeUserInput(t *testing.T) {
	s := validSubmission()
	s.Name = `<script>alert("x")</script>`
	s.Message = "line one\nline two"
	s.Normalize()

	htmlBody := NotificationHTML(s, RequestMeta{IP: "203.0.113.7", UserAgent: "curl/8"})
	assert.NotContains(t, htmlBody, "<script>")
	assert.Contains(t, htmlBody, "&lt;script&gt;")
	assert.Contains(t, htmlBody, "line one<br>line two")
	assert.Contains(t, htmlBody, "203.0.113.7")

	text := NotificationText(s, RequestMeta{IP: "203.0.113.7", UserAgent: "curl/8"})
	assert.Contains(t, text, "IP Address: 203.0.113.7")
	assert.Contains(t, text, "Please respond to: a@b.com")
}

func TestAutoReplyReferencesSubjectAndLinks(t *testing.T) {
	s := validSubmission()
	body := AutoReplyHTML(s, "Kartik Singh", "contactsweatandcode@gmail.com", "https://tasksher.com/")

	assert.Contains(t, body, "Hi there")
	assert.Contains(t, body, "https://tasksher.com/guide")
	assert.Contains(t, body, "https://tasksher.com/#features")
	assert.Contains(t, body, "Kartik Singh")
	assert.Contains(t, body, "This is an automated response")
}
