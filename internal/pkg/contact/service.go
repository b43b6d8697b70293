package contact

import (
	"fmt"

	"github.com/sweatandcode/tasksher/internal/pkg/env"
	"github.com/sweatandcode/tasksher/internal/pkg/mail"
)

// Info is the fixed payload served by GET /api/contact/info.
type Info struct {
	Email        string `json:"email"`
	Owner        string `json:"owner"`
	Company      string `json:"company"`
	ResponseTime string `json:"responseTime"`
	SupportHours string `json:"supportHours"`
	Timezone     string `json:"timezone"`
}

// SiteInfo returns the operator contact card.
func SiteInfo(inbox, owner string) Info {
	return Info{
		Email:        inbox,
		Owner:        owner,
		Company:      "TaskSher",
		ResponseTime: "2-4 hours",
		SupportHours: "9 AM - 6 PM PST",
		Timezone:     "Pacific Standard Time",
	}
}

// ServiceConfig holds the non-transport contact settings: where
// notifications go and which site the auto-reply links back to.
type ServiceConfig struct {
	Inbox         string
	Owner         string
	ClientBaseURL string
}

// ServiceConfigFromEnv reads the contact settings from the environment.
func ServiceConfigFromEnv() ServiceConfig {
	return ServiceConfig{
		Inbox:         env.GetEnv("CONTACT_INBOX", "contactsweatandcode@gmail.com"),
		Owner:         env.GetEnv("CONTACT_OWNER", "Kartik Singh"),
		ClientBaseURL: env.GetEnv("CLIENT_URL", "http://localhost:5173"),
	}
}

// Service turns a validated submission into the two outbound mails.
type Service struct {
	sender mail.Sender
	cfg    ServiceConfig
}

func NewService(sender mail.Sender, cfg ServiceConfig) *Service {
	return &Service{sender: sender, cfg: cfg}
}

// Deliver sends the operator notification first and the auto-reply second.
// When the notification fails the auto-reply is never attempted; either
// failure is terminal for the request.
func (s *Service) Deliver(sub Submission, meta RequestMeta) error {
	notification := mail.Message{
		To:       s.cfg.Inbox,
		FromName: "TaskSher Contact Form",
		ReplyTo:  sub.Email,
		Subject:  fmt.Sprintf("[TaskSher Contact] %s", sub.Subject),
		Text:     NotificationText(sub, meta),
		HTML:     NotificationHTML(sub, meta),
	}
	if err := s.sender.Send(notification); err != nil {
		return fmt.Errorf("notification mail: %w", err)
	}

	autoReply := mail.Message{
		To:       sub.Email,
		FromName: fmt.Sprintf("%s - TaskSher", s.cfg.Owner),
		Subject:  "Thank you for contacting TaskSher!",
		HTML:     AutoReplyHTML(sub, s.cfg.Owner, s.cfg.Inbox, s.cfg.ClientBaseURL),
	}
	if err := s.sender.Send(autoReply); err != nil {
		return fmt.Errorf("auto-reply mail: %w", err)
	}

	return nil
}

// SiteInfo exposes the operator card for the info endpoint.
func (s *Service) SiteInfo() Info {
	return SiteInfo(s.cfg.Inbox, s.cfg.Owner)
}
