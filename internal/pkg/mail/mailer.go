package mail

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/sweatandcode/tasksher/internal/pkg/env"
)

// Config holds the SMTP transport settings. It is built once at startup and
// validated before the first send instead of reading the environment per
// request.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// ConfigFromEnv reads the SMTP settings from the environment.
func ConfigFromEnv() Config {
	return Config{
		Host:     env.GetEnv("SMTP_HOST", ""),
		Port:     env.GetEnv("SMTP_PORT", "587"),
		Username: env.GetEnv("SMTP_USER", ""),
		Password: env.GetEnv("SMTP_PASS", ""),
		Sender:   env.GetEnv("SMTP_SENDER", ""),
	}
}

// Validate reports a configuration that cannot send mail.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.New("mail: SMTP_HOST is required")
	}
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("mail: SMTP_PORT is required")
	}
	if strings.TrimSpace(c.Sender) == "" {
		return errors.New("mail: SMTP_SENDER is required")
	}
	if (c.Username == "") != (c.Password == "") {
		return errors.New("mail: SMTP_USER and SMTP_PASS must be set together")
	}
	return nil
}

// Message is one outbound email. Text and HTML may both be set; the message
// is then sent as multipart/alternative.
type Message struct {
	To       string
	FromName string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

// Sender delivers a single message. Satisfied by *Mailer; handler tests swap
// in a fake.
type Sender interface {
	Send(msg Message) error
}

// Mailer sends messages through one SMTP relay.
type Mailer struct {
	cfg Config
}

// NewMailer validates the config and returns a ready mailer.
func NewMailer(cfg Config) (*Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Mailer{cfg: cfg}, nil
}

// Send delivers the message. Failures are terminal; the caller decides
// whether to retry.
func (m *Mailer) Send(msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("mail: recipient is required")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	raw, err := buildMessage(m.cfg.Sender, msg)
	if err != nil {
		return err
	}

	if err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{msg.To}, raw); err != nil {
		log.Printf("SMTP send error: %v", err)
		return err
	}
	log.Printf("Email sent to %s via %s", msg.To, addr)
	return nil
}

func buildMessage(sender string, msg Message) ([]byte, error) {
	var buf bytes.Buffer

	from := sender
	if msg.FromName != "" {
		from = fmt.Sprintf("%q <%s>", msg.FromName, sender)
	}

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case msg.Text != "" && msg.HTML != "":
		mw := multipart.NewWriter(&buf)
		fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())

		part, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=UTF-8"}})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(msg.Text)); err != nil {
			return nil, err
		}

		part, err = mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=UTF-8"}})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(msg.HTML)); err != nil {
			return nil, err
		}
		if err := mw.Close(); err != nil {
			return nil, err
		}
	case msg.HTML != "":
		buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		buf.WriteString(msg.HTML)
	default:
		buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		buf.WriteString(msg.Text)
	}

	return buf.Bytes(), nil
}
