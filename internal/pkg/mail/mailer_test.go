package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p", Sender: "no-reply@example.com"}
	assert.NoError(t, valid.Validate())

	noAuth := Config{Host: "smtp.example.com", Port: "25", Sender: "no-reply@example.com"}
	assert.NoError(t, noAuth.Validate(), "auth is optional for open relays")

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing host", cfg: Config{Port: "587", Sender: "a@b.c"}},
		{name: "missing port", cfg: Config{Host: "h", Sender: "a@b.c"}},
		{name: "missing sender", cfg: Config{Host: "h", Port: "587"}},
		{name: "user without pass", cfg: Config{Host: "h", Port: "587", Sender: "a@b.c", Username: "u"}},
		{name: "pass without user", cfg: Config{Host: "h", Port: "587", Sender: "a@b.c", Password: "p"}},
	}
	for _, tt := range tests {
		assert.Error(t, tt.cfg.Validate(), tt.name)
	}
}

func TestNewMailerFailsFastOnBadConfig(t *testing.T) {
	_, err := NewMailer(Config{})
	assert.Error(t, err)
}

func TestBuildMessageMultipart(t *testing.T) {
	raw, err := buildMessage("no-reply@tasksher.com", Message{
		To:       "kartik@example.com",
		FromName: "TaskSher Contact Form",
		ReplyTo:  "visitor@example.com",
		Subject:  "[TaskSher Contact] Hello",
		Text:     "plain body",
		HTML:     "<p>html body</p>",
	})
	assert.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "From: \"TaskSher Contact Form\" <no-reply@tasksher.com>")
	assert.Contains(t, s, "To: kartik@example.com")
	assert.Contains(t, s, "Reply-To: visitor@example.com")
	assert.Contains(t, s, "multipart/alternative")
	assert.Contains(t, s, "plain body")
	assert.Contains(t, s, "<p>html body</p>")
	// text part must come before the html part
	assert.Less(t, strings.Index(s, "plain body"), strings.Index(s, "<p>html body</p>"))
}

func TestBuildMessageHTMLOnlyHasNoReplyTo(t *testing.T) {
	raw, err := buildMessage("no-reply@tasksher.com", Message{
		To:      "visitor@example.com",
		Subject: "Thank you for contacting TaskSher!",
		HTML:    "<p>auto reply</p>",
	})
	assert.NoError(t, err)

	s := string(raw)
	assert.NotContains(t, s, "Reply-To:")
	assert.Contains(t, s, "Content-Type: text/html; charset=UTF-8")
}
