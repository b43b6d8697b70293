package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweatandcode/tasksher/internal/pkg/contact"
	"github.com/sweatandcode/tasksher/internal/pkg/mail"
	"github.com/sweatandcode/tasksher/internal/pkg/ratelimit"
)

type stubSender struct {
	sent    []mail.Message
	failure error
}

func (s *stubSender) Send(msg mail.Message) error {
	if s.failure != nil {
		return s.failure
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newContactTestApp(sender mail.Sender) *fiber.App {
	service := contact.NewService(sender, contact.ServiceConfig{
		Inbox:         "inbox@example.com",
		Owner:         "Kartik Singh",
		ClientBaseURL: "https://tasksher.example",
	})
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), 5, 15*time.Minute)
	controller := NewContactController(service, limiter)

	app := fiber.New()
	app.Post("/api/contact", controller.HandleContactSubmit)
	app.Get("/api/contact/info", controller.HandleContactInfo)
	return app
}

func contactBody(overrides map[string]string) []byte {
	payload := map[string]string{
		"name":        "Al",
		"email":       "a@b.com",
		"subject":     "Hi there",
		"message":     "1234567890",
		"inquiryType": "general",
	}
	for k, v := range overrides {
		payload[k] = v
	}
	b, _ := json.Marshal(payload)
	return b
}

func postContact(t *testing.T, app *fiber.App, body []byte, ip string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestContactSubmit_Success(t *testing.T) {
	sender := &stubSender{}
	app := newContactTestApp(sender)

	status, body := postContact(t, app, contactBody(nil), "203.0.113.10")
	assert.Equal(t, fiber.StatusOK, status)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Message sent successfully", resp["message"])
	assert.NotEmpty(t, resp["timestamp"])

	// Notification first, auto-reply second.
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "inbox@example.com", sender.sent[0].To)
	assert.Equal(t, "a@b.com", sender.sent[0].ReplyTo)
	assert.Equal(t, "a@b.com", sender.sent[1].To)
	assert.Empty(t, sender.sent[1].ReplyTo)
}

func TestContactSubmit_ValidationErrors(t *testing.T) {
	sender := &stubSender{}
	app := newContactTestApp(sender)

	status, body := postContact(t, app, contactBody(map[string]string{
		"subject": "Hi",
		"message": "short",
	}), "203.0.113.11")
	assert.Equal(t, fiber.StatusBadRequest, status)

	var resp struct {
		Error   string               `json:"error"`
		Details []contact.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.Len(t, resp.Details, 2)
	assert.Empty(t, sender.sent)
}

func TestContactSubmit_InvalidJSON(t *testing.T) {
	app := newContactTestApp(&stubSender{})

	status, body := postContact(t, app, []byte("{not json"), "203.0.113.12")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "Validation failed")
}

func TestContactSubmit_RateLimited(t *testing.T) {
	sender := &stubSender{}
	app := newContactTestApp(sender)

	for i := 0; i < 5; i++ {
		status, _ := postContact(t, app, contactBody(nil), "198.51.100.7")
		assert.Equal(t, fiber.StatusOK, status, "request %d", i+1)
	}

	status, body := postContact(t, app, contactBody(nil), "198.51.100.7")
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "Too many contact form submissions, please try again later.", string(body))
	assert.Len(t, sender.sent, 10)

	// Other clients are unaffected.
	status, _ = postContact(t, app, contactBody(nil), "198.51.100.8")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestContactSubmit_DeliveryFailure(t *testing.T) {
	sender := &stubSender{failure: errors.New("smtp connect refused")}
	app := newContactTestApp(sender)

	status, body := postContact(t, app, contactBody(nil), "203.0.113.13")
	assert.Equal(t, fiber.StatusInternalServerError, status)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Failed to send message", resp["error"])
	// Not running in dev mode here, so no internal detail leaks.
	_, hasDetails := resp["details"]
	assert.False(t, hasDetails)
}

func TestContactInfo(t *testing.T) {
	app := newContactTestApp(&stubSender{})

	req := httptest.NewRequest("GET", "/api/contact/info", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var info contact.Info
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, "inbox@example.com", info.Email)
	assert.Equal(t, "Kartik Singh", info.Owner)
	assert.Equal(t, "TaskSher", info.Company)
	assert.Equal(t, "2-4 hours", info.ResponseTime)
}

func TestGetClientIP(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/ip", func(c *fiber.Ctx) error {
		got = GetClientIP(c)
		return c.SendString(got)
	})

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare header wins", map[string]string{"CF-Connecting-IP": "203.0.113.1", "X-Forwarded-For": "10.0.0.1"}, "203.0.113.1"},
		{"forwarded list uses first entry", map[string]string{"X-Forwarded-For": "203.0.113.2, 10.0.0.1"}, "203.0.113.2"},
		{"real ip fallback", map[string]string{"X-Real-IP": "203.0.113.3"}, "203.0.113.3"},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", fmt.Sprintf("/ip?case=%d", i), nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tc.want, got)
		})
	}
}
