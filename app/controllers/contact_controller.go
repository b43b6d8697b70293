package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sweatandcode/tasksher/internal/pkg/contact"
	"github.com/sweatandcode/tasksher/internal/pkg/env"
	"github.com/sweatandcode/tasksher/internal/pkg/ratelimit"
)

const rateLimitedMessage = "Too many contact form submissions, please try again later."

// ContactController handles the public contact form endpoints.
type ContactController struct {
	service *contact.Service
	limiter *ratelimit.Limiter
}

// NewContactController wires the contact service with its per-IP limiter.
func NewContactController(service *contact.Service, limiter *ratelimit.Limiter) *ContactController {
	return &ContactController{
		service: service,
		limiter: limiter,
	}
}

// HandleContactSubmit processes a contact form submission.
func (cc *ContactController) HandleContactSubmit(c *fiber.Ctx) error {
	ip := GetClientIP(c)
	if !cc.limiter.Allow("contact:" + ip) {
		return c.Status(fiber.StatusTooManyRequests).SendString(rateLimitedMessage)
	}

	var sub contact.Submission
	if err := c.BodyParser(&sub); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": []contact.FieldError{{Field: "body", Message: "Request body must be valid JSON"}},
		})
	}

	sub.Normalize()
	if details := sub.Validate(); len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": details,
		})
	}

	meta := contact.RequestMeta{
		IP:        ip,
		UserAgent: c.Get("User-Agent"),
	}
	if err := cc.service.Deliver(sub, meta); err != nil {
		log.Printf("contact form error: %v", err)
		resp := fiber.Map{"error": "Failed to send message"}
		if env.IsDev() {
			resp["details"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Message sent successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleContactInfo returns the static contact card.
func (cc *ContactController) HandleContactInfo(c *fiber.Ctx) error {
	return c.JSON(cc.service.SiteInfo())
}
