package controllers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/billing"
	"github.com/sweatandcode/tasksher/internal/pkg/database"
	"github.com/sweatandcode/tasksher/internal/pkg/entitlements"
	"github.com/sweatandcode/tasksher/internal/pkg/env"
	"github.com/sweatandcode/tasksher/internal/pkg/usercontext"
)

type checkoutRequest struct {
	PriceID    string `json:"price_id"`
	Mode       string `json:"mode"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// HandleCreateCheckoutSession opens a hosted checkout page for the pricing page.
func HandleCreateCheckoutSession(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}
	if strings.TrimSpace(req.PriceID) == "" || strings.TrimSpace(req.Mode) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "price_id and mode are required"})
	}

	clientBase := strings.TrimRight(env.GetEnv("CLIENT_URL", ""), "/")
	successURL := strings.TrimSpace(req.SuccessURL)
	cancelURL := strings.TrimSpace(req.CancelURL)
	if successURL == "" {
		successURL = clientBase + "/dashboard?checkout=success"
	}
	if cancelURL == "" {
		cancelURL = clientBase + "/pricing?checkout=canceled"
	}

	client := billing.NewStripeClientFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	session, err := client.CreateCheckoutSession(ctx, billing.CheckoutSessionParams{
		PriceID:           req.PriceID,
		Mode:              req.Mode,
		SuccessURL:        successURL,
		CancelURL:         cancelURL,
		CustomerEmail:     userCtx.Email,
		ClientReferenceID: strconv.FormatUint(uint64(userCtx.UserID), 10),
	})
	if err != nil {
		// Provider message passes through so the UI can show it.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "checkout_failed", "message": err.Error()})
	}

	return c.JSON(fiber.Map{"url": session.URL})
}

// HandleStripeWebhook ingests gateway events idempotently.
func HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	event, err := billing.ParseWebhookEvent(rawBody)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	signatureValid := billing.VerifyStripeWebhookSignature(rawBody, signature, secret)
	created, stored, err := svc.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		Provider:        billing.ProviderStripe,
		ProviderEventID: event.ID,
		EventType:       event.Type,
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !signatureValid {
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("invalid webhook signature"))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	switch {
	case billing.IsCheckoutEvent(event.Type):
		cs, err := billing.ParseCheckoutSessionObject(event.Data.Object)
		if err != nil {
			_ = svc.MarkWebhookProcessed(ctx, stored.ID, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}
		if err := svc.SyncCheckoutSession(ctx, cs, string(rawBody)); err != nil {
			_ = svc.MarkWebhookProcessed(ctx, stored.ID, err)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
		}
	case billing.IsSubscriptionEvent(event.Type):
		sub, err := billing.ParseSubscriptionObject(event.Data.Object)
		if err != nil {
			_ = svc.MarkWebhookProcessed(ctx, stored.ID, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
		}
		if _, err := svc.SyncSubscription(ctx, sub, string(rawBody)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No checkout link yet for this customer.
				_ = svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("no linked local account for stripe customer"))
				return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
			}
			_ = svc.MarkWebhookProcessed(ctx, stored.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "sync_failed"})
		}
	default:
		_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	_ = svc.MarkWebhookProcessed(ctx, stored.ID, nil)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

// HandleGetSubscription returns the user's subscription mirror row, or null.
func HandleGetSubscription(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	svc := billing.NewServiceFromDB(database.GetDB())
	sub, err := svc.GetSubscriptionForUser(context.Background(), userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load subscription"})
	}
	if sub == nil {
		return c.JSON(fiber.Map{"subscription": nil})
	}

	// Re-cache the plan so an upgrade shows up without a re-login.
	if profile, err := repository.GetGlobalFactory().GetProfileRepository().GetOrCreate(userCtx.UserID); err == nil {
		if entitlements.IsProUser(profile, sub) {
			refreshSessionPlan(c, models.PlanPro)
		} else {
			refreshSessionPlan(c, models.PlanFree)
		}
	}

	return c.JSON(fiber.Map{
		"subscription": fiber.Map{
			"subscription_id":      sub.SubscriptionID,
			"price_id":             sub.PriceID,
			"status":               sub.Status,
			"current_period_start": formatTimePtr(sub.CurrentPeriodStart),
			"current_period_end":   formatTimePtr(sub.CurrentPeriodEnd),
			"cancel_at_period_end": sub.CancelAtPeriodEnd,
			"payment_method_brand": sub.PaymentMethodBrand,
			"payment_method_last4": sub.PaymentMethodLast4,
		},
	})
}
