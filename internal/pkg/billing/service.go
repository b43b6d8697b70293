package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/internal/pkg/entitlements"
)

// Service synchronizes gateway webhook payloads into the local subscription
// mirror and reconciles the profile plan flag.
type Service struct {
	repo Repository
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

// SyncCheckoutSession links a completed checkout to its local user so later
// subscription events can be resolved by customer ID.
func (s *Service) SyncCheckoutSession(ctx context.Context, cs *CheckoutSessionObject, rawPayload string) error {
	_ = ctx
	if cs == nil || strings.TrimSpace(cs.Customer) == "" {
		return errors.New("checkout session has no customer")
	}
	userID, err := strconv.ParseUint(strings.TrimSpace(cs.ClientReferenceID), 10, 64)
	if err != nil || userID == 0 {
		return errors.New("checkout session has no usable client_reference_id")
	}

	sub := &models.StripeSubscription{
		UserID:         uint(userID),
		CustomerID:     cs.Customer,
		SubscriptionID: cs.Subscription,
		Status:         models.SubscriptionStatusNotStarted,
		RawPayloadJSON: rawPayload,
	}

	// Do not regress an already-synced subscription status.
	if existing, err := s.repo.GetSubscriptionByUserID(uint(userID)); err == nil {
		sub.Status = existing.Status
		sub.PriceID = existing.PriceID
		sub.CurrentPeriodStart = existing.CurrentPeriodStart
		sub.CurrentPeriodEnd = existing.CurrentPeriodEnd
		sub.CancelAtPeriodEnd = existing.CancelAtPeriodEnd
		sub.PaymentMethodBrand = existing.PaymentMethodBrand
		sub.PaymentMethodLast4 = existing.PaymentMethodLast4
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.repo.UpsertSubscription(sub)
}

// SyncSubscription upserts the mirror row for a gateway subscription event
// and reconciles the profile plan. Returns the effective plan.
func (s *Service) SyncSubscription(ctx context.Context, obj *SubscriptionObject, rawPayload string) (string, error) {
	if obj == nil || strings.TrimSpace(obj.Customer) == "" {
		return "", errors.New("subscription payload has no customer")
	}

	existing, err := s.repo.GetSubscriptionByCustomerID(obj.Customer)
	if err != nil {
		// Without a prior checkout link there is no local user to attach to.
		return "", err
	}

	sub := &models.StripeSubscription{
		UserID:             existing.UserID,
		CustomerID:         obj.Customer,
		SubscriptionID:     obj.ID,
		PriceID:            obj.PriceID(),
		Status:             strings.ToLower(strings.TrimSpace(obj.Status)),
		CurrentPeriodStart: epochToTimePtr(obj.CurrentPeriodStart),
		CurrentPeriodEnd:   epochToTimePtr(obj.CurrentPeriodEnd),
		CancelAtPeriodEnd:  obj.CancelAtPeriodEnd,
		PaymentMethodBrand: obj.DefaultPaymentMethod.Card.Brand,
		PaymentMethodLast4: obj.DefaultPaymentMethod.Card.Last4,
		RawPayloadJSON:     rawPayload,
	}
	if sub.Status == "" {
		sub.Status = models.SubscriptionStatusNotStarted
	}
	if err := s.repo.UpsertSubscription(sub); err != nil {
		return "", err
	}

	return s.ReconcileProfilePlan(ctx, existing.UserID, sub.Status)
}

// ReconcileProfilePlan writes the plan flag derived from the gateway status
// onto the profile, adjusting the credit allotment on plan changes.
func (s *Service) ReconcileProfilePlan(ctx context.Context, userID uint, status string) (string, error) {
	_ = ctx
	if userID == 0 {
		return "", errors.New("user_id is required")
	}

	plan := models.PlanFree
	if entitlements.IsEntitlingStatus(status) {
		plan = models.PlanPro
	}

	profile, err := s.repo.GetOrCreateProfile(userID)
	if err != nil {
		return "", err
	}
	if profile.Plan == plan {
		return plan, nil
	}
	profile.Plan = plan
	profile.CreditsLimit = entitlements.CreditsLimit(entitlements.NormalizePlan(plan))
	if err := s.repo.SaveProfile(profile); err != nil {
		return "", err
	}
	return plan, nil
}

// GetSubscriptionForUser returns the mirror row, or nil when none exists yet.
func (s *Service) GetSubscriptionForUser(ctx context.Context, userID uint) (*models.StripeSubscription, error) {
	_ = ctx
	sub, err := s.repo.GetSubscriptionByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// IsSubscriptionEvent reports whether the webhook event type affects the
// subscription mirror.
func IsSubscriptionEvent(eventType string) bool {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		return true
	default:
		return false
	}
}

// IsCheckoutEvent reports whether the event links a checkout to a customer.
func IsCheckoutEvent(eventType string) bool {
	return strings.ToLower(strings.TrimSpace(eventType)) == "checkout.session.completed"
}
