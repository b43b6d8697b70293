package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
)

type fakeRepo struct {
	subsByUser     map[uint]*models.StripeSubscription
	subsByCustomer map[string]*models.StripeSubscription
	profiles       map[uint]*models.Profile
	events         map[string]*models.BillingWebhookEvent
	savedProfiles  int
	nextEventID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		subsByUser:     map[uint]*models.StripeSubscription{},
		subsByCustomer: map[string]*models.StripeSubscription{},
		profiles:       map[uint]*models.Profile{},
		events:         map[string]*models.BillingWebhookEvent{},
	}
}

func (f *fakeRepo) UpsertSubscription(sub *models.StripeSubscription) error {
	if existing, ok := f.subsByUser[sub.UserID]; ok {
		sub.ID = existing.ID
	} else {
		sub.ID = uint(len(f.subsByUser) + 1)
	}
	f.subsByUser[sub.UserID] = sub
	f.subsByCustomer[sub.CustomerID] = sub
	return nil
}

func (f *fakeRepo) GetSubscriptionByUserID(userID uint) (*models.StripeSubscription, error) {
	if sub, ok := f.subsByUser[userID]; ok {
		return sub, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetSubscriptionByCustomerID(customerID string) (*models.StripeSubscription, error) {
	if sub, ok := f.subsByCustomer[customerID]; ok {
		return sub, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetOrCreateProfile(userID uint) (*models.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	p := &models.Profile{
		UserID:       userID,
		Plan:         models.PlanFree,
		CreditsLimit: models.FreeCreditsLimit,
	}
	f.profiles[userID] = p
	return p, nil
}

func (f *fakeRepo) SaveProfile(p *models.Profile) error {
	f.profiles[p.UserID] = p
	f.savedProfiles++
	return nil
}

func (f *fakeRepo) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	key := event.Provider + "/" + event.ProviderEventID
	if stored, ok := f.events[key]; ok {
		return false, stored, nil
	}
	f.nextEventID++
	event.ID = f.nextEventID
	f.events[key] = event
	return true, event, nil
}

func (f *fakeRepo) MarkWebhookProcessed(id uint, processingError string) error {
	for _, ev := range f.events {
		if ev.ID == id {
			ev.ProcessingError = processingError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestRecordWebhookEvent_Idempotent(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	in := WebhookEventInput{
		Provider:        "Stripe",
		ProviderEventID: "evt_123",
		EventType:       "customer.subscription.updated",
		PayloadJSON:     `{"id":"evt_123"}`,
		SignatureValid:  true,
	}

	created, ev, err := svc.RecordWebhookEvent(ctx, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "stripe", ev.Provider)

	created, ev2, err := svc.RecordWebhookEvent(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, ev.ID, ev2.ID)
}

func TestRecordWebhookEvent_HashFallbackEventID(t *testing.T) {
	svc := NewService(newFakeRepo())

	created, ev, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{
		Provider:    "stripe",
		EventType:   "checkout.session.completed",
		PayloadJSON: `{"no":"id"}`,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, ev.ProviderEventID, "hash:")
}

func TestRecordWebhookEvent_MissingProvider(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, _, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{PayloadJSON: "{}"})
	assert.Error(t, err)
}

func TestSyncCheckoutSession_LinksCustomerToUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.SyncCheckoutSession(context.Background(), &CheckoutSessionObject{
		ID:                "cs_1",
		Customer:          "cus_42",
		Subscription:      "sub_42",
		Mode:              "subscription",
		ClientReferenceID: "7",
	}, `{}`)
	require.NoError(t, err)

	sub, err := repo.GetSubscriptionByCustomerID("cus_42")
	require.NoError(t, err)
	assert.Equal(t, uint(7), sub.UserID)
	assert.Equal(t, models.SubscriptionStatusNotStarted, sub.Status)
}

func TestSyncCheckoutSession_KeepsExistingStatus(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.UpsertSubscription(&models.StripeSubscription{
		UserID:     7,
		CustomerID: "cus_42",
		Status:     models.SubscriptionStatusActive,
		PriceID:    "price_pro",
	}))
	svc := NewService(repo)

	err := svc.SyncCheckoutSession(context.Background(), &CheckoutSessionObject{
		Customer:          "cus_42",
		Subscription:      "sub_42",
		ClientReferenceID: "7",
	}, `{}`)
	require.NoError(t, err)

	sub, err := repo.GetSubscriptionByUserID(7)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, "price_pro", sub.PriceID)
}

func TestSyncCheckoutSession_RejectsBadReference(t *testing.T) {
	svc := NewService(newFakeRepo())

	for _, ref := range []string{"", "abc", "0"} {
		err := svc.SyncCheckoutSession(context.Background(), &CheckoutSessionObject{
			Customer:          "cus_42",
			ClientReferenceID: ref,
		}, `{}`)
		assert.Error(t, err, "client_reference_id %q", ref)
	}
}

func TestSyncSubscription_ActiveUpgradesProfile(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.UpsertSubscription(&models.StripeSubscription{
		UserID:     3,
		CustomerID: "cus_3",
		Status:     models.SubscriptionStatusNotStarted,
	}))
	svc := NewService(repo)

	plan, err := svc.SyncSubscription(context.Background(), &SubscriptionObject{
		ID:                 "sub_3",
		Customer:           "cus_3",
		Status:             "active",
		CurrentPeriodStart: 1_700_000_000,
		CurrentPeriodEnd:   1_702_592_000,
	}, `{}`)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, plan)

	profile := repo.profiles[3]
	require.NotNil(t, profile)
	assert.Equal(t, models.PlanPro, profile.Plan)

	sub := repo.subsByUser[3]
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
}

func TestSyncSubscription_CanceledDowngradesProfile(t *testing.T) {
	repo := newFakeRepo()
	require.NoError(t, repo.UpsertSubscription(&models.StripeSubscription{
		UserID:     3,
		CustomerID: "cus_3",
		Status:     models.SubscriptionStatusActive,
	}))
	repo.profiles[3] = &models.Profile{UserID: 3, Plan: models.PlanPro, CreditsLimit: 1000}
	svc := NewService(repo)

	plan, err := svc.SyncSubscription(context.Background(), &SubscriptionObject{
		ID:       "sub_3",
		Customer: "cus_3",
		Status:   "canceled",
	}, `{}`)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, plan)
	assert.Equal(t, models.PlanFree, repo.profiles[3].Plan)
}

func TestSyncSubscription_UnknownCustomer(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.SyncSubscription(context.Background(), &SubscriptionObject{
		Customer: "cus_unknown",
		Status:   "active",
	}, `{}`)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestReconcileProfilePlan_NoWriteWhenUnchanged(t *testing.T) {
	repo := newFakeRepo()
	repo.profiles[5] = &models.Profile{UserID: 5, Plan: models.PlanFree, CreditsLimit: models.FreeCreditsLimit}
	svc := NewService(repo)

	plan, err := svc.ReconcileProfilePlan(context.Background(), 5, "canceled")
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, plan)
	assert.Zero(t, repo.savedProfiles)
}

func TestGetSubscriptionForUser_NilWhenAbsent(t *testing.T) {
	svc := NewService(newFakeRepo())

	sub, err := svc.GetSubscriptionForUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestEventTypePredicates(t *testing.T) {
	assert.True(t, IsSubscriptionEvent("customer.subscription.created"))
	assert.True(t, IsSubscriptionEvent("Customer.Subscription.Deleted"))
	assert.False(t, IsSubscriptionEvent("invoice.paid"))
	assert.True(t, IsCheckoutEvent("checkout.session.completed"))
	assert.False(t, IsCheckoutEvent("checkout.session.expired"))
}

func TestParseWebhookEvent_SubscriptionPayload(t *testing.T) {
	payload := []byte(`{
		"id": "evt_9",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_9",
			"customer": "cus_9",
			"status": "trialing",
			"cancel_at_period_end": true,
			"items": {"data": [{"price": {"id": "price_pro_monthly"}}]},
			"default_payment_method": {"card": {"brand": "visa", "last4": "4242"}}
		}}
	}`)

	ev, err := ParseWebhookEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "evt_9", ev.ID)

	sub, err := ParseSubscriptionObject(ev.Data.Object)
	require.NoError(t, err)
	assert.Equal(t, "cus_9", sub.Customer)
	assert.Equal(t, "price_pro_monthly", sub.PriceID())
	assert.True(t, sub.CancelAtPeriodEnd)
	assert.Equal(t, "4242", sub.DefaultPaymentMethod.Card.Last4)
}
