package billing

import (
	"encoding/json"
	"time"
)

const ProviderStripe = "stripe"

// WebhookEvent is the outer Stripe event envelope.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// SubscriptionObject is the subset of a Stripe subscription payload the
// mirror table cares about.
type SubscriptionObject struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	Items              struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
	DefaultPaymentMethod struct {
		Card struct {
			Brand string `json:"brand"`
			Last4 string `json:"last4"`
		} `json:"card"`
	} `json:"default_payment_method"`
}

// PriceID returns the first line item's price, the only one a
// single-product subscription has.
func (s *SubscriptionObject) PriceID() string {
	if len(s.Items.Data) == 0 {
		return ""
	}
	return s.Items.Data[0].Price.ID
}

// CheckoutSessionObject is the subset of a checkout.session payload needed
// to link a gateway customer to a local user.
type CheckoutSessionObject struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Subscription      string `json:"subscription"`
	Mode              string `json:"mode"`
	ClientReferenceID string `json:"client_reference_id"`
}

// ParseWebhookEvent decodes the outer event envelope.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// ParseSubscriptionObject decodes a subscription payload from event data.
func ParseSubscriptionObject(data []byte) (*SubscriptionObject, error) {
	var sub SubscriptionObject
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ParseCheckoutSessionObject decodes a checkout.session payload from event data.
func ParseCheckoutSessionObject(data []byte) (*CheckoutSessionObject, error) {
	var cs CheckoutSessionObject
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

func epochToTimePtr(epoch int64) *time.Time {
	if epoch <= 0 {
		return nil
	}
	t := time.Unix(epoch, 0).UTC()
	return &t
}
