package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sweatandcode/tasksher/app/models"
)

func TestIsProUserActiveSubscriptionWins(t *testing.T) {
	profile := &models.Profile{Plan: models.PlanFree}
	sub := &models.StripeSubscription{Status: models.SubscriptionStatusActive}

	assert.True(t, IsProUser(profile, sub), "active subscription grants pro even with free profile")
}

func TestIsProUserProfileFlagAlone(t *testing.T) {
	profile := &models.Profile{Plan: models.PlanPro}

	assert.True(t, IsProUser(profile, nil), "pro profile flag grants pro without a subscription row")
}

func TestIsProUserNilInputs(t *testing.T) {
	assert.False(t, IsProUser(nil, nil), "nil profile and subscription resolve to free")
}

func TestIsProUserNonEntitlingStatus(t *testing.T) {
	profile := &models.Profile{Plan: models.PlanFree}
	sub := &models.StripeSubscription{Status: models.SubscriptionStatusCanceled}

	assert.False(t, IsProUser(profile, sub))
}

func TestPlanLabel(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.Profile
		sub     *models.StripeSubscription
		loading bool
		want    string
	}{
		{name: "loading", loading: true, want: LabelLoading},
		{name: "active subscription", sub: &models.StripeSubscription{Status: "active"}, want: LabelPro},
		{name: "pro profile, no subscription", profile: &models.Profile{Plan: "pro"}, want: LabelPro},
		{name: "free everywhere", profile: &models.Profile{Plan: "free"}, want: LabelFree},
		{name: "anonymous", want: LabelFree},
		{
			name:    "canceled subscription falls back to profile",
			profile: &models.Profile{Plan: "pro"},
			sub:     &models.StripeSubscription{Status: "canceled"},
			want:    LabelPro,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanLabel(tt.profile, tt.sub, tt.loading))
		})
	}
}

func TestIsEntitlingStatus(t *testing.T) {
	for _, status := range []string{"active", "trialing", "past_due"} {
		assert.True(t, IsEntitlingStatus(status), "status %q should entitle", status)
	}
	for _, status := range []string{"canceled", "unpaid", "incomplete", "incomplete_expired", "paused", "not_started", ""} {
		assert.False(t, IsEntitlingStatus(status), "status %q should not entitle", status)
	}
}

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
	}{
		{in: "free", want: PlanFree},
		{in: "pro", want: PlanPro},
		{in: " PRO ", want: PlanPro},
		{in: "enterprise", want: PlanFree},
		{in: "", want: PlanFree},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePlan(tt.in), "NormalizePlan(%q)", tt.in)
	}
}
