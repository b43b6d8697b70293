package entitlements

import (
	"strings"

	"github.com/sweatandcode/tasksher/app/models"
)

type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

const (
	LabelLoading = "Loading..."
	LabelPro     = "Pro Plan"
	LabelFree    = "Free Plan"
)

func NormalizePlan(plan string) Plan {
	switch strings.ToLower(strings.TrimSpace(plan)) {
	case string(PlanPro):
		return PlanPro
	default:
		return PlanFree
	}
}

// IsEntitlingStatus reports whether a gateway subscription status grants
// paid entitlements. past_due keeps access during the dunning window.
func IsEntitlingStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.SubscriptionStatusActive, models.SubscriptionStatusTrialing, models.SubscriptionStatusPastDue:
		return true
	default:
		return false
	}
}

// IsProUser derives the effective plan from the stored profile flag and the
// live gateway mirror. An "active" subscription wins over the profile flag;
// the profile flag alone is enough when no mirror row exists yet. Both
// inputs may be nil (unauthenticated), which resolves to free.
//
// Dashboard and settings must both go through this function so the
// precedence rule cannot drift between call sites.
func IsProUser(profile *models.Profile, sub *models.StripeSubscription) bool {
	if sub != nil && sub.Status == models.SubscriptionStatusActive {
		return true
	}
	return profile != nil && NormalizePlan(profile.Plan) == PlanPro
}

// PlanLabel returns the display label for the effective plan. While the
// subscription query is still in flight the label is indeterminate.
func PlanLabel(profile *models.Profile, sub *models.StripeSubscription, subLoading bool) string {
	if subLoading {
		return LabelLoading
	}
	if IsProUser(profile, sub) {
		return LabelPro
	}
	return LabelFree
}

// CreditsLimit returns the monthly credit allotment for a plan. Pro accounts
// are effectively unmetered.
func CreditsLimit(plan Plan) int {
	if plan == PlanPro {
		return 1000
	}
	return models.FreeCreditsLimit
}
