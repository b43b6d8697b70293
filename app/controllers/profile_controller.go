package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/database"
	"github.com/sweatandcode/tasksher/internal/pkg/entitlements"
	"github.com/sweatandcode/tasksher/internal/pkg/session"
	"github.com/sweatandcode/tasksher/internal/pkg/usercontext"
)

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// HandleGetProfile returns the profile of the authenticated user with the
// derived plan label.
func HandleGetProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	profile, err := repository.GetGlobalFactory().GetProfileRepository().GetOrCreate(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load profile"})
	}

	sub, err := getSubscriptionMirror(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load subscription"})
	}

	return c.JSON(fiber.Map{
		"user_id":           profile.UserID,
		"full_name":         profile.FullName,
		"avatar_url":        profile.AvatarURL,
		"plan":              profile.Plan,
		"plan_label":        entitlements.PlanLabel(profile, sub, false),
		"is_pro":            entitlements.IsProUser(profile, sub),
		"credits_used":      profile.CreditsUsed,
		"credits_limit":     profile.CreditsLimit,
		"credits_remaining": profile.CreditsRemaining(),
	})
}

// HandleUpdateProfile updates the editable profile fields.
func HandleUpdateProfile(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}

	repo := repository.GetGlobalFactory().GetProfileRepository()
	profile, err := repo.GetOrCreate(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load profile"})
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if len(name) > 100 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Full name must be at most 100 characters"})
		}
		profile.FullName = name
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*req.AvatarURL)
	}

	if err := repo.Update(profile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save profile"})
	}

	return c.JSON(fiber.Map{
		"user_id":    profile.UserID,
		"full_name":  profile.FullName,
		"avatar_url": profile.AvatarURL,
	})
}

// HandleGetUsage returns the recent usage log and credit totals.
func HandleGetUsage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	since := time.Now().AddDate(0, 0, -30)

	factory := repository.GetGlobalFactory()
	profile, err := factory.GetProfileRepository().GetOrCreate(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load profile"})
	}

	entries, err := factory.GetUsageLogRepository().GetByUserID(userCtx.UserID, since)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load usage"})
	}
	total, err := factory.GetUsageLogRepository().SumCreditsByUserID(userCtx.UserID, since)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load usage"})
	}

	return c.JSON(fiber.Map{
		"credits_used":      profile.CreditsUsed,
		"credits_limit":     profile.CreditsLimit,
		"credits_remaining": profile.CreditsRemaining(),
		"credits_30d":       total,
		"entries":           entries,
	})
}

func getSubscriptionMirror(userID uint) (*models.StripeSubscription, error) {
	var sub models.StripeSubscription
	err := database.GetDB().Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// refreshSessionPlan re-caches the plan after entitlement changes.
func refreshSessionPlan(c *fiber.Ctx, plan string) {
	_ = session.SetSessionValue(c, "user_plan", plan)
}
