package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/database"
	"github.com/sweatandcode/tasksher/internal/pkg/env"
	"github.com/sweatandcode/tasksher/internal/pkg/utils"
)

// HandleOAuthBegin starts the provider flow.
func HandleOAuthBegin(c *fiber.Ctx) error {
	return gothfiber.BeginAuthHandler(c)
}

// HandleOAuthCallback completes the provider flow and logs the user in
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	repo := repository.GetGlobalFactory().GetUserRepository()

	appUser, err := repo.GetByProvider(u.Provider, u.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Optional email match if provided
		if u.Email != "" {
			if existing, err := repo.GetByEmail(u.Email); err == nil {
				appUser = existing
				appUser.AuthProvider = u.Provider
				appUser.ProviderID = u.UserID
				if err := repo.Update(appUser); err != nil {
					return c.Status(fiber.StatusInternalServerError).SendString("link provider failed")
				}
			}
		}
		if appUser == nil {
			email := u.Email
			if email == "" {
				// Ensure unique, non-empty email to satisfy unique index semantics in MySQL
				email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
			}
			name := firstNonEmpty(u.Name, u.NickName, u.Email, "User")
			newUser, err := models.CreateOAuthUser(name, email, u.Provider, u.UserID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create user failed: %v", err))
			}
			if err := repo.Create(newUser); err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create user failed: %v", err))
			}
			appUser = newUser
			profile, err := models.GetOrCreateProfile(database.GetDB(), appUser.ID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("create profile failed")
			}
			if profile.AvatarURL == "" {
				profile.AvatarURL = u.AvatarURL
				if profile.AvatarURL == "" {
					profile.AvatarURL = utils.GetGravatarURL(appUser.Email, 200)
				}
				_ = database.GetDB().Save(profile).Error
			}
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("db error: %v", err))
	}

	if err := openUserSession(c, appUser); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session init failed")
	}

	_ = database.GetDB().Model(appUser).UpdateColumn("last_login_at", time.Now()).Error

	target := strings.TrimRight(env.GetEnv("CLIENT_URL", ""), "/") + "/dashboard"
	return c.Redirect(target, fiber.StatusSeeOther)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
