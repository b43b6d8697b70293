package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/database"
	"github.com/sweatandcode/tasksher/internal/pkg/session"
	"github.com/sweatandcode/tasksher/internal/pkg/usercontext"
	"github.com/sweatandcode/tasksher/internal/pkg/utils"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuthRegister creates a new account and opens a session.
func HandleAuthRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByEmail(user.Email); err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "An account with this email already exists"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Registration failed"})
	}

	if err := repo.Create(user); err != nil {
		log.Printf("register: create user failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Registration failed"})
	}

	// Profile row with free-plan defaults and a gravatar fallback.
	if profile, err := models.GetOrCreateProfile(database.GetDB(), user.ID); err != nil {
		log.Printf("register: create profile failed for user %d: %v", user.ID, err)
	} else if profile.AvatarURL == "" {
		profile.AvatarURL = utils.GetGravatarURL(user.Email, 200)
		if err := database.GetDB().Save(profile).Error; err != nil {
			log.Printf("register: save avatar failed for user %d: %v", user.ID, err)
		}
	}

	if err := openUserSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Session could not be created"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// HandleAuthLogin verifies credentials and opens a session.
func HandleAuthLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}

	// Do not reveal which part of the credentials was wrong.
	invalid := func() error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid email or password"})
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Login failed"})
	}

	if !models.CheckPasswordHash(req.Password, user.Password) {
		return invalid()
	}
	if user.Status != models.STATUS_ACTIVE {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Account is not active"})
	}

	if err := openUserSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Session could not be created"})
	}

	database.GetDB().Model(user).Update("last_login_at", time.Now())

	return c.JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// HandleAuthLogout destroys the current session.
func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			log.Printf("logout: destroy session failed: %v", err)
		}
	}
	c.Locals(usercontext.KeyFromProtected, false)
	return c.JSON(fiber.Map{"ok": true})
}

// HandleAuthMe returns the current session identity.
func HandleAuthMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "login required"})
	}
	return c.JSON(fiber.Map{
		"id":    userCtx.UserID,
		"name":  userCtx.Username,
		"email": userCtx.Email,
		"plan":  userCtx.Plan,
	})
}

func openUserSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(AUTH_KEY, true)
	sess.Set(USER_ID, user.ID)
	sess.Set(USER_NAME, user.Name)
	if err := sess.Save(); err != nil {
		return err
	}

	_ = session.SetSessionValue(c, "user_email", user.Email)

	// Cache the plan so the context middleware skips the profile lookup.
	plan := models.PlanFree
	if profile, err := models.GetOrCreateProfile(database.GetDB(), user.ID); err == nil && profile.Plan != "" {
		plan = profile.Plan
	}
	return session.SetSessionValue(c, "user_plan", plan)
}
