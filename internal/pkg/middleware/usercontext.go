package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/internal/pkg/database"
	"github.com/sweatandcode/tasksher/internal/pkg/session"
	"github.com/sweatandcode/tasksher/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	anonymous := func() error {
		c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	store := session.GetSessionStore()
	if store == nil {
		return anonymous()
	}
	sess, err := store.Get(c)
	if err != nil {
		return anonymous()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		return anonymous()
	}
	uid, ok := userID.(uint)
	if !ok || uid == 0 {
		return anonymous()
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)
	email := session.GetSessionValue(c, "user_email")

	// Plan with session-first strategy, falling back to the profile row.
	plan := session.GetSessionValue(c, "user_plan")
	if plan == "" {
		plan = models.PlanFree
		if db := database.GetDB(); db != nil {
			if profile, err := models.GetOrCreateProfile(db, uid); err == nil && profile != nil && profile.Plan != "" {
				plan = profile.Plan
			}
		}
		_ = session.SetSessionValue(c, "user_plan", plan)
	}

	c.Locals("USER_CONTEXT", usercontext.UserContext{
		UserID:     uid,
		Username:   username,
		Email:      email,
		IsLoggedIn: true,
		Plan:       plan,
	})
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, uid)
	c.Locals(usercontext.KeyUsername, username)

	return c.Next()
}
