package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/usercontext"
)

type automationRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Configuration string `json:"configuration"`
	IsActive      *bool  `json:"is_active"`
}

// HandleListAutomations returns all automations of the authenticated user.
func HandleListAutomations(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	automations, err := repository.GetGlobalFactory().GetAutomationRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load automations"})
	}
	return c.JSON(fiber.Map{"automations": automations})
}

// HandleCreateAutomation creates a new automation.
func HandleCreateAutomation(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req automationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}

	automation := &models.Automation{
		UserID:        userCtx.UserID,
		Name:          req.Name,
		Type:          req.Type,
		Configuration: req.Configuration,
		IsActive:      true,
	}
	if req.IsActive != nil {
		automation.IsActive = *req.IsActive
	}
	if err := automation.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Automation name and a valid type are required"})
	}

	if err := repository.GetGlobalFactory().GetAutomationRepository().Create(automation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create automation"})
	}
	return c.Status(fiber.StatusCreated).JSON(automation)
}

// HandleGetAutomation returns a single automation by UUID.
func HandleGetAutomation(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	automation, err := repository.GetGlobalFactory().GetAutomationRepository().GetByUUID(userCtx.UserID, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Automation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load automation"})
	}
	return c.JSON(automation)
}

// HandleUpdateAutomation updates name, configuration or active flag.
func HandleUpdateAutomation(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetAutomationRepository()
	automation, err := repo.GetByUUID(userCtx.UserID, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Automation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load automation"})
	}

	var req automationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}

	if req.Name != "" {
		automation.Name = req.Name
	}
	if req.Type != "" {
		automation.Type = req.Type
	}
	if req.Configuration != "" {
		automation.Configuration = req.Configuration
	}
	if req.IsActive != nil {
		automation.IsActive = *req.IsActive
	}
	if err := automation.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Automation name and a valid type are required"})
	}

	if err := repo.Update(automation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save automation"})
	}
	return c.JSON(automation)
}

// HandleToggleAutomation flips the active flag.
func HandleToggleAutomation(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetAutomationRepository()
	automation, err := repo.GetByUUID(userCtx.UserID, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Automation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load automation"})
	}

	automation.IsActive = !automation.IsActive
	if err := repo.Update(automation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save automation"})
	}
	return c.JSON(automation)
}

// HandleDeleteAutomation removes an automation.
func HandleDeleteAutomation(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	err := repository.GetGlobalFactory().GetAutomationRepository().Delete(userCtx.UserID, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Automation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete automation"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
