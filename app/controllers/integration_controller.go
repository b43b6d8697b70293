package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/usercontext"
)

type integrationRequest struct {
	ServiceName   string `json:"service_name"`
	Configuration string `json:"configuration"`
	IsActive      *bool  `json:"is_active"`
}

// HandleListIntegrations returns all integrations of the authenticated user.
func HandleListIntegrations(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	integrations, err := repository.GetGlobalFactory().GetIntegrationRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load integrations"})
	}
	return c.JSON(fiber.Map{"integrations": integrations})
}

// HandleCreateIntegration connects a new service.
func HandleCreateIntegration(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req integrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}

	integration := &models.Integration{
		UserID:        userCtx.UserID,
		ServiceName:   req.ServiceName,
		Configuration: req.Configuration,
		IsActive:      true,
	}
	if req.IsActive != nil {
		integration.IsActive = *req.IsActive
	}
	if err := integration.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Service name is required"})
	}

	if err := repository.GetGlobalFactory().GetIntegrationRepository().Create(integration); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create integration"})
	}
	return c.Status(fiber.StatusCreated).JSON(integration)
}

// HandleUpdateIntegration updates the connection configuration.
func HandleUpdateIntegration(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetIntegrationRepository()
	integration, err := repo.GetByUUID(userCtx.UserID, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Integration not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load integration"})
	}

	var req integrationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}

	if req.ServiceName != "" {
		integration.ServiceName = req.ServiceName
	}
	if req.Configuration != "" {
		integration.Configuration = req.Configuration
	}
	if req.IsActive != nil {
		integration.IsActive = *req.IsActive
	}
	if err := integration.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Service name is required"})
	}

	if err := repo.Update(integration); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save integration"})
	}
	return c.JSON(integration)
}

// HandleDeleteIntegration disconnects a service.
func HandleDeleteIntegration(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	err := repository.GetGlobalFactory().GetIntegrationRepository().Delete(userCtx.UserID, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Integration not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete integration"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
