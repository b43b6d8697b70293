package main

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaviconConfigWithoutAsset(t *testing.T) {
	basePath := t.TempDir() + string(os.PathSeparator)

	cfg := faviconConfig(basePath)
	assert.Empty(t, cfg.File)

	// A tree without the SPA build must still boot.
	app := fiber.New()
	app.Use(favicon.New(cfg))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/favicon.ico", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestFaviconConfigWithAsset(t *testing.T) {
	basePath := t.TempDir() + string(os.PathSeparator)
	iconPath := filepath.Join(basePath, "public", "assets", "favicon.ico")
	require.NoError(t, os.MkdirAll(filepath.Dir(iconPath), 0o755))
	require.NoError(t, os.WriteFile(iconPath, []byte{0x00, 0x00, 0x01, 0x00}, 0o644))

	cfg := faviconConfig(basePath)
	assert.Equal(t, basePath+"public/assets/favicon.ico", cfg.File)

	app := fiber.New()
	app.Use(favicon.New(cfg))

	resp, err := app.Test(httptest.NewRequest("GET", "/favicon.ico", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
