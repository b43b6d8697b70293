package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/cache"
	"github.com/sweatandcode/tasksher/internal/pkg/database"
	"github.com/sweatandcode/tasksher/internal/pkg/env"
	"github.com/sweatandcode/tasksher/internal/pkg/jobqueue"
	"github.com/sweatandcode/tasksher/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	jobqueue.Shutdown()
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())

	// Background workers for automation runs and credit flushes
	queue := jobqueue.Initialize(3)
	go scheduleCreditsFlush(queue, time.Minute)

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/tasksher to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 1 << 20, // 1 MiB, JSON payloads only
	})

	// ignore and cache favicon
	app.Use(favicon.New(faviconConfig(basePath)))

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// SPA static assets
	app.Static("/", basePath+"public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

// faviconConfig points the middleware at the SPA icon when the build has
// been deployed. Without File the middleware answers /favicon.ico with an
// empty response instead of panicking on a missing asset.
func faviconConfig(basePath string) favicon.Config {
	cfg := favicon.Config{
		URL:          "/favicon.ico",
		CacheControl: "public, max-age=604800",
	}
	iconPath := basePath + "public/assets/favicon.ico"
	if _, err := os.Stat(iconPath); err == nil {
		cfg.File = iconPath
	}
	return cfg
}

// scheduleCreditsFlush periodically folds buffered credit usage into profiles.
func scheduleCreditsFlush(queue *jobqueue.Queue, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if _, err := queue.EnqueueJob(jobqueue.JobTypeCreditsFlush, map[string]interface{}{}); err != nil {
			log.Printf("credits flush enqueue failed: %v", err)
		}
	}
}
