package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/errx/errxfiber"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Config
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logx.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize Logger
	logx.UseJSON(cfg.Log.Format == "json")
	logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
	defer logx.Sync()
	logx.Info("Starting Job Board API Server...")

	// 3. Initialize Dependency Container
	container := NewContainer(cfg)
	if err := container.Start(); err != nil {
		logx.Fatalf("Failed to start background workers: %v", err)
	}

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Job Board API",
		DisableStartupMessage: true,
		ErrorHandler:          errxfiber.ErrorHandler,
	})

	// 5. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 6. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		checks := container.Health(c.UserContext())
		status := "ok"
		for _, up := range checks {
			if !up {
				status = "degraded"
			}
		}
		return c.JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	})

	// 7. Register Routes
	// Jobs: /api/jobs, /api/companies/:companyId/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	container.Close(shutdownTimeout)

	logx.Info("Server exited")
}
