package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/seeker/pkg/errx"
	"github.com/Abraxas-365/seeker/pkg/logx"
	"github.com/Abraxas-365/seeker/recruitment/candidate"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

// room for the resume plus the text fields
const bodyLimit = candidate.MaxResumeSize + 2*1024*1024

func main() {
	// 1. Environment and Logger
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logx.Warnf("Failed to load .env: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(os.Getenv("LOG_LEVEL")))
	logx.Info("Starting Seeker API Server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Dependency Container
	container := NewContainer(ctx)
	defer container.Close()

	// 3. Create Fiber App
	app := newApp(func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// 4. Register Routes
	if container.LocalFilesDir != "" {
		app.Static("/files", container.LocalFilesDir)
	}

	// /api/profile/me
	container.ProfileHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// /candidate, /candidate/:id
	container.CandidateHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// /api/resumes/* (admin)
	container.ResumeHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// 5. Background resume extraction
	container.ResumeWorker.Start(ctx)

	// 6. Start Server with Graceful Shutdown
	port := envOr("PORT", "8080")
	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	container.ResumeWorker.Wait()

	logx.Info("Server exited")
}

// newApp builds the fiber app with the global middleware and health check
func newApp(health fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Seeker API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             bodyLimit,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", health)
	return app
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
			"type":  errx.TypeForStatus(e.Code),
		})
	}

	// If it's our custom errx.Error
	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), e)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
