package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ticketar/ticketar/app/controllers"
	"github.com/ticketar/ticketar/app/repository"
	"github.com/ticketar/ticketar/internal/pkg/cache"
	"github.com/ticketar/ticketar/internal/pkg/database"
	"github.com/ticketar/ticketar/internal/pkg/env"
	"github.com/ticketar/ticketar/internal/pkg/parking"
	"github.com/ticketar/ticketar/internal/pkg/realtime"
	"github.com/ticketar/ticketar/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	if closeErr := database.Close(); closeErr != nil {
		log.Printf("failed to close database: %v", closeErr)
	}
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())

	// ticket engine with the realtime hook behind it
	engine := parking.NewServiceFromDB(database.GetDB(), realtime.NewRedisPublisher())
	controllers.InitTicketEngine(engine)

	app := fiber.New(fiber.Config{
		AppName: "ticketar",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
