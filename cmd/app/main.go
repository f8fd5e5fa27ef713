package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
)

func main() {
	configs := getConfigs()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	if err = app.MigrateDatabase(); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager, err := app.CreateJobManager(configs.NotificationRetention, logger)
	if err != nil {
		log.Fatalf("Error creating job manager: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// Absent .env is fine in environments configured through real env vars.
	_ = godotenv.Load(".env")

	var configs cmd.Config
	if err := env.Parse(&configs); err != nil {
		log.Fatalf("Error parsing configuration: %v", err)
	}
	return configs
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(httpin.IdentityMiddleware(app.CreateRegisterUserCommandHandler()))

	server := httpin.NewServer(app.HTTPHandlers())
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
