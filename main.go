// main.go
package main

import (
	"log"

	"travel-booking/cmd"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/wire"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/database"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/mailer"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to Redis; a missing address degrades to no caching
	rdb, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable; catalog caching disabled", zap.Error(err))
		rdb = nil
	}

	// Initialize repositories over the probed schema
	probe := repository.NewSchemaProbe(db, logger)
	repos := repository.NewRepository(db, probe, logger)
	txm := repository.NewTxManager(db, probe, logger)

	// Payment gateway client; routes stay unmounted without credentials
	var gw gateway.Client
	if config.HasGateway() {
		gw = gateway.NewClient(config.Gateway)
	}

	mail := mailer.NewMailer(config.Email)

	// Wire all dependencies
	app := wire.Wiring(repos, txm, gw, mail, rdb, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
