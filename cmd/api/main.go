package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"mining-ops-api-server/config"
	"mining-ops-api-server/internal/aggregate"
	"mining-ops-api-server/internal/api/routes"
	"mining-ops-api-server/internal/auth"
	"mining-ops-api-server/internal/database"
	"mining-ops-api-server/internal/s3"
	"mining-ops-api-server/internal/socket"
	"mining-ops-api-server/internal/store/mongostore"
)

func main() {
	// A missing .env is fine outside local development.
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	auth.Configure(cfg.JWT.Secret, cfg.JWT.Expiration)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.DBName)
	stores := mongostore.New(db)

	if err := database.SeedAdmin(ctx, stores.Users, cfg, logger); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	}

	engine := aggregate.NewEngine(stores)

	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			logger.Fatal("failed to initialize S3 uploader", zap.Error(err))
		}
	} else {
		logger.Info("S3 bucket not configured, photo uploads disabled")
	}

	hub := socket.NewHub(logger)

	router := routes.SetupRouter(stores, engine, uploader, hub, logger)

	logger.Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
