package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"parcel-delivery/config"
	"parcel-delivery/database"
	"parcel-delivery/httpServices/identity"
	"parcel-delivery/httpServices/payment"
	"parcel-delivery/logger"
	"parcel-delivery/repository"
	"parcel-delivery/routes"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogDir)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, db, err := database.InitDB(ctx, cfg)
	cancel()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		os.Exit(1)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logger.Warning("Failed to ensure indexes: " + err.Error())
	}
	if cfg.MongoTransactions {
		supported, err := repository.SupportsTransactions(ctx, client)
		if err != nil || !supported {
			logger.Warning("MongoDB deployment does not support transactions, writes will not be grouped")
			cfg.MongoTransactions = false
		}
	}
	cancel()

	sink, err := database.NewLogSink(cfg, db)
	if err != nil {
		logger.Error("Failed to set up request log sink", err)
		os.Exit(1)
	}
	asyncLogger := logger.NewAsyncLogger(sink)
	go asyncLogger.ProcessLog()

	app := fiber.New(fiber.Config{
		AppName:         cfg.ServiceName,
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		BodyLimit:       4 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		// browsers reject credentials with a wildcard origin
		AllowCredentials: cfg.FrontendURL != "*",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		ServiceName: cfg.ServiceName,
		Store:       repository.NewMongoStore(client, db, cfg.MongoTransactions),
		Verifier:    identity.NewClient(cfg.IdentityPublicKeyURL, cfg.IdentityIssuer, cfg.IdentityAudience, cfg.IdentityKeyTTL),
		Processor:   payment.NewStripeProcessor(cfg.PaymentKey),
		Logger:      asyncLogger,
		Currency:    cfg.PaymentCurrency,

		StrictDeliveryTransitions: cfg.StrictDeliveryTransitions,
	})

	go func() {
		logger.Success("Server is running on " + cfg.Addr())
		if err := app.Listen(cfg.Addr()); err != nil {
			logger.Error("Server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Server shutdown failed", err)
	}
	asyncLogger.Close()

	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Failed to disconnect from MongoDB", err)
	}
}
