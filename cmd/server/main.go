package main

import (
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"tuition-payments/config"
	"tuition-payments/db"
	"tuition-payments/gateway"
	appHttp "tuition-payments/http"
	"tuition-payments/http/handlers"
	"tuition-payments/logger"
	"tuition-payments/services"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize Kafka producer (non-fatal)
	services.InitProducer()

	// Open the store; it lives for the whole process and is closed on shutdown
	store, err := db.Open()
	if err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}

	gw := gateway.NewRazorpayClient(config.AppConfig.GatewayKeyID, config.AppConfig.GatewayKeySecret)
	paymentService := services.NewPaymentService(store, gw, services.KafkaEvents{}, services.SMTPMailer{})

	// Setup routes
	appHttp.SetupRoutes(handlers.New(paymentService))

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	addr := ":" + config.AppConfig.Port
	go func() {
		logger.Info("Server starting on %s", addr)
		log.Fatal(netHttp.ListenAndServe(addr, nil))
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, closing resources...")

	if err := services.Close(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("Error closing database: %v", err)
	}

	logger.Info("Server shutdown complete")
}
