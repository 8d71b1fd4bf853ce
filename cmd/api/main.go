package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ManthanKaria/fraud-job-detector/internal/config"
	"github.com/ManthanKaria/fraud-job-detector/internal/handlers"
	"github.com/ManthanKaria/fraud-job-detector/internal/server"
	"github.com/ManthanKaria/fraud-job-detector/internal/services"
)

//go:generate swag init --dir ../.. --generalInfo cmd/api/main.go --output ../../docs --exclude ../../_examples

// @title        Fraud Job Posting Detector API
// @version      1.0.0
// @description  Relays job descriptions to the fraud prediction service.

// @BasePath  /api/v1
func main() {
	// 1. Load Environment Variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	log.Printf("Prediction API: %s", cfg.PredictionAPIURL)

	// 2. Initialize Services
	predictionService := services.NewPredictionService(cfg.PredictionAPIURL, cfg.Timeout)

	// 3. Initialize Handlers
	predictionHandler := handlers.NewPredictionHandler(predictionService)

	// 4. Setup Router
	r, err := server.NewRouter(cfg, predictionHandler)
	if err != nil {
		log.Fatal("Failed to build router: ", err)
	}

	// 5. Serve until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, cfg.ServerAddr, r); err != nil {
		log.Fatal(err)
	}
}
