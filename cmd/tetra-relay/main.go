package main

import (
	"github.com/sirupsen/logrus"

	"github.com/hexfall/tetra-channel/channel"
	"github.com/hexfall/tetra-channel/internal/api"
	"github.com/hexfall/tetra-channel/internal/config"
	"github.com/hexfall/tetra-channel/service"
)

func main() {
	// Configure the logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.Info("Starting Tetra Channel relay")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	// Initialize the channel client and the stats service on top of it
	client := channel.New(channel.Config{
		BaseURL:   cfg.BaseURL,
		SessionID: cfg.SessionID,
	}, logger)
	stats := service.NewStatsService(client, logger)

	// Initialize the server with the stats service and logger
	server := api.NewServer(stats, logger)

	// Start the server
	if err := server.Run(":" + cfg.AppPort); err != nil {
		logger.Fatalf("Error running server: %v", err)
	}
}
