package main

import (
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/c14220110/monitoring-biaya-backend/config"
	"github.com/c14220110/monitoring-biaya-backend/internal/routes"
	"github.com/c14220110/monitoring-biaya-backend/pkg/medis"
	"github.com/c14220110/monitoring-biaya-backend/ws"
)

func main() {
	cfg := config.LoadConfig()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if cfg.AppEnv == "production" {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.TimeoutDetik) * time.Second}
	tokenManager := medis.NewTokenManager(httpClient, cfg.MedisBaseURL, cfg.MedisUsername, cfg.MedisPassword)
	medisClient := medis.NewClient(httpClient, cfg.MedisBaseURL, tokenManager,
		time.Duration(cfg.JedaMs)*time.Millisecond, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	routes.Init(e, medisClient, cfg.BatchHari, cfg.BatchUkuran, hub, logger)

	logger.Info().Str("port", cfg.Port).Msg("Server monitoring biaya berjalan")
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server berhenti")
	}
}
