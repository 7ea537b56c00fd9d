package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	authControllers "github.com/c14220110/monitoring-biaya-backend/internal/auth/controllers"
	authRoutes "github.com/c14220110/monitoring-biaya-backend/internal/auth/routes"
	authServices "github.com/c14220110/monitoring-biaya-backend/internal/auth/services"
	monitoringControllers "github.com/c14220110/monitoring-biaya-backend/internal/monitoring/controllers"
	monitoringRoutes "github.com/c14220110/monitoring-biaya-backend/internal/monitoring/routes"
	monitoringServices "github.com/c14220110/monitoring-biaya-backend/internal/monitoring/services"
	"github.com/c14220110/monitoring-biaya-backend/pkg/medis"
	"github.com/c14220110/monitoring-biaya-backend/ws"
)

// Init menginisialisasi semua routes menggunakan Echo framework.
func Init(e *echo.Echo, client *medis.Client, batchHari, batchUkuran int, hub *ws.Hub, log zerolog.Logger) {
	// Inisialisasi service
	pipelineService := monitoringServices.NewPipelineService(client, batchHari, batchUkuran, log)
	authService := authServices.NewAuthService(client)

	// Inisialisasi controller dengan service yang sesuai
	monitoringController := monitoringControllers.NewMonitoringController(pipelineService, hub)
	authController := authControllers.NewAuthController(authService)

	// Grup API utama
	api := e.Group("/api")
	authRoutes.RegisterAuthRoutes(api, authController)
	monitoringRoutes.RegisterMonitoringRoutes(api, monitoringController)

	// Kanal progres realtime untuk dashboard
	e.GET("/ws", ws.ServeWS(hub))
}
