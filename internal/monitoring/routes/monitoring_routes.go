package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/monitoring-biaya-backend/internal/common/middlewares"
	"github.com/c14220110/monitoring-biaya-backend/internal/monitoring/controllers"
)

// RegisterMonitoringRoutes mendaftarkan endpoint proses monitoring biaya,
// keduanya dilindungi JWT sesi dashboard.
func RegisterMonitoringRoutes(g *echo.Group, mc *controllers.MonitoringController) {
	monitoring := g.Group("/monitoring")
	monitoring.POST("/process-stream", mc.ProcessStream, middlewares.JWTMiddleware())
	monitoring.POST("/process", mc.Process, middlewares.JWTMiddleware())
}
