package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/monitoring-biaya-backend/internal/auth/controllers"
)

// RegisterAuthRoutes mendaftarkan endpoint login operator dashboard.
func RegisterAuthRoutes(g *echo.Group, ac *controllers.AuthController) {
	auth := g.Group("/auth")
	auth.POST("/login", ac.Login) // Tidak pakai JWT
}
