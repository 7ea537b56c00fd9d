package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/monitoring-biaya-backend/internal/auth/services"
	"github.com/c14220110/monitoring-biaya-backend/pkg/medis"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login memverifikasi kredensial operator dan mengembalikan token sesi
// beserta identitas pegawai.
func (ac *AuthController) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Request body tidak valid",
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Username dan password harus diisi",
		})
	}

	pegawai, token, err := ac.Service.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, medis.ErrLoginGagal) {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"error":   "Login gagal",
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Terjadi kesalahan server",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login berhasil",
		"token":   token,
		"user": map[string]interface{}{
			"id":          pegawai.IDPegawai,
			"username":    req.Username,
			"namaLengkap": pegawai.NamaLengkap,
			"ruangan":     pegawai.NamaRuangan,
			"kdruangan":   pegawai.KdRuangan,
		},
	})
}
