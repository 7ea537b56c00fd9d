package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/monitoring-biaya-backend/internal/monitoring/models"
	"github.com/c14220110/monitoring-biaya-backend/internal/monitoring/services"
	"github.com/c14220110/monitoring-biaya-backend/ws"
)

// MonitoringController menangani endpoint proses monitoring biaya:
// mode streaming (SSE) dan fallback sinkron.
type MonitoringController struct {
	Service *services.PipelineService
	Hub     *ws.Hub
}

func NewMonitoringController(service *services.PipelineService, hub *ws.Hub) *MonitoringController {
	return &MonitoringController{Service: service, Hub: hub}
}

// ProcessStream menjalankan pipeline dan mengalirkan event sebagai
// server-sent events, satu frame "data: <json>\n\n" per event. Koneksi yang
// diputus client membatalkan context request sehingga pipeline berhenti tanpa
// panggilan upstream baru.
func (mc *MonitoringController) ProcessStream(c echo.Context) error {
	var req models.ProsesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Request body tidak valid",
		})
	}
	if pesan := validasiRequest(req); pesan != "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   pesan,
		})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	for ev := range mc.Service.Jalankan(ctx, req) {
		b, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Fprintf(res, "data: %s\n\n", b)
		res.Flush()
		if mc.Hub != nil {
			mc.Hub.Siarkan(b)
		}
	}
	return nil
}

// Process adalah fallback sinkron: menjalankan pipeline yang sama sampai
// selesai dan mengembalikan satu envelope JSON tanpa event antara. Tidak ada
// pembatalan di tengah jalan; request berjalan sampai selesai atau gagal.
func (mc *MonitoringController) Process(c echo.Context) error {
	var req models.ProsesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Request body tidak valid",
		})
	}
	if pesan := validasiRequest(req); pesan != "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   pesan,
		})
	}

	data, err := mc.Service.JalankanSinkron(context.Background(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"data":         data,
		"totalRecords": len(data),
	})
}

// validasiRequest memeriksa kelengkapan dan bentuk ketiga field wajib sebelum
// pipeline dimulai. Mengembalikan pesan kosong bila valid.
func validasiRequest(req models.ProsesRequest) string {
	if req.TglAwal == "" || req.TglAkhir == "" || req.KdInstalasi == "" {
		return "Missing required parameters: TglAwal, TglAkhir, KdInstalasi"
	}
	if _, err := time.Parse("2006-01-02", req.TglAwal); err != nil {
		return "TglAwal harus berformat YYYY-MM-DD"
	}
	if _, err := time.Parse("2006-01-02", req.TglAkhir); err != nil {
		return "TglAkhir harus berformat YYYY-MM-DD"
	}
	if _, ok := models.KdInstalasiValid[req.KdInstalasi]; !ok {
		return "KdInstalasi tidak dikenal"
	}
	return ""
}
