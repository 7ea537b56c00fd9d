package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/c14220110/monitoring-biaya-backend/internal/monitoring/services"
	"github.com/c14220110/monitoring-biaya-backend/pkg/medis"
)

func upstreamPalsu(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "token": "tok",
			"expires": time.Now().Add(time.Hour).Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/api/MonitoringBiaya/GetDataPasien", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"items": []medis.PasienItem{
				{NoPendaftaran: "A1", NamaPasien: "Budi", StatusPeriksa: "Y"},
			},
		})
	})
	mux.HandleFunc("/api/MonitoringBiaya/GetBiayaTindakan", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "items": []medis.BiayaItem{}})
	})
	mux.HandleFunc("/api/MonitoringBiaya/GetBiayaObat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "items": []medis.BiayaItem{}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func controllerUji(t *testing.T) *MonitoringController {
	t.Helper()
	srv := upstreamPalsu(t)
	tokens := medis.NewTokenManager(srv.Client(), srv.URL, "admin", "rahasia")
	client := medis.NewClient(srv.Client(), srv.URL, tokens, 0, zerolog.Nop())
	return NewMonitoringController(services.NewPipelineService(client, 10, 2000, zerolog.Nop()), nil)
}

func kirimRequest(handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler(c)
	return rec
}

func TestProcessStream_FieldKurang400(t *testing.T) {
	mc := controllerUji(t)
	rec := kirimRequest(mc.ProcessStream, `{"TglAwal":"2024-01-01","KdInstalasi":"02"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, harus 400", rec.Code)
	}
	if strings.Contains(rec.Header().Get(echo.HeaderContentType), "text/event-stream") {
		t.Error("request tidak valid tidak boleh membuka stream")
	}
}

func TestProcessStream_InstalasiTidakDikenal400(t *testing.T) {
	mc := controllerUji(t)
	rec := kirimRequest(mc.ProcessStream,
		`{"TglAwal":"2024-01-01","TglAkhir":"2024-01-05","KdInstalasi":"99"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, harus 400", rec.Code)
	}
}

func TestProcessStream_FrameSSE(t *testing.T) {
	mc := controllerUji(t)
	rec := kirimRequest(mc.ProcessStream,
		`{"TglAwal":"2024-01-01","TglAkhir":"2024-01-05","KdInstalasi":"02"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	frames := strings.Split(strings.TrimSpace(rec.Body.String()), "\n\n")
	if len(frames) < 2 {
		t.Fatalf("expected beberapa frame SSE, got %d", len(frames))
	}
	var tipeTerakhir struct {
		Type string `json:"type"`
	}
	for _, f := range frames {
		if !strings.HasPrefix(f, "data: ") {
			t.Fatalf("frame tanpa prefix data: %q", f)
		}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(f, "data: ")), &tipeTerakhir); err != nil {
			t.Fatalf("frame bukan JSON valid: %v", err)
		}
	}
	if tipeTerakhir.Type != "complete" {
		t.Errorf("frame terakhir bertipe %q, harus complete", tipeTerakhir.Type)
	}
}

func TestProcess_Sinkron(t *testing.T) {
	mc := controllerUji(t)
	rec := kirimRequest(mc.Process,
		`{"TglAwal":"2024-01-01","TglAkhir":"2024-01-05","KdInstalasi":"02"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Success      bool              `json:"success"`
		TotalRecords int               `json:"totalRecords"`
		Data         []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode respon: %v", err)
	}
	if !resp.Success || resp.TotalRecords != 1 || len(resp.Data) != 1 {
		t.Errorf("respon = %+v", resp)
	}
}

func TestProcess_FieldKurang400(t *testing.T) {
	mc := controllerUji(t)
	rec := kirimRequest(mc.Process, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, harus 400", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Success || resp.Error == "" {
		t.Errorf("respon error tidak sesuai: %+v", resp)
	}
}
