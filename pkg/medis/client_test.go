package medis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type serverUji struct {
	srv        *httptest.Server
	loginCount int
	dataCount  int
	// tolakToken: berapa kali pertama panggilan data dijawab 401
	tolakToken int
	dataStatus int
	dataBody   string
}

func bangunServer(t *testing.T) *serverUji {
	t.Helper()
	s := &serverUji{dataStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		s.loginCount++
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"token":   "tok",
			"expires": time.Now().Add(time.Hour).Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/api/MonitoringBiaya/GetDataPasien", func(w http.ResponseWriter, r *http.Request) {
		s.dataCount++
		if s.tolakToken > 0 {
			s.tolakToken--
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if s.dataStatus != http.StatusOK {
			w.WriteHeader(s.dataStatus)
			w.Write([]byte(s.dataBody))
			return
		}
		if s.dataBody != "" {
			w.Write([]byte(s.dataBody))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"items":   []PasienItem{{NoPendaftaran: "A1", NamaPasien: "Budi"}},
		})
	})
	mux.HandleFunc("/api/utkLogin/MauLogin", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Ngaran  string `json:"ngaran"`
			Pasprot string `json:"pasprot"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Pasprot != "benar" {
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "user tidak ditemukan"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"items":   []Pegawai{{IDPegawai: "P01", NamaLengkap: "Budi Santoso", KdRuangan: "R1"}},
		})
	})
	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func clientUji(s *serverUji) *Client {
	httpClient := s.srv.Client()
	tokens := NewTokenManager(httpClient, s.srv.URL, "admin", "rahasia")
	return NewClient(httpClient, s.srv.URL, tokens, 0, zerolog.Nop())
}

func TestClient_TokenDipakaiUlang(t *testing.T) {
	s := bangunServer(t)
	c := clientUji(s)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.GetDataPasien(ctx, "2024-01-01", "2024-01-10", "02"); err != nil {
			t.Fatalf("GetDataPasien ke-%d: %v", i+1, err)
		}
	}
	if s.loginCount != 1 {
		t.Errorf("login terjadi %d kali, harus 1 (token di-cache)", s.loginCount)
	}
}

func TestClient_TokenDitolakSekali_DiulangSekali(t *testing.T) {
	s := bangunServer(t)
	s.tolakToken = 1
	c := clientUji(s)

	items, err := c.GetDataPasien(context.Background(), "2024-01-01", "2024-01-10", "02")
	if err != nil {
		t.Fatalf("GetDataPasien: %v", err)
	}
	if len(items) != 1 || items[0].NoPendaftaran != "A1" {
		t.Fatalf("items = %+v", items)
	}
	if s.dataCount != 2 {
		t.Errorf("panggilan data = %d, harus 2 (asli + satu ulang)", s.dataCount)
	}
	if s.loginCount != 2 {
		t.Errorf("login = %d, harus 2 (awal + refresh)", s.loginCount)
	}
}

func TestClient_TokenDitolakDuaKali_Fatal(t *testing.T) {
	s := bangunServer(t)
	s.tolakToken = 2
	c := clientUji(s)

	_, err := c.GetDataPasien(context.Background(), "2024-01-01", "2024-01-10", "02")
	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if s.dataCount != 2 {
		t.Errorf("panggilan data = %d, harus berhenti di 2", s.dataCount)
	}
}

func TestClient_StatusNon2xx_UpstreamError(t *testing.T) {
	s := bangunServer(t)
	s.dataStatus = http.StatusBadGateway
	s.dataBody = "gateway mati"
	c := clientUji(s)

	_, err := c.GetDataPasien(context.Background(), "2024-01-01", "2024-01-10", "02")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusBadGateway || ue.Body != "gateway mati" {
		t.Errorf("UpstreamError = %+v", ue)
	}
}

func TestClient_EnvelopeGagal_UpstreamError(t *testing.T) {
	s := bangunServer(t)
	s.dataBody = `{"success": false, "message": "parameter salah"}`
	c := clientUji(s)

	_, err := c.GetDataPasien(context.Background(), "2024-01-01", "2024-01-10", "02")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Body != "parameter salah" {
		t.Errorf("Body = %q", ue.Body)
	}
}

func TestClient_JSONRusak_SchemaError(t *testing.T) {
	s := bangunServer(t)
	s.dataBody = `<html>bukan json</html>`
	c := clientUji(s)

	_, err := c.GetDataPasien(context.Background(), "2024-01-01", "2024-01-10", "02")
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestClient_MauLogin(t *testing.T) {
	s := bangunServer(t)
	c := clientUji(s)
	ctx := context.Background()

	pegawai, err := c.MauLogin(ctx, "budi", "benar")
	if err != nil {
		t.Fatalf("MauLogin: %v", err)
	}
	if pegawai.IDPegawai != "P01" || pegawai.NamaLengkap != "Budi Santoso" {
		t.Errorf("pegawai = %+v", pegawai)
	}

	if _, err := c.MauLogin(ctx, "budi", "salah"); !errors.Is(err, ErrLoginGagal) {
		t.Fatalf("expected ErrLoginGagal, got %v", err)
	}
}

func TestClient_JedaMenghormatiPembatalan(t *testing.T) {
	s := bangunServer(t)
	httpClient := s.srv.Client()
	tokens := NewTokenManager(httpClient, s.srv.URL, "admin", "rahasia")
	c := NewClient(httpClient, s.srv.URL, tokens, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Jeda(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Jeda dengan ctx batal harus context.Canceled, got %v", err)
	}
}

func TestTokenManager_InvalidateMemaksaLoginUlang(t *testing.T) {
	s := bangunServer(t)
	httpClient := s.srv.Client()
	tm := NewTokenManager(httpClient, s.srv.URL, "admin", "rahasia")
	ctx := context.Background()

	if _, err := tm.Token(ctx); err != nil {
		t.Fatalf("Token: %v", err)
	}
	if _, err := tm.Token(ctx); err != nil {
		t.Fatalf("Token (cache): %v", err)
	}
	if s.loginCount != 1 {
		t.Fatalf("login = %d, harus 1", s.loginCount)
	}

	tm.Invalidate()
	if _, err := tm.Token(ctx); err != nil {
		t.Fatalf("Token (setelah invalidate): %v", err)
	}
	if s.loginCount != 2 {
		t.Errorf("login = %d, harus 2 setelah invalidate", s.loginCount)
	}
}
