package medis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// TokenProvider menyediakan bearer token upstream untuk setiap panggilan data.
// Dibuat sebagai dependency eksplisit, bukan state global.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// TokenManager menyimpan token login MedisServices beserta waktu kedaluwarsanya
// dan memperbaruinya otomatis saat habis atau di-invalidate.
type TokenManager struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

func NewTokenManager(httpClient *http.Client, baseURL, username, password string) *TokenManager {
	return &TokenManager{
		httpClient: httpClient,
		baseURL:    baseURL,
		username:   username,
		password:   password,
	}
}

func (tm *TokenManager) Token(ctx context.Context) (string, error) {
	tm.mu.RLock()
	if tm.token != "" && time.Now().Before(tm.expiresAt) {
		defer tm.mu.RUnlock()
		return tm.token, nil
	}
	tm.mu.RUnlock()

	tm.mu.Lock()
	defer tm.mu.Unlock()

	// Cek ulang setelah memperoleh write lock
	if tm.token != "" && time.Now().Before(tm.expiresAt) {
		return tm.token, nil
	}

	payload, _ := json.Marshal(map[string]string{
		"username": tm.username,
		"password": tm.password,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", &AuthenticationError{Reason: "membuat request login", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return "", &AuthenticationError{Reason: "request login gagal", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &AuthenticationError{Reason: fmt.Sprintf("login status %d: %s", resp.StatusCode, string(body))}
	}

	var result struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Expires string `json:"expires"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &AuthenticationError{Reason: "parse respon login", Err: err}
	}
	if !result.Success || result.Token == "" {
		return "", &AuthenticationError{Reason: "respon login tidak valid"}
	}

	tm.token = result.Token
	tm.expiresAt = parseExpires(result.Expires)
	return tm.token, nil
}

// Invalidate membuang token tersimpan sehingga pemanggilan Token berikutnya login ulang.
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	tm.token = ""
	tm.expiresAt = time.Time{}
	tm.mu.Unlock()
}

func parseExpires(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		// Perbarui sedikit lebih awal dari kedaluwarsa sebenarnya
		return t.Add(-1 * time.Minute)
	}
	// Upstream kadang tidak mengirim expires; anggap token berlaku 30 menit
	return time.Now().Add(30 * time.Minute)
}
