package medis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrLoginGagal dikembalikan MauLogin saat kredensial operator ditolak upstream.
var ErrLoginGagal = errors.New("login gagal")

// Client adalah adapter bertipe ke MedisServices (API monitoring biaya RS).
// Setiap panggilan data memakai bearer token dari TokenProvider; jika upstream
// menjawab 401, token di-invalidate, diambil ulang sekali, dan panggilan diulang
// tepat satu kali. Kegagalan kedua fatal untuk panggilan tersebut.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenProvider
	jeda       time.Duration
	log        zerolog.Logger
}

func NewClient(httpClient *http.Client, baseURL string, tokens TokenProvider, jeda time.Duration, log zerolog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
		jeda:       jeda,
		log:        log,
	}
}

// Jeda menunda antara dua panggilan chunk berurutan agar tidak membanjiri
// upstream. Ini throttle yang disengaja, bukan bug; durasinya dikonfigurasi.
func (c *Client) Jeda(ctx context.Context) error {
	if c.jeda <= 0 {
		return nil
	}
	t := time.NewTimer(c.jeda)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// GetDataPasien mengambil daftar pendaftaran pasien untuk satu rentang tanggal
// dan satu instalasi.
func (c *Client) GetDataPasien(ctx context.Context, tglAwal, tglAkhir, kdInstalasi string) ([]PasienItem, error) {
	payload := map[string]any{
		"TglAwal":     tglAwal,
		"TglAkhir":    tglAkhir,
		"KdInstalasi": kdInstalasi,
	}
	return doPost[PasienItem](c, ctx, "GetDataPasien", "/api/MonitoringBiaya/GetDataPasien", payload)
}

// GetBiayaTindakan mengambil biaya pelayanan/tindakan untuk satu batch NoPendaftaran.
func (c *Client) GetBiayaTindakan(ctx context.Context, noPendaftaran []string) ([]BiayaItem, error) {
	payload := map[string]any{"NoPendaftaran": noPendaftaran}
	return doPost[BiayaItem](c, ctx, "GetBiayaTindakan", "/api/MonitoringBiaya/GetBiayaTindakan", payload)
}

// GetBiayaObat mengambil biaya obat untuk satu batch NoPendaftaran.
func (c *Client) GetBiayaObat(ctx context.Context, noPendaftaran []string) ([]BiayaItem, error) {
	payload := map[string]any{"NoPendaftaran": noPendaftaran}
	return doPost[BiayaItem](c, ctx, "GetBiayaObat", "/api/MonitoringBiaya/GetBiayaObat", payload)
}

// GetVerifikasi mengambil catatan verifikasi keuangan untuk satu batch NoBKM.
// Field request bernama NoPendaftaran mengikuti kontrak upstream; isinya NoBKM.
func (c *Client) GetVerifikasi(ctx context.Context, noBKM []string) ([]VerifikasiItem, error) {
	payload := map[string]any{"NoPendaftaran": noBKM}
	return doPost[VerifikasiItem](c, ctx, "GetVerif", "/api/MonitoringBiaya/GetVerif", payload)
}

// MauLogin memverifikasi kredensial operator dashboard ke upstream dan
// mengembalikan identitas pegawai. Mengembalikan ErrLoginGagal bila ditolak.
func (c *Client) MauLogin(ctx context.Context, username, password string) (*Pegawai, error) {
	payload := map[string]any{
		"ngaran":  username,
		"pasprot": password,
	}
	items, err := doPost[Pegawai](c, ctx, "MauLogin", "/api/utkLogin/MauLogin", payload)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Status == http.StatusOK {
			// Envelope success=false dari MauLogin berarti kredensial salah
			return nil, ErrLoginGagal
		}
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrLoginGagal
	}
	return &items[0], nil
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Periode string `json:"periode"`
	Total   int    `json:"total"`
	Items   []T    `json:"items"`
}

func doPost[T any](c *Client, ctx context.Context, op, path string, payload any) ([]T, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &SchemaError{Op: op, Err: err}
	}

	status, respBody, err := c.kirim(ctx, op, path, body, false)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		// Token ditolak: ambil token baru dan ulangi tepat satu kali
		c.log.Debug().Str("op", op).Msg("token ditolak upstream, login ulang dan coba sekali lagi")
		c.tokens.Invalidate()
		status, respBody, err = c.kirim(ctx, op, path, body, true)
		if err != nil {
			return nil, err
		}
	}
	if status != http.StatusOK {
		return nil, &UpstreamError{Op: op, Status: status, Body: string(respBody)}
	}

	var env envelope[T]
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, &SchemaError{Op: op, Err: err}
	}
	if !env.Success {
		return nil, &UpstreamError{Op: op, Status: status, Body: env.Message}
	}
	return env.Items, nil
}

// kirim melakukan satu request POST ber-token. retried menandai bahwa ini
// pengulangan pasca refresh token; 401 kedua tidak diulang lagi.
func (c *Client) kirim(ctx context.Context, op, path string, body []byte, retried bool) (int, []byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, &UpstreamError{Op: op, Body: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &UpstreamError{Op: op, Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &UpstreamError{Op: op, Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode == http.StatusUnauthorized && retried {
		return 0, nil, &AuthenticationError{Reason: "token ditolak dua kali untuk " + op}
	}
	return resp.StatusCode, respBody, nil
}
