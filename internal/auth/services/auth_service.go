package services

import (
	"context"
	"time"

	"github.com/c14220110/monitoring-biaya-backend/pkg/medis"
	"github.com/c14220110/monitoring-biaya-backend/pkg/utils"
)

// AuthService memverifikasi kredensial operator dashboard ke upstream
// (utkLogin/MauLogin) lalu menerbitkan token sesi milik backend ini sendiri.
// Tidak ada penyimpanan user lokal; sumber kebenaran kredensial tetap HIS.
type AuthService struct {
	Client *medis.Client
}

func NewAuthService(client *medis.Client) *AuthService {
	return &AuthService{Client: client}
}

// MasaBerlakuSesi mengikuti umur cookie sesi dashboard lama: 7 hari.
const MasaBerlakuSesi = 7 * 24 * time.Hour

func (s *AuthService) Login(ctx context.Context, username, password string) (*medis.Pegawai, string, error) {
	pegawai, err := s.Client.MauLogin(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWTToken(
		pegawai.IDPegawai,
		username,
		pegawai.NamaLengkap,
		pegawai.KdRuangan,
		pegawai.NamaRuangan,
		time.Now().Add(MasaBerlakuSesi),
	)
	if err != nil {
		return nil, "", err
	}
	return pegawai, token, nil
}
