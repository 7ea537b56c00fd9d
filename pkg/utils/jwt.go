package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims sesi dashboard dengan field flat identitas pegawai.
type Claims struct {
	IDPegawai   string `json:"id_pegawai"`
	Username    string `json:"username"`
	NamaLengkap string `json:"nama_lengkap"`
	KdRuangan   string `json:"kd_ruangan"`
	NamaRuangan string `json:"nama_ruangan"`
	jwt.RegisteredClaims
}

// GenerateJWTToken membuat token sesi dashboard dengan exp sesuai parameter.
func GenerateJWTToken(idPegawai, username, namaLengkap, kdRuangan, namaRuangan string, exp time.Time) (string, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET_KEY"))
	if len(jwtKey) == 0 {
		return "", fmt.Errorf("JWT secret key is missing")
	}

	claims := Claims{
		IDPegawai:   idPegawai,
		Username:    username,
		NamaLengkap: namaLengkap,
		KdRuangan:   kdRuangan,
		NamaRuangan: namaRuangan,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateJWTToken memvalidasi token sesi dan mengembalikan klaimnya.
func ValidateJWTToken(tokenString string) (*Claims, error) {
	jwtKey := []byte(os.Getenv("JWT_SECRET_KEY"))
	if len(jwtKey) == 0 {
		return nil, fmt.Errorf("JWT secret key is missing")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Pastikan metode signing benar
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
