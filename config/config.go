package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	MedisBaseURL  string // base URL MedisServices, contoh: https://api-rsudbudhiasih.jakarta.go.id/MedisServices
	MedisUsername string
	MedisPassword string
	JWTSecret     string
	BatchHari     int // lebar sub-rentang tanggal per batch
	BatchUkuran   int // jumlah maksimum NoPendaftaran / NoBKM per request upstream
	JedaMs        int // jeda antar request chunk ke upstream, dalam milidetik
	TimeoutDetik  int // timeout per request upstream
}

var (
	cfg  *Config
	once sync.Once
)

func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:        os.Getenv("APP_ENV"),
			Port:          getEnv("PORT", "8080"),
			MedisBaseURL:  os.Getenv("MEDIS_BASE_URL"),
			MedisUsername: os.Getenv("MEDIS_USERNAME"),
			MedisPassword: os.Getenv("MEDIS_PASSWORD"),
			JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
			BatchHari:     getEnvInt("BATCH_HARI", 10),
			BatchUkuran:   getEnvInt("BATCH_UKURAN", 2000),
			JedaMs:        getEnvInt("JEDA_MS", 100),
			TimeoutDetik:  getEnvInt("TIMEOUT_DETIK", 120),
		}
	})
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q bukan angka, memakai default %d", key, v, fallback)
		return fallback
	}
	return n
}
