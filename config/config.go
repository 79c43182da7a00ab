package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config menampung seluruh pengaturan aplikasi yang dibaca dari environment.
type Config struct {
	AppPort string
	AppEnv  string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	MongoURI    string
	MongoDBName string

	JWTSecret string
	SeedData  bool
}

// Load membaca .env (kalau ada) lalu mengisi Config dari environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env tidak ditemukan, menggunakan ENV dari sistem")
	}

	return &Config{
		AppPort:     GetEnv("APP_PORT", "8080"),
		AppEnv:      GetEnv("APP_ENV", "development"),
		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBUser:      GetEnv("DB_USER", "postgres"),
		DBPassword:  GetEnv("DB_PASSWORD"),
		DBName:      GetEnv("DB_NAME", "angka_kredit"),
		DBPort:      GetEnv("DB_PORT", "5432"),
		MongoURI:    GetEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: GetEnv("MONGO_DB_NAME", "angka_kredit"),
		JWTSecret:   GetEnv("JWT_SECRET"),
		SeedData:    GetBool("SEED_DATA", true),
	}
}

// GetEnv mengambil nilai env; kalau kosong, pakai default pertama (jika ada).
func GetEnv(key string, defaultVal ...string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" && len(defaultVal) > 0 {
		return defaultVal[0]
	}
	return val
}

// GetBool membaca env boolean ("true", "1", "false", ...).
func GetBool(key string, defaultVal bool) bool {
	raw := GetEnv(key)
	if raw == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("⚠️  %s=%q bukan boolean, memakai default %v", key, raw, defaultVal)
		return defaultVal
	}
	return b
}

// IsProduction true untuk APP_ENV production / prod.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "prod", "production":
		return true
	}
	return false
}
