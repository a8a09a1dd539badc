package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBNameTest string
	RedisHost  string
	RedisPort  int

	JWTSecret       string
	AccessTTLMin    int
	RefreshTTLMin   int
	GoogleVerifyURL string
	EncryptionKey   string
	FrontendURL     string
	SMTPHost        string
	SMTPPort        int
	SMTPFrom        string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnvInt("DB_PORT", 10501),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBNameTest: os.Getenv("DB_NAME_TEST"),
		RedisHost:  os.Getenv("REDIS_HOST"),
		RedisPort:  getEnvInt("REDIS_PORT", 6379),

		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		AccessTTLMin:  getEnvInt("ACCESS_TOKEN_TTL_MIN", 60),
		RefreshTTLMin: getEnvInt("REFRESH_TOKEN_TTL_MIN", 24*60),
		// Endpoint verifikasi token Google, dioverride saat testing
		GoogleVerifyURL: getEnv("GOOGLE_VERIFY_URL", "https://www.googleapis.com/oauth2/v3/tokeninfo"),
		EncryptionKey:   getEnv("ENCRYPTION_KEY", "MySecretEncryptionKey!"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnvInt("SMTP_PORT", 25),
		SMTPFrom:        getEnv("SMTP_FROM", "no-reply@taskboard.local"),
	}
}
