package config

import (
	"context"
	"database/sql"

	"taskboard-go/configs"
	"taskboard-go/internal/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
)

var (
	// Global dependency yang akan digunakan di seluruh aplikasi
	DB          *sql.DB
	App         configs.Config
	SecretKey   = []byte("secret")
	Validate    = validator.New()
	Ctx         = context.Background()
	RedisClient *redis.Client
	Hub         *websocket.Hub
)

// Apply menyalin nilai config ke dependency global.
func Apply(cfg configs.Config) {
	App = cfg
	SecretKey = []byte(cfg.JWTSecret)
}
