package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	cfg       Config
	jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)
)

func main() {
	// Auto-load ./.env if present before reading vars
	_ = godotenv.Load()
	cfg = loadConfig()
	jwtSecret = []byte(cfg.JWTSecret)

	initLogger()
	initDB(cfg.DBDSN)

	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	setupRoutes(r)

	log.Info().Str("port", cfg.Port).Msg("starting expense tracker API")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
