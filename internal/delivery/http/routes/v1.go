package routes

import (
	"gigboard/internal/config"
	"gigboard/internal/database"
	v1 "gigboard/internal/delivery/http/routes/v1"
	"gigboard/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, redisCache)
}
