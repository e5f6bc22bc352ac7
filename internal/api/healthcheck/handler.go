package healthcheck

import (
	"context"
	"errors"
	"time"

	"mcq-service/config"
	"mcq-service/internal/database"
	"mcq-service/pkg/apperror"

	"github.com/gofiber/fiber/v3"
)

// Pinger is satisfied by the lexicon's Redis store.
type Pinger interface {
	Ping(ctx context.Context) error
}

var errRedisDisabled = errors.New("redis cache is not configured")

func ApiHealthCheck(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "running"})
}

func DatabaseHealthCheck(c fiber.Ctx) error {
	db, err := database.GetDB()
	if err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, "database unavailable", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, "database unavailable", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, "database unavailable", err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func RedisHealthCheck(redis Pinger) fiber.Handler {
	return func(c fiber.Ctx) error {
		if redis == nil {
			return apperror.WriteError(config.ModuleRedis, c, fiber.StatusServiceUnavailable, "", "redis unavailable", errRedisDisabled.Error())
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redis.Ping(ctx); err != nil {
			return apperror.InternalError(config.ModuleRedis, c, "redis unavailable", err)
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
