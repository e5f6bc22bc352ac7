package healthcheck

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers health routes. redis may be nil when the lexicon cache is off.
func RegisterRoutes(r fiber.Router, redis Pinger) {
	r.Get("/health", ApiHealthCheck)

	grp := r.Group("/health")
	grp.Get("/database", DatabaseHealthCheck)
	grp.Get("/redis", RedisHealthCheck(redis))
}
