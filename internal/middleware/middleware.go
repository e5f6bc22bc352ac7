package middleware

import (
	"runtime/debug"
	"time"

	"mcq-service/config"
	"mcq-service/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// ConnectionLimiter limits the number of concurrent connections
type ConnectionLimiter struct {
	limit    int
	waitlist chan struct{}
}

func NewConnectionLimiter(limit int) *ConnectionLimiter {
	return &ConnectionLimiter{
		limit:    limit,
		waitlist: make(chan struct{}, limit),
	}
}

func (cl *ConnectionLimiter) Acquire() bool {
	select {
	case cl.waitlist <- struct{}{}:
		return true
	default:
		return false
	}
}

func (cl *ConnectionLimiter) Release() {
	select {
	case <-cl.waitlist:
	default:
	}
}

// Register installs the shared middleware chain in order: panic recovery, request id,
// access log, CORS and the connection limiter.
func Register(app *fiber.App) {
	app.Use(panicRecoveryMiddleware())
	app.Use(requestIDMiddleware())
	app.Use(accessLogMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.Cfg.Cors.AllowOrigins,
		AllowMethods: config.Cfg.Cors.AllowMethods,
		AllowHeaders: config.Cfg.Cors.AllowHeaders,
	}))
	app.Use(connectionLimiterMiddleware(NewConnectionLimiter(config.Cfg.Server.MaxConnections)))
}

// connectionLimiterMiddleware creates a middleware for connection limiting
func connectionLimiterMiddleware(limiter *ConnectionLimiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !limiter.Acquire() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Server is at maximum capacity")
		}
		defer limiter.Release()
		return c.Next()
	}
}

// requestIDMiddleware keeps a caller supplied X-Request-ID or assigns a new one,
// on both the request (for handlers) and the response.
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			c.Request().Header.Set(HeaderRequestID, id)
		}
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

func accessLogMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.ForModule(config.ModuleServer).WithFields(map[string]interface{}{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.Get(HeaderRequestID),
		}).Debug("request")
		return err
	}
}

// panicRecoveryMiddleware creates a middleware for panic recovery
func panicRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				// Log the panic with stack trace
				stack := debug.Stack()
				logger.WithFields(map[string]interface{}{
					"panic":      r,
					"method":     c.Method(),
					"path":       c.Path(),
					"ip":         c.IP(),
					"user_agent": c.Get("User-Agent"),
					"request_id": c.Get(HeaderRequestID),
					"stack":      string(stack),
				}).Errorf("Panic recovered")

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Internal Server Error",
					"details": "An unexpected error occurred",
				})
			}
		}()
		return c.Next()
	}
}
