package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcq-service/config"
	"mcq-service/internal/api/healthcheck"
	"mcq-service/internal/api/mcq"
	"mcq-service/internal/api/upload"
	"mcq-service/internal/core/lexicon"
	coremcq "mcq-service/internal/core/mcq"
	"mcq-service/internal/core/nlp"
	"mcq-service/internal/database"
	"mcq-service/internal/middleware"
	"mcq-service/internal/services/quiz"
	"mcq-service/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

func main() {
	if err := config.Init("config.yaml"); err != nil {
		logger.Fatal(err, "%v: invalid configuration", config.ModuleSetting)
	}

	annotator, err := nlp.NewProseAnnotator()
	if err != nil {
		logger.Fatal(err, "%v: annotator init failed", config.ModuleNLP)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	lex, redisStore, err := lexicon.FromConfig(ctx)
	cancel()
	if err != nil {
		logger.Fatal(err, "%v: lexicon init failed", config.ModuleLexicon)
	}

	// Uploads and stored results need the database; generation from a path does not.
	if err := database.Migrate(); err != nil {
		logger.Error(err, "%v: migration skipped", config.ModuleDatabase)
	}

	svc := quiz.NewService(coremcq.NewGenerator(annotator, lex))

	app := fiber.New(fiber.Config{
		AppName:     config.Cfg.Server.AppName,
		BodyLimit:   config.Cfg.Server.BodyLimit,
		Concurrency: config.Cfg.Server.Concurrency,
	})
	middleware.Register(app)

	var redisPinger healthcheck.Pinger
	if redisStore != nil {
		redisPinger = redisStore
		defer redisStore.Close()
	}
	healthcheck.RegisterRoutes(app, redisPinger)
	mcq.RegisterRoutes(app, svc)
	upload.RegisterRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("%v: shutting down", config.ModuleServer)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error(err, "%v: shutdown error", config.ModuleServer)
		}
	}()

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	if err := app.Listen(addr); err != nil {
		logger.Error(err, "%v: server error", config.ModuleServer)
	}
}
