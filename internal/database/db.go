package database

import (
	"sync"
	"time"

	"mcq-service/config"
	"mcq-service/internal/database/model"
	"mcq-service/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

var (
	DB *gorm.DB
	mu sync.Mutex
)

// connect opens the DB, registers read replicas and applies pool configuration
func connect() (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(config.Cfg.Dns), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if replicas := config.Cfg.Database.Replicas; len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, dsn := range replicas {
			dialectors = append(dialectors, mysql.Open(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(config.Cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.Cfg.Database.MaxOpenConns)
	lifetime := time.Duration(config.Cfg.Database.MaxLifetime) * time.Minute
	sqlDB.SetConnMaxIdleTime(lifetime)
	sqlDB.SetConnMaxLifetime(lifetime)

	return db, nil
}

// Use replaces the shared connection, e.g. with an in-memory database in tests.
func Use(db *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	DB = db
}

// ensureConnection verifies DB connectivity and reconnects if needed
func ensureConnection() error {
	mu.Lock()
	defer mu.Unlock()

	if DB != nil {
		sqlDB, err := DB.DB()
		if err == nil && sqlDB.Ping() == nil {
			return nil
		}
	}
	newDB, err := connect()
	if err != nil {
		logger.Error(err, "%v: failed to connect to database", config.ModuleDatabase)
		return err
	}
	DB = newDB
	return nil
}

// GetDB returns a healthy *gorm.DB, attempting reconnect if necessary
func GetDB() (*gorm.DB, error) {
	if err := ensureConnection(); err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	return DB, nil
}

// Migrate creates or updates the service tables.
func Migrate() error {
	db, err := GetDB()
	if err != nil {
		return err
	}
	return db.AutoMigrate(&model.Document{}, &model.QuizResult{})
}
