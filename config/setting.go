package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port                  int    `koanf:"port" validate:"required"`
	Mode                  string `koanf:"mode" validate:"required"`
	Concurrency           int    `koanf:"concurrency" validate:"required"`
	BodyLimit             int    `koanf:"body_limit" validate:"required"`
	AppName               string `koanf:"app_name" validate:"required"`
	MaxConnections        int    `koanf:"max_connections" validate:"required"`
	RequestTimeoutSeconds int    `koanf:"request_timeout_seconds" validate:"required"`
}

type Level string

const (
	Debug Level = "debug"
	Info  Level = "info"
	Warn  Level = "warn"
	Error Level = "error"
	Fatal Level = "fatal"
	Panic Level = "panic"
)

type Module string

const (
	ModuleMCQ      Module = "mcq"
	ModuleScoring  Module = "scoring"
	ModuleDocument Module = "document"
	ModuleLexicon  Module = "lexicon"
	ModuleNLP      Module = "nlp"
	ModuleDatabase Module = "database"
	ModuleRedis    Module = "redis"
	ModuleOpenAI   Module = "openai"
	ModuleS3       Module = "s3"
	ModuleCors     Module = "cors"
	ModuleServer   Module = "server"
	ModuleSetting  Module = "setting"
	ModuleUpload   Module = "upload"
)

type databaseConfig struct {
	Host         string   `koanf:"host" validate:"required"`
	Port         int      `koanf:"port" validate:"required"`
	User         string   `koanf:"user" validate:"required"`
	Password     string   `koanf:"password"`
	Name         string   `koanf:"name" validate:"required"`
	MaxIdleConns int      `koanf:"max_idle_conns" validate:"required"`
	MaxOpenConns int      `koanf:"max_open_conns" validate:"required"`
	MaxLifetime  int      `koanf:"max_lifetime" validate:"required"`
	Replicas     []string `koanf:"replicas"`
}

type redisConfig struct {
	Addr       string `koanf:"addr"`
	Password   string `koanf:"password"`
	DB         int    `koanf:"db"`
	TTLMinutes int    `koanf:"ttl_minutes" validate:"required"`
}

type openaiConfig struct {
	Key     string `koanf:"key"`
	Model   string `koanf:"model" validate:"required"`
	BaseURL string `koanf:"base_url"`
}

type corsConfig struct {
	AllowOrigins []string `koanf:"allow_origins" validate:"required"`
	AllowMethods []string `koanf:"allow_methods" validate:"required"`
	AllowHeaders []string `koanf:"allow_headers" validate:"required"`
}

type lexiconConfig struct {
	Provider   string `koanf:"provider" validate:"required,oneof=wordnet static openai"`
	WordNetDir string `koanf:"wordnet_dir"`
	Path       string `koanf:"path"`
	Cache      bool   `koanf:"cache"`
}

type generatorConfig struct {
	DefaultQuestions int `koanf:"default_questions" validate:"required,min=1"`
	MaxQuestions     int `koanf:"max_questions" validate:"required,min=1"`
}

type storageConfig struct {
	LocalDir string `koanf:"local_dir" validate:"required"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region" validate:"required"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type config struct {
	Server    serverConfig    `koanf:"server"`
	Database  databaseConfig  `koanf:"database"`
	Redis     redisConfig     `koanf:"redis"`
	OpenAI    openaiConfig    `koanf:"openai"`
	LogLevel  Level           `koanf:"log_level"`
	Dns       string          `koanf:"dns"`
	S3        s3Config        `koanf:"s3"`
	Cors      corsConfig      `koanf:"cors"`
	Lexicon   lexiconConfig   `koanf:"lexicon"`
	Generator generatorConfig `koanf:"generator"`
	Storage   storageConfig   `koanf:"storage"`
}

func buildMySQLDSN(cfg databaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

var defaultConfig = config{
	Server: serverConfig{
		Port:                  5001,
		Mode:                  "release",
		Concurrency:           256 * 1024,
		BodyLimit:             32 * 1024 * 1024,
		AppName:               "mcq-service",
		MaxConnections:        64,
		RequestTimeoutSeconds: 60,
	},
	Database: databaseConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Password:     "",
		Name:         "mcq",
		MaxIdleConns: 5,
		MaxOpenConns: 20,
		MaxLifetime:  30,
	},
	Redis: redisConfig{
		Addr:       "",
		TTLMinutes: 24 * 60,
	},
	OpenAI: openaiConfig{
		Key:   "",
		Model: "gpt-4o-mini",
	},
	LogLevel: Info,
	S3: s3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
		UseSSL:    false,
		Bucket:    "",
	},
	Cors: corsConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
	},
	Lexicon: lexiconConfig{
		Provider:   "wordnet",
		WordNetDir: "/usr/share/wordnet",
		Path:       "lexicon.yaml",
	},
	Generator: generatorConfig{
		DefaultQuestions: 5,
		MaxQuestions:     50,
	},
	Storage: storageConfig{
		LocalDir: "storage/documents",
	},
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

func init() {
	once.Do(func() {
		if err := Init("config.yaml"); err != nil {
			log.Errorf("%v: %v", ModuleSetting, err)
		}
	})
}

// Init loads defaults, then the yaml file at path (if present), then APP_ environment
// variables, and validates the result. Cfg keeps whatever was loaded even on error.
func Init(path string) error {
	k := koanf.New(".")
	Cfg = defaultConfig

	if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !errors.Is(e, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, e)
	}

	// APP_SERVER__PORT -> server.port
	if e := k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "__", ".")
	}), nil); e != nil {
		return fmt.Errorf("load env: %w", e)
	}

	if e := k.Unmarshal("", &Cfg); e != nil {
		return fmt.Errorf("unmarshal config: %w", e)
	}

	if Cfg.Dns == "" {
		Cfg.Dns = buildMySQLDSN(Cfg.Database)
	}

	return validate(Cfg)
}

func validate(c config) error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config validation failed: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v config validation failed:\n", ModuleSetting))
	for _, e := range errs {
		sb.WriteString(
			fmt.Sprintf("  • %s: failed '%s' (value: %v)\n", e.Field(), e.Tag(), e.Value()),
		)
	}
	return fmt.Errorf("%s", sb.String())
}
