package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Catalogue CatalogueConfig
	Generator GeneratorConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	Namespace string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CatalogueConfig governs caching of module catalogue lookups.
type CatalogueConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// GeneratorConfig bounds timetable generation requests.
type GeneratorConfig struct {
	MaxModules int
	MaxSteps   int
	Timeout    time.Duration
	ResultCap  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v)
}

// settings mirrors the flat environment keys; viper hands it to mapstructure.
type settings struct {
	Env       string `mapstructure:"ENV"`
	Port      int    `mapstructure:"PORT"`
	APIPrefix string `mapstructure:"API_PREFIX"`

	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         int    `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSL_MODE"`
	DBMaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`

	RedisHost      string `mapstructure:"REDIS_HOST"`
	RedisPort      int    `mapstructure:"REDIS_PORT"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int    `mapstructure:"REDIS_DB"`
	RedisNamespace string `mapstructure:"REDIS_NAMESPACE"`

	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`

	CatalogueCacheEnabled bool          `mapstructure:"ENABLE_CATALOGUE_CACHE"`
	CatalogueCacheTTL     time.Duration `mapstructure:"CATALOGUE_CACHE_TTL"`

	GeneratorMaxModules int           `mapstructure:"GENERATOR_MAX_MODULES"`
	GeneratorMaxSteps   int           `mapstructure:"GENERATOR_MAX_STEPS"`
	GeneratorTimeout    time.Duration `mapstructure:"GENERATOR_TIMEOUT"`
	GeneratorResultCap  int           `mapstructure:"GENERATOR_RESULT_CAP"`
}

func fromViper(v *viper.Viper) (*Config, error) {
	var s settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&s, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &Config{
		Env:       s.Env,
		Port:      s.Port,
		APIPrefix: s.APIPrefix,
		Database: DatabaseConfig{
			Host:         s.DBHost,
			Port:         s.DBPort,
			User:         s.DBUser,
			Password:     s.DBPassword,
			Name:         s.DBName,
			SSLMode:      s.DBSSLMode,
			MaxOpenConns: s.DBMaxOpenConns,
			MaxIdleConns: s.DBMaxIdleConns,
		},
		Redis: RedisConfig{
			Host:      s.RedisHost,
			Port:      s.RedisPort,
			Password:  s.RedisPassword,
			DB:        s.RedisDB,
			Namespace: s.RedisNamespace,
		},
		CORS: CORSConfig{AllowedOrigins: splitAndTrim(s.AllowedOrigins)},
		Log: LogConfig{
			Level:  s.LogLevel,
			Format: s.LogFormat,
		},
		Catalogue: CatalogueConfig{
			CacheEnabled: s.CatalogueCacheEnabled,
			CacheTTL:     positiveDuration(s.CatalogueCacheTTL, 30*time.Minute),
		},
		Generator: GeneratorConfig{
			MaxModules: positiveOr(s.GeneratorMaxModules, 15),
			MaxSteps:   max(s.GeneratorMaxSteps, 0),
			Timeout:    positiveDuration(s.GeneratorTimeout, 10*time.Second),
			ResultCap:  positiveOr(s.GeneratorResultCap, 100),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_NAMESPACE", "planner")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CATALOGUE_CACHE", true)
	v.SetDefault("CATALOGUE_CACHE_TTL", "30m")

	v.SetDefault("GENERATOR_MAX_MODULES", 15)
	v.SetDefault("GENERATOR_MAX_STEPS", 0)
	v.SetDefault("GENERATOR_TIMEOUT", "10s")
	v.SetDefault("GENERATOR_RESULT_CAP", 100)
}

func positiveDuration(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
