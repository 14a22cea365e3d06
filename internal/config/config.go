package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all non-AI runtime configuration, loaded from the environment.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Redis  RedisConfig  `mapstructure:"redis"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Engine EngineConfig `mapstructure:"engine"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // "debug" or "release"
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// EngineConfig tunes the round engine.
type EngineConfig struct {
	// MaxRounds is the last round the engine will produce; an advance
	// request beyond it is the terminal trigger.
	MaxRounds int `mapstructure:"max_rounds"`
	// FallbackQuestionCount is how many template questions the local
	// generator emits when no LLM is available.
	FallbackQuestionCount int `mapstructure:"fallback_question_count"`
}

// Load reads configuration from the environment (SYF_ prefix).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SYF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "seeyourfuture")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("engine.max_rounds", 4)
	v.SetDefault("engine.fallback_question_count", 4)

	// Explicit bindings so unprefixed container vars also work.
	v.BindEnv("server.port", "SYF_SERVER_PORT", "PORT")
	v.BindEnv("mongo.uri", "SYF_MONGO_URI", "MONGO_URI")
	v.BindEnv("redis.addr", "SYF_REDIS_ADDR", "REDIS_ADDR")
	v.BindEnv("jwt.secret", "SYF_JWT_SECRET", "JWT_SECRET")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Tolerate redis:// prefixed addresses from container env files.
	cfg.Redis.Addr = strings.TrimPrefix(cfg.Redis.Addr, "redis://")

	return &cfg, nil
}
