package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT" validate:"required"`
	DataRoot      string `mapstructure:"DATA_ROOT" validate:"required,url"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	FetchTimeout  int    `mapstructure:"FETCH_TIMEOUT" validate:"gte=1"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("DATA_ROOT", "https://pmcdona037.github.io/data")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("FETCH_TIMEOUT", 15)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// Validate rejects configs that would make every trip request fail,
// most commonly a DATA_ROOT that is not an absolute URL.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
