package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env              string        `mapstructure:"ENV"`
	Port             string        `mapstructure:"PORT"`
	DatabaseURL      string        `mapstructure:"DATABASE_URL"`
	AnaliseURL       string        `mapstructure:"ANALISE_URL"`
	AnaliseTimeout   time.Duration `mapstructure:"ANALISE_TIMEOUT"`
	Modelo           string        `mapstructure:"ANALISE_MODELO"`
	JWTSecret        string        `mapstructure:"JWT_SECRET"`
	CORSAllowed      string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	CreateRatePerMin int           `mapstructure:"CREATE_RATE_PER_MIN"`
	ReadRatePerMin   int           `mapstructure:"READ_RATE_PER_MIN"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ANALISE_TIMEOUT", "120s")
	v.SetDefault("ANALISE_MODELO", "Emollama-7b")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CREATE_RATE_PER_MIN", 20)
	v.SetDefault("READ_RATE_PER_MIN", 60)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
