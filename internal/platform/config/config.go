package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	DataDir      string
	BackupKeep   int
	RateLimitRPS int
	DemoSeed     bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "3001")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DATA_DIR", "dados")
	viper.SetDefault("BACKUP_KEEP", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("DEMO_SEED", false)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:         viper.GetString("PORT"),
		IsProduction: viper.GetBool("IS_PRODUCTION"),
		DataDir:      viper.GetString("DATA_DIR"),
		BackupKeep:   viper.GetInt("BACKUP_KEEP"),
		RateLimitRPS: viper.GetInt("RATE_LIMIT_RPS"),
		DemoSeed:     viper.GetBool("DEMO_SEED"),
	}

	if cfg.BackupKeep <= 0 {
		log.Printf("Warning: invalid BACKUP_KEEP, defaulting to 10")
		cfg.BackupKeep = 10
	}
	if cfg.RateLimitRPS <= 0 {
		log.Printf("Warning: invalid RATE_LIMIT_RPS, defaulting to 20")
		cfg.RateLimitRPS = 20
	}

	return cfg, nil
}
