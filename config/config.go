package config

import (
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"time"
)

const (
	DefaultCarbonFactorsURL  = "https://raw.githubusercontent.com/electricitymap/electricitymap-contrib/master/config/co2eq_parameters.json"
	DefaultProductionCSVPath = "data/Gen_Type_DK2.csv"
	DefaultDatabasePath      = "energy.db"
)

type Config struct {
	ServiceName string

	CarbonFactorsURL  string
	ProductionCSVPath string

	DBDriver   string
	DBPath     string
	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string

	Env             string
	LogLevel        string
	HTTPTimeout     int32
	InsertBatchSize int
	MetricsFile     string
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".")
}

// LoadConfigFrom reads environment variables and an optional .env file in dir.
func LoadConfigFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "energy-loader")

	v.SetDefault("CARBON_FACTORS_URL", DefaultCarbonFactorsURL)
	v.SetDefault("PRODUCTION_CSV_PATH", DefaultProductionCSVPath)
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", DefaultDatabasePath)
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 30)
	v.SetDefault("INSERT_BATCH_SIZE", 500)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:       v.GetString("SERVICE_NAME"),
		CarbonFactorsURL:  v.GetString("CARBON_FACTORS_URL"),
		ProductionCSVPath: v.GetString("PRODUCTION_CSV_PATH"),
		DBDriver:          v.GetString("DATABASE_DRIVER"),
		DBPath:            v.GetString("DATABASE_PATH"),
		DBName:            v.GetString("DATABASE_NAME"),
		DBPassword:        v.GetString("DATABASE_PASSWORD"),
		DBUser:            v.GetString("DATABASE_USER"),
		DBPort:            v.GetString("DATABASE_PORT"),
		DBHost:            v.GetString("DATABASE_HOST"),
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		HTTPTimeout:       v.GetInt32("HTTP_TIMEOUT"),
		InsertBatchSize:   v.GetInt("INSERT_BATCH_SIZE"),
		MetricsFile:       v.GetString("METRICS_FILE"),
	}

	if config.DBDriver != "sqlite" && config.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", config.DBDriver)
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
