package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the optional JSON config file looked up in the config dir
const FileName = "midline.json"

// EnvPrefix prefixes environment overrides, e.g. MIDLINE_LOGLEVEL
const EnvPrefix = "MIDLINE"

// SurfaceConfig is the size of the analysis surface in pixels
type SurfaceConfig struct {
	Width  float64 `json:"width" mapstructure:"width" validate:"gt=0"`
	Height float64 `json:"height" mapstructure:"height" validate:"gt=0"`
}

// ExportConfig controls report generation
type ExportConfig struct {
	FileName    string        `json:"fileName" mapstructure:"fileName" validate:"required"`
	OutputDir   string        `json:"outputDir" mapstructure:"outputDir" validate:"required"`
	Scale       float64       `json:"scale" mapstructure:"scale" validate:"gt=0,lte=8"`
	SettleDelay time.Duration `json:"settleDelay" mapstructure:"settleDelay" validate:"gte=0"`
}

// ServerConfig controls the HTTP surface
type ServerConfig struct {
	Addr      string `json:"addr" mapstructure:"addr" validate:"required"`
	BodyLimit int    `json:"bodyLimit" mapstructure:"bodyLimit" validate:"gt=0"`
}

// Config is the typed view of all settings
type Config struct {
	LogLevel  string        `json:"logLevel" mapstructure:"logLevel" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogsDir   string        `json:"logsDir" mapstructure:"logsDir"`
	LogToFile bool          `json:"logToFile" mapstructure:"logToFile"`
	Surface   SurfaceConfig `json:"surface" mapstructure:"surface"`
	Export    ExportConfig  `json:"export" mapstructure:"export"`
	Server    ServerConfig  `json:"server" mapstructure:"server"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("logToFile", false)

	viper.SetDefault("surface.width", 640)
	viper.SetDefault("surface.height", 288)

	viper.SetDefault("export.fileName", "midline_report.pdf")
	viper.SetDefault("export.outputDir", ".")
	viper.SetDefault("export.scale", 2)
	viper.SetDefault("export.settleDelay", "0s")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.bodyLimit", 50*1024*1024)
}

// Load sets defaults, reads .env and the optional midline.json from
// configDir and applies MIDLINE_ environment overrides.
func Load(configDir string) error {
	setDefaults()

	envFile := filepath.Join(configDir, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading %s: %w", envFile, err)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Get returns the validated typed configuration
func Get() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

