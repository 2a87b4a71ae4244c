// =============================================================================
// PO Payment Dashboard - Configuration Module
// =============================================================================
//
// This module loads and validates the application configuration. Settings
// come from a YAML file with environment-variable overrides (prefix
// PODASH_, dots replaced by underscores, e.g. PODASH_SOURCE_PATH).
//
// CONFIGURATION KEYS:
//   source.path        - path to the PO workbook (required for most commands)
//   source.sheet       - sheet to read, default "MasterData"
//   export.dir         - directory for export artifacts, default "./output"
//   export.filename    - download artifact name, default "PO_Report.csv"
//   export.archive_dir - directory for archived export copies
//   cache.ttl          - table reuse interval for the serve command
//   server.host/port   - dashboard API bind address
//   log.level          - debug, info, warn or error
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SourceConfig locates the purchase-order workbook.
type SourceConfig struct {
	// Path is the workbook file. A .csv extension switches the loader to
	// the delimited-text reader.
	Path string `yaml:"path" mapstructure:"path"`

	// Sheet is the workbook sheet holding the data.
	Sheet string `yaml:"sheet" mapstructure:"sheet"`
}

// ExportConfig controls where export artifacts land.
type ExportConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	Filename   string `yaml:"filename" mapstructure:"filename"`
	ArchiveDir string `yaml:"archive_dir" mapstructure:"archive_dir"`
}

// CacheConfig controls the serve command's table reuse.
type CacheConfig struct {
	// TTL is how long a loaded table is reused before the next request
	// triggers a reload. Zero disables reuse.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ServerConfig configures the dashboard API.
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file (when present), applies environment
// overrides and defaults, and validates the result. A missing file is not
// an error: everything has a default except source.path, which the
// commands check when they actually need a source.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("source.path", "")
	v.SetDefault("source.sheet", "MasterData")
	v.SetDefault("export.dir", "./output")
	v.SetDefault("export.filename", "PO_Report.csv")
	v.SetDefault("export.archive_dir", "./output_archive")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("PODASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !eris.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, eris.Wrap(err, "config: read file")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the commands cannot act on.
func validate(cfg *Config) error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return eris.New(fmt.Sprintf("config: invalid log level %q", cfg.Log.Level))
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return eris.New(fmt.Sprintf("config: invalid server port %d", cfg.Server.Port))
	}

	if cfg.Cache.TTL < 0 {
		return eris.New("config: cache ttl must not be negative")
	}
	return nil
}

// =============================================================================
// LOGGING
// =============================================================================

// BuildLogger constructs the zap logger for the configured level. Verbose
// forces debug regardless of configuration.
func (c *Config) BuildLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch c.Log.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	return logger, nil
}
