package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/viper"
)

// Default configuration values, used for any key the config file omits.
const (
	DefaultReportSize     = 1000
	DefaultReportDir      = "./reports"
	DefaultLogDir         = "./logs"
	DefaultErrorThreshold = 0.1
)

// Config is the runtime configuration, loaded once at startup and
// read-only afterwards.
type Config struct {
	// ReportSize is the maximum number of URL rows rendered into the report.
	ReportSize int `mapstructure:"report_size"`
	// ReportDir is where generated reports are written.
	ReportDir string `mapstructure:"report_dir"`
	// LogDir is scanned for dated access log files.
	LogDir string `mapstructure:"log_dir"`
	// LogFile, when set, redirects diagnostic logging from stdout to this path.
	LogFile string `mapstructure:"log_file"`
	// ErrorThreshold is the tolerated fraction of unparseable lines in [0, 1].
	ErrorThreshold float64 `mapstructure:"error_threshold"`
}

// Load reads the JSON config file at path and merges it over the defaults.
// A missing file is not an error: the defaults apply as-is. Malformed JSON
// is fatal. Unknown keys are ignored.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("report_size", DefaultReportSize)
	v.SetDefault("report_dir", DefaultReportDir)
	v.SetDefault("log_dir", DefaultLogDir)
	v.SetDefault("log_file", "")
	v.SetDefault("error_threshold", DefaultErrorThreshold)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		slog.Info("config_not_found", "config_path", path)
	} else {
		slog.Info("config_loaded", "config_path", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	return &cfg, nil
}
