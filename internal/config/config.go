package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the config directory and the environment prefix
const AppName = "crux"

// Config holds all application configuration
type Config struct {
	General     GeneralConfig     `mapstructure:"general"`
	UI          UIConfig          `mapstructure:"ui"`
	Data        DataConfig        `mapstructure:"data"`
	History     HistoryConfig     `mapstructure:"history"`
	Performance PerformanceConfig `mapstructure:"performance"`
	Log         LogConfig         `mapstructure:"log"`
}

type GeneralConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	RecentLimit  int `mapstructure:"recent_limit"`
}

type UIConfig struct {
	Theme             string `mapstructure:"theme"`
	MouseEnabled      bool   `mapstructure:"mouse_enabled"`
	SidebarWidthRatio int    `mapstructure:"sidebar_width_ratio"`
	PollIntervalMs    int    `mapstructure:"poll_interval_ms"`
}

type DataConfig struct {
	MaxCellDisplayLength int `mapstructure:"max_cell_display_length"`
	MinColumnWidth       int `mapstructure:"min_column_width"`
	MaxColumnWidth       int `mapstructure:"max_column_width"`
	ColumnPadding        int `mapstructure:"column_padding"`
}

type HistoryConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	MaxEntries        int  `mapstructure:"max_entries"`
	SaveFailedQueries bool `mapstructure:"save_failed_queries"`
}

type PerformanceConfig struct {
	ConnectionPoolSize int `mapstructure:"connection_pool_size"`
	// ConnectTimeout is in milliseconds
	ConnectTimeout int `mapstructure:"connect_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// LoadOptions overrides where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit config path; when empty the search path is used
	ConfigFile string
	// EnvFile is a dotenv file loaded before the environment is consulted
	EnvFile string
}

var defaults = map[string]any{
	"general.default_limit":            100,
	"general.recent_limit":             10,
	"ui.theme":                         "default",
	"ui.mouse_enabled":                 true,
	"ui.sidebar_width_ratio":           22,
	"ui.poll_interval_ms":              50,
	"data.max_cell_display_length":     47,
	"data.min_column_width":            12,
	"data.max_column_width":            50,
	"data.column_padding":              2,
	"history.enabled":                  true,
	"history.max_entries":              1000,
	"history.save_failed_queries":      true,
	"performance.connection_pool_size": 5,
	"performance.connect_timeout":      10000,
	"log.level":                        "info",
	"log.file":                         "",
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		General: GeneralConfig{
			DefaultLimit: 100,
			RecentLimit:  10,
		},
		UI: UIConfig{
			Theme:             "default",
			MouseEnabled:      true,
			SidebarWidthRatio: 22,
			PollIntervalMs:    50,
		},
		Data: DataConfig{
			MaxCellDisplayLength: 47,
			MinColumnWidth:       12,
			MaxColumnWidth:       50,
			ColumnPadding:        2,
		},
		History: HistoryConfig{
			Enabled:           true,
			MaxEntries:        1000,
			SaveFailedQueries: true,
		},
		Performance: PerformanceConfig{
			ConnectionPoolSize: 5,
			ConnectTimeout:     10000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from defaults, the config file and CRUX_*
// environment variables, in increasing priority. A missing config file is
// not an error.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		if configDir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(configDir)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values the UI cannot work with
func (c *Config) Validate() error {
	switch {
	case c.General.DefaultLimit <= 0:
		return fmt.Errorf("general.default_limit must be positive, got %d", c.General.DefaultLimit)
	case c.Data.MinColumnWidth <= 0:
		return fmt.Errorf("data.min_column_width must be positive, got %d", c.Data.MinColumnWidth)
	case c.Data.MaxColumnWidth < c.Data.MinColumnWidth:
		return fmt.Errorf("data.max_column_width (%d) is below data.min_column_width (%d)", c.Data.MaxColumnWidth, c.Data.MinColumnWidth)
	case c.Data.MaxCellDisplayLength < 4:
		return fmt.Errorf("data.max_cell_display_length must be at least 4, got %d", c.Data.MaxCellDisplayLength)
	case c.UI.SidebarWidthRatio <= 0 || c.UI.SidebarWidthRatio >= 100:
		return fmt.Errorf("ui.sidebar_width_ratio must be between 1 and 99, got %d", c.UI.SidebarWidthRatio)
	}
	return nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}
