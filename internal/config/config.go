// Package config resolves settings from flags, HARFMT_* environment
// variables and an optional YAML config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cnharrison/har-formatter/internal/har"
	"github.com/cnharrison/har-formatter/internal/logging"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "HARFMT"

// configName is looked up as $HOME/.har-formatter.yaml and ./.har-formatter.yaml
const configName = ".har-formatter"

// Keys shared by flags, env and the config file
const (
	KeyOutput        = "output"
	KeyLocale        = "locale"
	KeyTimezone      = "timezone"
	KeyMarkup        = "markup"
	KeyColor         = "color"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyLogMaxSizeMB  = "log.max_size_mb"
	KeyLogMaxBackups = "log.max_backups"
	KeyLogMaxAgeDays = "log.max_age_days"
	KeyLogCompress   = "log.compress"
)

// Config holds everything the commands need
type Config struct {
	Output   string         // HARFMT_OUTPUT, default "text"
	Locale   string         // HARFMT_LOCALE, default "en-US"
	Location *time.Location // HARFMT_TIMEZONE, default local time
	Markup   bool           // HARFMT_MARKUP, default false
	Color    bool           // HARFMT_COLOR, default false
	Logging  logging.Config
}

// New returns a viper instance with defaults and env binding in place
func New() *viper.Viper {
	v := viper.New()
	defaults := logging.DefaultConfig()

	v.SetDefault(KeyOutput, "text")
	v.SetDefault(KeyLocale, har.DefaultLocale)
	v.SetDefault(KeyTimezone, "")
	v.SetDefault(KeyMarkup, false)
	v.SetDefault(KeyColor, false)
	v.SetDefault(KeyLogLevel, defaults.Level)
	v.SetDefault(KeyLogFile, defaults.FilePath)
	v.SetDefault(KeyLogMaxSizeMB, defaults.MaxSizeMB)
	v.SetDefault(KeyLogMaxBackups, defaults.MaxBackups)
	v.SetDefault(KeyLogMaxAgeDays, defaults.MaxAgeDays)
	v.SetDefault(KeyLogCompress, defaults.Compress)

	// HARFMT_LOG_LEVEL maps to log.level
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads cfgFile, or searches the home and working directories for
// .har-formatter.yaml. A missing default file is not an error.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load resolves the final configuration
func Load(v *viper.Viper) (*Config, error) {
	location, err := loadLocation(v.GetString(KeyTimezone))
	if err != nil {
		return nil, err
	}

	return &Config{
		Output:   strings.ToLower(v.GetString(KeyOutput)),
		Locale:   v.GetString(KeyLocale),
		Location: location,
		Markup:   v.GetBool(KeyMarkup),
		Color:    v.GetBool(KeyColor),
		Logging: logging.Config{
			Level:      v.GetString(KeyLogLevel),
			FilePath:   v.GetString(KeyLogFile),
			MaxSizeMB:  v.GetInt(KeyLogMaxSizeMB),
			MaxBackups: v.GetInt(KeyLogMaxBackups),
			MaxAgeDays: v.GetInt(KeyLogMaxAgeDays),
			Compress:   v.GetBool(KeyLogCompress),
		},
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return location, nil
}
