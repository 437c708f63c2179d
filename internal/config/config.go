package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the complete configuration for dimmer.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	DarkMode DarkModeConfig `mapstructure:"dark_mode"`
}

// DatabaseConfig holds preference database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json console"`
}

// DarkModeConfig holds the controller and detection preferences.
type DarkModeConfig struct {
	// Scope is the persistence namespace; empty derives it from the
	// bound surface.
	Scope string `mapstructure:"scope"`

	// ID disambiguates multiple controllers in one scope.
	ID string `mapstructure:"id"`

	// LongPressTimeout is how long a press must be held to revert to
	// automatic mode.
	LongPressTimeout time.Duration `mapstructure:"long_press_timeout"`

	// ColorScheme overrides system detection. One of "default",
	// "prefer-dark", "prefer-light", "dark", "light".
	ColorScheme string `mapstructure:"color_scheme" validate:"omitempty,oneof=default prefer-dark prefer-light dark light"`

	// PollInterval is the fallback re-detection interval used when file
	// watching cannot observe a preference change.
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"omitempty,min=1s"`
}

// GetColorScheme implements the resolver's config override hook.
func (c DarkModeConfig) GetColorScheme() string {
	return c.ColorScheme
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		DarkMode: DarkModeConfig{
			Scope:            "",
			ID:               "",
			LongPressTimeout: 2 * time.Second,
			ColorScheme:      "default",
			PollInterval:     30 * time.Second,
		},
	}
}

// Load reads configuration from the XDG config file and environment
// variables, applies defaults and validates the result.
func Load() (*Config, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return nil, fmt.Errorf("resolve config directories: %w", err)
	}
	if err := EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dirs.ConfigHome)

	setDefaults(v)

	v.SetEnvPrefix("DIMMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// Missing config is fine; defaults apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		cfg.Database.Path = dbPath
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks a configuration against the struct constraints.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			return fmt.Errorf("invalid config value for %s (%s constraint)", field.Namespace(), field.Tag())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("dark_mode.scope", defaults.DarkMode.Scope)
	v.SetDefault("dark_mode.id", defaults.DarkMode.ID)
	v.SetDefault("dark_mode.long_press_timeout", defaults.DarkMode.LongPressTimeout)
	v.SetDefault("dark_mode.color_scheme", defaults.DarkMode.ColorScheme)
	v.SetDefault("dark_mode.poll_interval", defaults.DarkMode.PollInterval)
}
