package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Missing-file policies for referenced snippet sources. Fail aborts the
// whole run; placeholder substitutes a note into the block and keeps going.
const (
	MissingFail        = "fail"
	MissingPlaceholder = "placeholder"
)

// Config holds the application configuration
type Config struct {
	DocsPath      string `mapstructure:"path"`
	Missing       string `mapstructure:"missing"`
	Concurrency   int    `mapstructure:"concurrency"`
	WatchDebounce int    `mapstructure:"watch_debounce_ms"`
	ColorOk       string `mapstructure:"color_ok"`
	ColorDrift    string `mapstructure:"color_drift"`
	ColorPath     string `mapstructure:"color_path"`
	Verbose       bool   `mapstructure:"verbose"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("path", ".")
	viper.SetDefault("missing", MissingFail)
	viper.SetDefault("concurrency", 8)
	viper.SetDefault("watch_debounce_ms", 200)
	viper.SetDefault("color_ok", "2")    // Green
	viper.SetDefault("color_drift", "1") // Red
	viper.SetDefault("color_path", "6")  // Cyan
	viper.SetDefault("verbose", false)

	viper.SetConfigName("snipmd")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "snipmd"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SNIPMD")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	if err := viper.Unmarshal(&C); err != nil {
		return err
	}
	return validate()
}

func validate() error {
	switch C.Missing {
	case MissingFail, MissingPlaceholder:
	default:
		return fmt.Errorf("invalid missing policy %q (want %q or %q)", C.Missing, MissingFail, MissingPlaceholder)
	}
	if C.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", C.Concurrency)
	}
	return nil
}

// GetPath returns the docs path with tilde expansion
func GetPath() string {
	path := viper.GetString("path")
	return expandTilde(path)
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetMissing returns the missing-file policy
func GetMissing() string {
	return viper.GetString("missing")
}

// GetConcurrency returns the number of files processed in parallel
func GetConcurrency() int {
	return viper.GetInt("concurrency")
}

// GetWatchDebounce returns the watch debounce interval in milliseconds
func GetWatchDebounce() int {
	return viper.GetInt("watch_debounce_ms")
}

// GetColorOk returns the color for in-sync report lines
func GetColorOk() string {
	return viper.GetString("color_ok")
}

// GetColorDrift returns the color for out-of-sync report lines
func GetColorDrift() string {
	return viper.GetString("color_drift")
}

// GetColorPath returns the color for file paths in reports
func GetColorPath() string {
	return viper.GetString("color_path")
}

// GetVerbose returns whether debug logging is enabled
func GetVerbose() bool {
	return viper.GetBool("verbose")
}

// SetMissing sets the missing-file policy at runtime
func SetMissing(policy string) {
	viper.Set("missing", policy)
	C.Missing = policy
}

// SetPath sets the docs path at runtime
func SetPath(path string) {
	viper.Set("path", path)
	C.DocsPath = path
}
