// config.go: defines the settings structure and configuration loading
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mkarvonen/neutron-go/internal/errors"
)

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled    bool   // true to enable file logging
	Path       string // path to log file
	MaxSize    int    // maximum log file size in megabytes before rotation
	MaxBackups int    // maximum number of rotated log files to keep
	MaxAge     int    // maximum age of a rotated log file in days
}

// SQLiteSettings contains the SQLite database configuration
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite output
	Path    string // path to the database file, empty means the per-user default
}

// MySQLSettings contains the MySQL database configuration
type MySQLSettings struct {
	Enabled  bool   // true to enable MySQL output
	Username string // MySQL username
	Password string // MySQL password
	Host     string // MySQL host
	Port     string // MySQL port
	Database string // MySQL database name
}

// Settings contains all runtime configuration for the application
type Settings struct {
	Debug bool // true to enable debug logging

	Main struct {
		Name string    // instance name, used to identify this node in logs
		Log  LogConfig // main log file settings
	}

	Output struct {
		SQLite SQLiteSettings
		MySQL  MySQLSettings
	}
}

// Load reads the configuration file (if any), applies defaults and returns
// the populated settings. A missing config file is not an error; the
// defaults describe a fully working single-user setup.
func Load() (*Settings, error) {
	setDefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return nil, err
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.New(fmt.Errorf("reading config file: %w", err)).
				Component("conf").
				Category(errors.CategoryConfiguration).
				Build()
		}
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, errors.New(fmt.Errorf("unmarshaling config: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return settings, nil
}

// GetDefaultConfigPaths returns the directories searched for config.yaml:
// the per-user config directory first, then the working directory.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, errors.New(fmt.Errorf("resolving user config directory: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	return []string{filepath.Join(configDir, "neutron-go"), "."}, nil
}

// DefaultDBPath returns the default SQLite database location inside the
// per-user config directory, creating the parent directory if needed.
func DefaultDBPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.New(fmt.Errorf("resolving user config directory: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}
	dir := filepath.Join(configDir, "neutron-go")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.New(fmt.Errorf("creating config directory %s: %w", dir, err)).
			Component("conf").
			Category(errors.CategoryFileIO).
			Context("path", dir).
			Build()
	}
	return filepath.Join(dir, "neutron.db"), nil
}
