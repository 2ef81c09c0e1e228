package cmd

import (
	"fmt"

	"github.com/spf13/viper"
)

// DBConfig is the database section of dumptool.yaml, used as a fallback for
// restore connection flags.
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// GetDBConfig returns the database configuration from the config file, or an
// empty config when no file is present.
func GetDBConfig() (*DBConfig, error) {
	var cfg DBConfig
	if err := viper.UnmarshalKey("database", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	return &cfg, nil
}
