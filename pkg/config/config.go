package config

// Package config provides a reusable loader for Synnergy configuration files
// and environment variables. It is versioned so that applications can depend
// on a stable API contract.
//
// Version: v0.1.0

import (
	"fmt"

	"github.com/spf13/viper"

	"contracthost/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config represents the unified configuration for a host process. It mirrors
// the structure of the YAML files under cmd/config.
type Config struct {
	Ledger struct {
		NetworkID                   string `mapstructure:"network_id" json:"network_id"`
		ProtocolVersion              int    `mapstructure:"protocol_version" json:"protocol_version"`
		MinPersistentEntryExpiration int    `mapstructure:"min_persistent_entry_expiration" json:"min_persistent_entry_expiration"`
		MaxEntryExpiration           int    `mapstructure:"max_entry_expiration" json:"max_entry_expiration"`
	} `mapstructure:"ledger" json:"ledger"`

	Budget struct {
		CPULimit uint64 `mapstructure:"cpu_limit" json:"cpu_limit"`
		MemLimit uint64 `mapstructure:"mem_limit" json:"mem_limit"`
	} `mapstructure:"budget" json:"budget"`

	Sandbox struct {
		MemLimit uint64 `mapstructure:"mem_limit" json:"mem_limit"`
		CPULimit uint64 `mapstructure:"cpu_limit" json:"cpu_limit"`
	} `mapstructure:"sandbox" json:"sandbox"`

	Diagnostics struct {
		Level string `mapstructure:"level" json:"level"`
	} `mapstructure:"diagnostics" json:"diagnostics"`

	Server struct {
		ListenAddr      string `mapstructure:"listen_addr" json:"listen_addr"`
		RateLimitPerSec int    `mapstructure:"rate_limit_per_sec" json:"rate_limit_per_sec"`
	} `mapstructure:"server" json:"server"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up overrides from environment variables

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the HOST_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("HOST_ENV", ""))
}
