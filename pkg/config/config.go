package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const envPrefix = "TALLY"

type Config struct {
	File              string   `mapstructure:"file"`
	LogLevel          string   `mapstructure:"log_level"`
	Autoload          bool     `mapstructure:"autoload"`
	IncomeCategories  []string `mapstructure:"income_categories"`
	ExpenseCategories []string `mapstructure:"expense_categories"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"file":      "file",
	"log-level": "log_level",
	"autoload":  "autoload",
}

// Build merges, from lowest to highest priority: defaults, the config file,
// TALLY_* environment variables (a .env file is read too) and flags.
// An explicit cfgFile must exist; the implicit ./config.yaml is optional.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load()

	v := viper.New()
	v.SetDefault("file", "transactions.txt")
	v.SetDefault("log_level", "info")
	v.SetDefault("autoload", false)
	v.SetDefault("income_categories", []string{"Salary", "Business"})
	v.SetDefault("expense_categories", []string{"Food", "Rent", "Travel"})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.File == "" {
		return nil, fmt.Errorf("config: file must not be empty")
	}
	return &cfg, nil
}
