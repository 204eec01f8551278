// Package config loads the settings of the command line tool.
//
// Values come, from lowest to highest priority, from the defaults, an
// optional config file (any format viper reads), PREFIXIDX_* environment
// variables (a .env file is loaded into the environment first), and the
// command line flags bound to the viper instance.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aglyzov/prefixidx/internal/logger"
	"github.com/aglyzov/prefixidx/query"
)

const EnvPrefix = "PREFIXIDX"

// Config holds all the settings.
type Config struct {
	// Dictionary is the default dictionary file
	Dictionary string      `mapstructure:"dictionary"`
	Sentinel   string      `mapstructure:"sentinel"`
	Log        logger.Conf `mapstructure:"log"`
}

// New returns a viper instance with defaults and environment lookups. When
// file is not empty it is read as the config file.
func New(file string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper) {
	logConf := logger.SetDefaults()

	v.SetDefault("dictionary", "")
	v.SetDefault("sentinel", query.DefaultSentinel)
	v.SetDefault("log.level", logConf.Level)
	v.SetDefault("log.output", logConf.Output)
	v.SetDefault("log.path", logConf.Path)
	v.SetDefault("log.filename", logConf.Filename)
	v.SetDefault("log.rotate_size", logConf.RotateSize)
	v.SetDefault("log.rotate_num", logConf.RotateNum)
	v.SetDefault("log.keep_days", logConf.KeepDays)
}

// Load unmarshals and validates the settings.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sentinel) == "" || strings.ContainsAny(c.Sentinel, " \t\r\n") {
		return fmt.Errorf("sentinel must be a single word, got %q", c.Sentinel)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

// LoadDotEnv loads .env files into the environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	return nil
}
