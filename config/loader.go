package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load, for example
// SIRDA_TIME_CONSTANTS_DIAGNOSIS.
const EnvPrefix = "SIRDA"

// flagBindings maps config keys to the flag names that override them.
var flagBindings = map[string]string{
	"simulation.t0":      "t0",
	"simulation.horizon": "horizon",
	"output.csv":         "csv",
	"output.json":        "json",
	"output.db":          "db",
	"output.plot":        "plot",
	"output.plot_title":  "title",
	"log.level":          "log-level",
	"log.development":    "dev",
}

// Load reads the settings. Precedence: flags > env > config file >
// defaults. The env file, when it exists, is loaded into the environment
// first without overriding variables that are already set. Any argument may
// be empty or nil.
func Load(configFile, envFile string, flagSet *flag.FlagSet) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if err := setDefaults(v); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flagSet); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		return nil
	}

	err := godotenv.Load(envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// setDefaults feeds the default config into viper as the lowest layer, so
// that every key is known to AutomaticEnv.
func setDefaults(v *viper.Viper) error {
	buf := new(bytes.Buffer)
	if err := Write(buf, Default()); err != nil {
		return err
	}

	return v.ReadConfig(buf)
}

func bindFlags(v *viper.Viper, flagSet *flag.FlagSet) error {
	if flagSet == nil {
		return nil
	}

	for key, name := range flagBindings {
		f := flagSet.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	return nil
}

// Write encodes the config as YAML.
func Write(w io.Writer, c *Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return err
	}

	return encoder.Close()
}

// WriteFile writes the config into a new YAML file. It does not replace an
// existing file.
func WriteFile(path string, c *Config) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if err := Write(file, c); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
