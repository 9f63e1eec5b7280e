// Package config loads regkit defaults from ~/.regkit/config.yaml and
// REGKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"github.com/joshuapare/regkit/internal/options"
	"github.com/joshuapare/regkit/internal/regtext"
)

const (
	dirName   = ".regkit"
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "REGKIT"
)

// Keys understood in the config file and, upper-cased, in the environment.
const (
	KeyBits      = "bits"
	KeyDebug     = "debug"
	KeyLowercase = "lowercase"
	KeyFormat    = "format"
	KeyProgram   = "program"
)

// Keys lists every recognized key.
var Keys = []string{KeyBits, KeyDebug, KeyLowercase, KeyFormat, KeyProgram}

// Config is the loaded configuration.
type Config struct {
	Defaults options.Defaults
	Program  string // reg.exe binary to run
	File     string // config file actually read; "" if none
}

// Dir returns the regkit config directory (~/.regkit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// FilePath returns the default config file (~/.regkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a viper instance reading path (FilePath() when empty) and
// the REGKIT_* environment, with regkit's defaults registered.
func New(path string) *viper.Viper {
	if path == "" {
		path = FilePath()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyBits, 0)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLowercase, false)
	v.SetDefault(KeyFormat, "")
	v.SetDefault(KeyProgram, regtext.Program)
	return v
}

// Load reads the configuration. A missing file is not an error.
func Load(path string) (Config, error) {
	v := New(path)
	if err := read(v); err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// FromViper extracts a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Defaults: options.Defaults{
			Bits:      v.GetInt(KeyBits),
			Debug:     v.GetBool(KeyDebug),
			Lowercase: v.GetBool(KeyLowercase),
			Format:    v.GetString(KeyFormat),
		},
		Program: v.GetString(KeyProgram),
		File:    v.ConfigFileUsed(),
	}
	switch cfg.Defaults.Bits {
	case 0, 32, 64:
	default:
		return Config{}, fmt.Errorf("config %s: %d is not 32 or 64", KeyBits, cfg.Defaults.Bits)
	}
	if _, err := os.Stat(cfg.File); err != nil {
		cfg.File = ""
	}
	return cfg, nil
}

// Set writes key=value into the config file at path (FilePath() when
// empty), creating the file and its directory if needed.
func Set(path, key, value string) error {
	if !known(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	v := New(path)
	if err := read(v); err != nil {
		return err
	}

	file := v.ConfigFileUsed()
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	typed, err := parse(key, value)
	if err != nil {
		return err
	}
	v.Set(key, typed)
	if _, err := FromViper(v); err != nil {
		return err
	}
	if err := v.WriteConfigAs(file); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func read(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("reading config: %w", err)
}

func parse(key, value string) (any, error) {
	switch key {
	case KeyBits:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", key, err)
		}
		return n, nil
	case KeyDebug, KeyLowercase:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", key, err)
		}
		return b, nil
	default:
		return value, nil
	}
}

func known(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
