package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	appName    = "quizme"
	configName = "config"
	configType = "toml"
	envPrefix  = "QUIZME"
	fileMode   = 0o600
	dirMode    = 0o700
)

// Keys of the configuration file and their QUIZME_* environment variables.
const (
	KeyQuestions     = "questions"
	KeyColor         = "color"
	KeyShowBoxCounts = "show_box_counts"
	KeyJournalDSN    = "journal_dsn"
	KeyVerbose       = "verbose"
)

// Config is the effective application configuration.
type Config struct {
	// Questions is the default question file used when none is given on
	// the command line.
	Questions string `mapstructure:"questions" toml:"questions"`

	// Color enables styled console output.
	Color bool `mapstructure:"color" toml:"color"`

	// ShowBoxCounts prints per-box counts after every scored answer.
	ShowBoxCounts bool `mapstructure:"show_box_counts" toml:"show_box_counts"`

	// JournalDSN is the SQLite DSN for the session journal. Empty means a
	// private in-memory database.
	JournalDSN string `mapstructure:"journal_dsn" toml:"journal_dsn"`

	// Verbose enables debug logging on stderr.
	Verbose bool `mapstructure:"verbose" toml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Color:         true,
		ShowBoxCounts: true,
	}
}

// Load resolves the configuration into v from, in decreasing priority:
// values already bound on v (such as cobra flags), QUIZME_* environment
// variables, the config file, and defaults. When path is empty the file
// is looked up in DefaultDir and may be absent; an explicit path must exist.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	def := Default()
	v.SetDefault(KeyQuestions, def.Questions)
	v.SetDefault(KeyColor, def.Color)
	v.SetDefault(KeyShowBoxCounts, def.ShowBoxCounts)
	v.SetDefault(KeyJournalDSN, def.JournalDSN)
	v.SetDefault(KeyVerbose, def.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// DefaultDir returns $XDG_CONFIG_HOME/quizme, falling back to ~/.config/quizme.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the config file path inside DefaultDir.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Write saves cfg as TOML at path, creating the parent directory. The file
// is written to a temporary name first and renamed into place.
func Write(path string, cfg Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml.tmp")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	return nil
}
