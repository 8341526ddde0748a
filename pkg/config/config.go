// Package config resolves the settings of one packing run from
// defaults, an optional config file, and EMOJIPACK_* environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tqbf/emojipack/pkg/pack"
	"github.com/tqbf/emojipack/pkg/paths"
)

const (
	DefaultGroup = "Custom"
	EnvPrefix    = "EMOJIPACK"
)

var (
	ErrNoFolder      = errors.New("no source folder given")
	ErrInvalidFolder = errors.New("invalid source folder")
)

type Config struct {
	Folder     string   `mapstructure:"folder"`
	Group      string   `mapstructure:"group"`
	Host       string   `mapstructure:"host"`
	WorkDir    string   `mapstructure:"workdir"`
	Output     string   `mapstructure:"output"`
	Excludes   []string `mapstructure:"exclude"`
	ArchiveAll bool     `mapstructure:"archive_all"`
	Verify     bool     `mapstructure:"verify"`
	Verbose    bool     `mapstructure:"verbose"`
}

func Default() Config {
	return Config{
		Group:   DefaultGroup,
		Host:    pack.DefaultHost,
		WorkDir: ".",
		Verify:  true,
	}
}

// Load layers the config file at path (if non-empty) and the
// environment over Default.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("folder", defaults.Folder)
	v.SetDefault("group", defaults.Group)
	v.SetDefault("host", defaults.Host)
	v.SetDefault("workdir", defaults.WorkDir)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("exclude", []string{})
	v.SetDefault("archive_all", defaults.ArchiveAll)
	v.SetDefault("verify", defaults.Verify)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf(
				"read config %s: %w", path, err,
			)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// OutputPath is where the archive goes: Output if set, otherwise
// DefaultArchiveName one level above WorkDir.
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return filepath.Join(
		c.WorkDir, "..", pack.DefaultArchiveName,
	)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Folder) == "" {
		return ErrNoFolder
	}

	info, err := os.Stat(c.Folder)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFolder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory",
			ErrInvalidFolder, c.Folder)
	}

	work, err := filepath.Abs(c.WorkDir)
	if err != nil {
		return fmt.Errorf("resolve workdir: %w", err)
	}
	folder, err := filepath.Abs(c.Folder)
	if err != nil {
		return fmt.Errorf("resolve folder: %w", err)
	}
	if !paths.IsWithinDir(work, folder) {
		return fmt.Errorf(
			"%w: %s is outside the working directory %s",
			ErrInvalidFolder, c.Folder, work,
		)
	}
	return nil
}
