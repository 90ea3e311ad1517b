package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// MarkerDir is the project-local directory that anchors all contrack state.
// Path resolution walks up from the working directory looking for it before
// falling back to the per-OS config directory.
const MarkerDir = ".contrack"

type Organization struct {
	Name        string `toml:"name"`
	Description string `toml:"description,omitempty"`
}

type RepositoryConfig struct {
	Organization string `toml:"organization"`
	Name         string `toml:"name"`
	Description  string `toml:"description,omitempty"`
}

// Config is the human-editable mirror of the repositories table.
// Organizations are keyed by a short identifier, repositories by URL.
type Config struct {
	Organizations map[string]Organization     `toml:"organizations"`
	Repositories  map[string]RepositoryConfig `toml:"repositories"`
}

func New() *Config {
	return &Config{
		Organizations: map[string]Organization{},
		Repositories:  map[string]RepositoryConfig{},
	}
}

// FindProjectDir walks up from start looking for a .contrack directory.
func FindProjectDir(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		marker := filepath.Join(dir, MarkerDir)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return marker, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Locations reports the resolved storage paths and how they were chosen.
type Locations struct {
	Dir          string
	DatabasePath string
	ConfigPath   string
	ProjectLocal bool
}

// Resolve determines where the database and config file live: a project-local
// .contrack directory if one is found walking up from the working directory,
// otherwise the per-OS user config directory.
func Resolve() (*Locations, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	if dir, ok := FindProjectDir(cwd); ok {
		return &Locations{
			Dir:          dir,
			DatabasePath: filepath.Join(dir, "contributions.db"),
			ConfigPath:   filepath.Join(dir, "config.toml"),
			ProjectLocal: true,
		}, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine user config directory: %w", err)
	}
	dir := filepath.Join(base, "contrack")

	return &Locations{
		Dir:          dir,
		DatabasePath: filepath.Join(dir, "contributions.db"),
		ConfigPath:   filepath.Join(dir, "config.toml"),
	}, nil
}

// EnsureDir creates the resolved state directory if it does not exist.
func (l *Locations) EnsureDir() error {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", l.Dir, err)
	}
	return nil
}

// Load reads the config file at path. A missing file is not an error; it
// yields an empty config.
func Load(path string) (*Config, error) {
	cfg := New()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Organizations == nil {
		cfg.Organizations = map[string]Organization{}
	}
	if cfg.Repositories == nil {
		cfg.Repositories = map[string]RepositoryConfig{}
	}
	return cfg, nil
}

// Save writes the config file, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
