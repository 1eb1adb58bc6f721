package config

import (
	"os"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/seam/pkg/errors"
)

// Layout holds the fixed directory and file names of the patch asset
// format and the target-side backup area. Every call site reads these
// from one Layout value instead of re-declaring them.
type Layout struct {
	DiffsDir         string `koanf:"diffs_dir"`
	FilesDir         string `koanf:"files_dir"`
	DiffExtension    string `koanf:"diff_extension"`
	ManifestFilename string `koanf:"manifest_filename"`
	BackupDir        string `koanf:"backup_dir"`
}

// Restrictions holds the path restriction policy inputs.
type Restrictions struct {
	BlockedExtensions []string `koanf:"blocked_extensions"`
	ProtectedPaths    []string `koanf:"protected_paths"`
}

// Config is the full seam configuration.
type Config struct {
	Layout       Layout       `koanf:"layout"`
	Restrictions Restrictions `koanf:"restrictions"`
}

// Load reads the embedded defaults and then, if overridePath is
// non-empty (or SEAM_CONFIG is set), merges the override file on top.
func Load(overridePath string) (*Config, error) {
	if overridePath == "" {
		overridePath = os.Getenv("SEAM_CONFIG")
	}
	return load(overridePath)
}

func load(overridePath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	if overridePath != "" {
		if _, err := os.Stat(overridePath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", overridePath)
		}
		if err := k.Load(file.Provider(overridePath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", overridePath)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return &cfg, nil
}

// Default returns the embedded default configuration, ignoring any
// SEAM_CONFIG override. The defaults are compiled in, so a parse
// failure is a build defect, not a runtime condition.
func Default() *Config {
	cfg, err := load("")
	if err != nil {
		panic(err)
	}
	return cfg
}
