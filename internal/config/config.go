package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	// ExportRoot is the folder holding one or more unpacked data exports.
	ExportRoot string `toml:"export_root" env:"SNAPSIMP_EXPORT_ROOT" validate:"required"`
	DBPath     string `toml:"db_path" env:"SNAPSIMP_DB_PATH" validate:"required"`
	// Username is the export owner. Empty means: take it from account.html.
	Username  string `toml:"username" env:"SNAPSIMP_USERNAME"`
	OutputDir string `toml:"output_dir" env:"SNAPSIMP_OUTPUT_DIR" validate:"required"`
	LogLevel  string `toml:"log_level" env:"SNAPSIMP_LOG_LEVEL" validate:"oneof=debug info warn warning error"`
}

var validate = validator.New()

// Path returns the location of the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "snapsimp", "config.toml"), nil
}

// Load applies, in order: defaults, the TOML file, SNAPSIMP_* variables.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ExportRoot: filepath.Join(home, "Downloads", "mydata"),
		DBPath:     filepath.Join(home, ".config", "snapsimp", "snapsimp.db"),
		OutputDir:  filepath.Join(home, ".config", "snapsimp", "conversations"),
		LogLevel:   "info",
	}

	cfgPath := filepath.Join(home, ".config", "snapsimp", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	// expand ~ in paths
	cfg.ExportRoot = expandHome(cfg.ExportRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.OutputDir = expandHome(cfg.OutputDir, home)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
