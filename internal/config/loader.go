package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/utils"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file path is the argument, then HABITUAL_CONFIG, then the default
// location. A missing file is only an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("HABITUAL_CONFIG")
		explicitPath = path != ""
	}
	if !explicitPath {
		path = constants.DefaultConfigFile
	}

	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", path, err)
	}

	if _, err := os.Stat(expanded); err == nil {
		if err := cleanenv.ReadConfig(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", expanded, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", expanded, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
