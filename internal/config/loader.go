package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const sessionFile = "session.yaml"

// LoadSession loads and validates the session configuration.
// Search order: customPath -> ~/.rhythm/configs/session.yaml -> ./configs/session.yaml -> embedded default.
// Files only need to set the fields they change.
func LoadSession(customPath string) (Session, error) {
	cfg := embeddedSession()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return validated(cfg)
	}

	for _, path := range []string{userConfigPath(sessionFile), filepath.Join("configs", sessionFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := cfg
		candidate.Tiers = append(candidate.Tiers[:0:0], cfg.Tiers...)
		candidate.Bindings = append(candidate.Bindings[:0:0], cfg.Bindings...)
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return validated(candidate)
		}
	}

	return validated(cfg)
}

func validated(cfg Session) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// embeddedSession parses the embedded default YAML, falling back to the
// hardcoded defaults if it cannot be read.
func embeddedSession() Session {
	var cfg Session
	if err := yaml.Unmarshal(defaultSessionYAML, &cfg); err != nil || len(cfg.Tiers) == 0 {
		return DefaultSession()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// UserDir returns ~/.rhythm, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rhythm")
}
