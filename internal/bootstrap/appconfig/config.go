// Package appconfig loads daemon configuration from YAML with environment
// overrides. Precedence: defaults < config file < NEARBITE_* env vars.
package appconfig

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

const DefaultRPCAddr = "127.0.0.1:8790"

func Default() Config {
	return Config{
		Server: ServerConfig{Addr: DefaultRPCAddr},
	}
}

// LoadFromPath reads the first readable candidate config file and applies env
// overrides. A missing or malformed file falls back to defaults; config is
// optional for a local daemon.
func LoadFromPath(configPath string) Config {
	cfg := Default()

	candidates := make([]string, 0, 2)
	if configPath != "" {
		candidates = append(candidates, configPath)
	} else {
		candidates = append(candidates,
			"go-backend/configs/config.yaml",
			"configs/config.yaml",
		)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		merged := cfg
		Merge(&merged, parsed)
		ApplyEnvOverrides(&merged)
		return merged
	}

	ApplyEnvOverrides(&cfg)
	return cfg
}

func Merge(dst *Config, src Config) {
	if strings.TrimSpace(src.Server.Addr) != "" {
		dst.Server.Addr = strings.TrimSpace(src.Server.Addr)
	}
	if strings.TrimSpace(src.Catalog.Path) != "" {
		dst.Catalog.Path = strings.TrimSpace(src.Catalog.Path)
	}
}

func ApplyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("NEARBITE_RPC_ADDR")); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("NEARBITE_CATALOG_PATH")); v != "" {
		cfg.Catalog.Path = v
	}
}
