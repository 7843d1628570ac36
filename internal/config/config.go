package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents runtime configuration for both tiers.
type Config struct {
	Gateway     GatewayConfig             `json:"gateway"`
	DataService DataServiceConfig         `json:"data_service"`
	Databases   map[string]DatabaseConfig `json:"databases"`
}

type GatewayConfig struct {
	ListenAddress         string   `json:"listen_address"`
	DataServiceURL        string   `json:"data_service_url"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds"`
	AllowedOrigins        []string `json:"allowed_origins"`
}

type DataServiceConfig struct {
	ListenAddress  string   `json:"listen_address"`
	AllowedOrigins []string `json:"allowed_origins"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	Params   string `json:"params"`
}

// Load reads configuration from the provided path (defaults to config.json).
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if len(cfg.Databases) == 0 {
		return nil, fmt.Errorf("at least one database must be configured")
	}

	// Relative sqlite paths are resolved against the config directory.
	for name, dbCfg := range cfg.Databases {
		if !strings.HasPrefix(name, "sqlite") {
			continue
		}
		dsn := dbCfg.DSN
		if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
			continue
		}
		if !filepath.IsAbs(dsn) {
			dbCfg.DSN = filepath.Join(filepath.Dir(absPath), dsn)
			cfg.Databases[name] = dbCfg
		}
	}

	return &cfg, nil
}
