package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/techtimes/techtimes/pkg/ollama"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Scan          ScanConfig    `yaml:"scan"`
}

// ScanConfig controls the optional model-assisted field extraction. Disabled
// means offline mode: scan requests fail with a fixed error instead of
// reaching for a model server.
type ScanConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Model         string        `yaml:"model"`
	MinConfidence float64       `yaml:"min_confidence"`
	Client        ollama.Config `yaml:"client"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("TT_ADDR", ":8080"),
		JWTSecret:     getEnv("TT_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("TT_DATABASE_PATH", "techtimes.db"),
		TokenDuration: 12 * time.Hour,
		Scan: ScanConfig{
			Model:         "llama3",
			MinConfidence: 0.5,
			Client:        ollama.DefaultConfig(),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
