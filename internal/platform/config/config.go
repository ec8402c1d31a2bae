package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

// Config is the runtime configuration: secrets and process settings from the
// environment plus the curation catalogue from YAML.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	CatalogPath string `env:"CONFIG_PATH" envDefault:"config.yaml"`
	PromptsDir  string `env:"PROMPTS_DIR" envDefault:"prompts"`

	LLM     LLMConfig
	Sources SourceConfig
	Output  OutputConfig

	Catalog *Catalog `env:"-"`
}

// Load reads .env (optional), the environment and the catalogue file. A non-empty
// catalogPath wins over CONFIG_PATH.
func Load(catalogPath string) (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyAliases(cfg)

	if strings.TrimSpace(catalogPath) != "" {
		cfg.CatalogPath = catalogPath
	}

	cat, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	applyCatalogOverrides(cfg, cat)
	cfg.Catalog = cat

	return cfg, nil
}

// OutputDir returns the directory documents are written to.
func (c *Config) OutputDir() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}

	return c.Catalog.Output.Dir
}

func applyAliases(cfg *Config) {
	if cfg.LLM.PerplexityAPIKey == "" {
		setStringFromEnv("PPLX_API_KEY", &cfg.LLM.PerplexityAPIKey)
	}

	if cfg.LLM.SocialModel == "" {
		setStringFromEnv("LI_MODEL", &cfg.LLM.SocialModel)
	}
}

func applyCatalogOverrides(cfg *Config, cat *Catalog) {
	overrides := map[domain.Audience]string{
		domain.AudienceExecutive:  cfg.LLM.ExecutiveModel,
		domain.AudienceConsulting: cfg.LLM.ConsultingModel,
		domain.AudienceSocial:     cfg.LLM.SocialModel,
	}

	for a, model := range overrides {
		if model = strings.TrimSpace(model); model != "" {
			cat.Models.set(a, model)
		}
	}

	setBoolFromEnv("USE_LLM", &cat.Summarization.UseLLM)
	setBoolFromEnv("USE_PERPLEXITY", &cat.Research.UsePerplexity)
}

func setStringFromEnv(key string, target *string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return
	}

	*target = val
}

func setBoolFromEnv(key string, target *bool) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}
