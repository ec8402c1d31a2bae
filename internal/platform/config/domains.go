package config

import "time"

// LLMConfig holds narrative generator settings.
type LLMConfig struct {
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	PerplexityAPIKey string `env:"PERPLEXITY_API_KEY"`

	// Model overrides win over the catalogue.
	ExecutiveModel  string `env:"EXEC_MODEL"`
	ConsultingModel string `env:"CONS_MODEL"`
	SocialModel     string `env:"SOCIAL_MODEL"`

	Timeout          time.Duration `env:"LLM_TIMEOUT" envDefault:"90s"`
	RateLimitRPS     float64       `env:"LLM_RATE_LIMIT_RPS" envDefault:"1"`
	CircuitThreshold int           `env:"LLM_CIRCUIT_THRESHOLD" envDefault:"5"`
	CircuitReset     time.Duration `env:"LLM_CIRCUIT_RESET" envDefault:"1m"`
}

// SourceConfig holds collector credentials and HTTP behaviour.
type SourceConfig struct {
	GitHubToken      string        `env:"GITHUB_TOKEN"`
	XBearerToken     string        `env:"X_BEARER_TOKEN"`
	RedditUserAgent  string        `env:"REDDIT_USER_AGENT" envDefault:"search-intel-brief/1.0"`
	CollectorTimeout time.Duration `env:"COLLECTOR_TIMEOUT" envDefault:"45s"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

// OutputConfig holds where and how documents are written.
type OutputConfig struct {
	Dir             string `env:"OUTPUT_DIR"`
	DisplayTimezone string `env:"DISPLAY_TZ" envDefault:"Asia/Kolkata"`
	MetricsTextfile string `env:"METRICS_TEXTFILE"`
	HealthPort      int    `env:"HEALTH_PORT" envDefault:"0"`
}
