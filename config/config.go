package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Resume optimizer specifics
	Agent     AgentConfig
	Session   SessionConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	WebSearch WebSearchConfig
	PDF       PDFConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	MaxUploadMB     int
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
	FilePath     string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// AgentConfig tunes the orchestration loop and its stop conditions.
type AgentConfig struct {
	MaxIterations     int
	MaxContextResults int
	MaxWebSearchCalls int
	MaxOptimizeCalls  int
	Temperature       float64
	RunTimeout        time.Duration
}

type SessionConfig struct {
	Backend     string // memory | redis
	TTL         time.Duration
	MaxSessions int
	LockTTL     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	DSN string
}

type WebSearchConfig struct {
	SerpAPIKey   string
	GoogleAPIKey string
	GoogleCX     string
	Timeout      time.Duration
}

type PDFConfig struct {
	OutputDir  string
	ChromePath string
	PageSize   string // letter | a4
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.MaxUploadMB = viper.GetInt("http_server.max_upload_mb")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.Logger.FilePath = viper.GetString("logger.file_path")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Providers = loadProviders()

	if len(cfg.LLM.Providers) == 0 {
		return nil, fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml or set GEMINI_API_KEY / OPENAI_API_KEY")
	}
	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	// Agent
	cfg.Agent.MaxIterations = viper.GetInt("agent.max_iterations")
	cfg.Agent.MaxContextResults = viper.GetInt("agent.max_context_results")
	cfg.Agent.MaxWebSearchCalls = viper.GetInt("agent.max_web_search_calls")
	cfg.Agent.MaxOptimizeCalls = viper.GetInt("agent.max_optimize_calls")
	cfg.Agent.Temperature = viper.GetFloat64("agent.temperature")
	cfg.Agent.RunTimeout = viper.GetDuration("agent.run_timeout")

	// Session
	cfg.Session.Backend = strings.ToLower(viper.GetString("session.backend"))
	cfg.Session.TTL = viper.GetDuration("session.ttl")
	cfg.Session.MaxSessions = viper.GetInt("session.max_sessions")
	cfg.Session.LockTTL = viper.GetDuration("session.lock_ttl")

	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = expandEnvVar(viper.GetString("redis.password"))
	cfg.Redis.DB = viper.GetInt("redis.db")

	cfg.Postgres.DSN = expandEnvVar(viper.GetString("postgres.dsn"))
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	// Web search: SERPAPI_KEY is honoured as-is for compatibility with existing deployments.
	cfg.WebSearch.SerpAPIKey = expandEnvVar(viper.GetString("websearch.serpapi_key"))
	if key := viper.GetString("serpapi_key"); key != "" {
		cfg.WebSearch.SerpAPIKey = key
	}
	cfg.WebSearch.GoogleAPIKey = expandEnvVar(viper.GetString("websearch.google_api_key"))
	cfg.WebSearch.GoogleCX = viper.GetString("websearch.google_cx")
	cfg.WebSearch.Timeout = viper.GetDuration("websearch.timeout")

	cfg.PDF.OutputDir = viper.GetString("pdf.output_dir")
	cfg.PDF.ChromePath = viper.GetString("pdf.chrome_path")
	if p := viper.GetString("chrome_path"); p != "" {
		cfg.PDF.ChromePath = p
	}
	cfg.PDF.PageSize = strings.ToLower(viper.GetString("pdf.page_size"))

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.max_upload_mb", 10)
	viper.SetDefault("http_server.rate_limit_per_min", 30)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("logger.file_path", "")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")

	// Agent defaults: one call per context tool, five searches, one render.
	viper.SetDefault("agent.max_iterations", 8)
	viper.SetDefault("agent.max_context_results", 1)
	viper.SetDefault("agent.max_web_search_calls", 5)
	viper.SetDefault("agent.max_optimize_calls", 1)
	viper.SetDefault("agent.temperature", 0.1)
	viper.SetDefault("agent.run_timeout", "180s")

	viper.SetDefault("session.backend", "memory")
	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("session.max_sessions", 1000)
	viper.SetDefault("session.lock_ttl", "5m")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("websearch.timeout", "15s")

	viper.SetDefault("pdf.output_dir", "optimized_resumes")
	viper.SetDefault("pdf.page_size", "letter")
}

// loadProviders reads llm.providers from the config file. When no list is
// configured, a provider is synthesised from GEMINI_API_KEY / OPENAI_API_KEY.
func loadProviders() []ProviderConfig {
	var providers []ProviderConfig

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					providers = append(providers, ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					})
				}
			}
		}
	}
	if len(providers) > 0 {
		return providers
	}

	priority := 1
	if key := viper.GetString("gemini_api_key"); key != "" {
		providers = append(providers, ProviderConfig{
			Name: "gemini", Enabled: true, Priority: priority, APIKey: key, Model: "gemini-2.0-flash",
		})
		priority++
	}
	if key := viper.GetString("openai_api_key"); key != "" {
		providers = append(providers, ProviderConfig{
			Name: "openai", Enabled: true, Priority: priority, APIKey: key, Model: "gpt-4o-mini",
		})
	}
	return providers
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
