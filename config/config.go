package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultEnvFile is read when present; environment variables win over it.
const DefaultEnvFile = ".env"

type Config struct {
	Port    string
	GinMode string
	LLM     LLMConfig
}

// LLMConfig describes the OpenAI-compatible generation backend.
type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type ClientConfig struct {
	APIURL  string
	Timeout time.Duration
}

// Load reads the server configuration. The backend URL and API key are
// only checked for presence.
func Load(envFile string) (*Config, error) {
	v, err := newViper(envFile)
	if err != nil {
		return nil, err
	}

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("llm_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm_model", "llama-3.3-70b-versatile")
	v.SetDefault("llm_temperature", 0.7)
	v.SetDefault("llm_timeout", 60*time.Second)

	apiKey := v.GetString("llm_api_key")
	// GROQ_API_KEY is accepted for existing deployments.
	if apiKey == "" {
		apiKey = v.GetString("groq_api_key")
	}

	cfg := &Config{
		Port:    v.GetString("port"),
		GinMode: v.GetString("gin_mode"),
		LLM: LLMConfig{
			BaseURL:     strings.TrimRight(v.GetString("llm_base_url"), "/"),
			APIKey:      apiKey,
			Model:       v.GetString("llm_model"),
			Temperature: float32(v.GetFloat64("llm_temperature")),
			Timeout:     v.GetDuration("llm_timeout"),
		},
	}

	if cfg.LLM.BaseURL == "" {
		return nil, fmt.Errorf("LLM_BASE_URL is required")
	}
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY (or GROQ_API_KEY) is required")
	}
	if cfg.LLM.Timeout <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT must be positive, got %s", cfg.LLM.Timeout)
	}
	return cfg, nil
}

// LoadClient reads the configuration used by the terminal client.
func LoadClient(envFile string) (*ClientConfig, error) {
	v, err := newViper(envFile)
	if err != nil {
		return nil, err
	}
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("api_timeout", 60*time.Second)

	cfg := &ClientConfig{
		APIURL:  strings.TrimRight(v.GetString("api_url"), "/"),
		Timeout: v.GetDuration("api_timeout"),
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("API_URL is required")
	}
	return cfg, nil
}

func newViper(envFile string) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if envFile == "" {
		return v, nil
	}
	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return nil, fmt.Errorf("stat %s: %w", envFile, err)
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}
	return v, nil
}
