package common

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	LLM LLMConfig
	PDF PDFConfig
	Log LogConfig
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	Retries     int
	BackoffUnit time.Duration
}

// PDFConfig holds text-extraction configuration
type PDFConfig struct {
	Pdftotext string // optional fallback binary; empty disables it
	MaxPages  int    // 0 = all pages
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string
}

// Defaults used when neither the config file nor the environment sets a key.
const (
	DefaultModel       = "deepseek-chat"
	DefaultTimeout     = 60 * time.Second
	DefaultRetries     = 3
	DefaultBackoffUnit = time.Second
)

// LoadConfig loads configuration from defaults, an optional YAML file and
// environment variables (highest precedence).
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout", DefaultTimeout)
	v.SetDefault("llm.retries", DefaultRetries)
	v.SetDefault("llm.backoff_unit", DefaultBackoffUnit)
	v.SetDefault("pdf.pdftotext", "")
	v.SetDefault("pdf.max_pages", 0)
	v.SetDefault("log.level", "info")

	// The key is looked up under a few historical names, first match wins.
	_ = v.BindEnv("llm.api_key", "LLM_API_KEY", "DEEPSEEK_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("llm.model", "LLM_MODEL")
	_ = v.BindEnv("llm.base_url", "LLM_BASE_URL")
	_ = v.BindEnv("llm.temperature", "LLM_TEMPERATURE")
	_ = v.BindEnv("llm.timeout", "LLM_TIMEOUT")
	_ = v.BindEnv("llm.retries", "LLM_RETRIES")
	_ = v.BindEnv("llm.backoff_unit", "LLM_BACKOFF_UNIT")
	_ = v.BindEnv("pdf.pdftotext", "PDFTOTEXT_BIN")
	_ = v.BindEnv("pdf.max_pages", "PDF_MAX_PAGES")
	_ = v.BindEnv("log.level", "LOG_LEVEL")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("papers-extractor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.papers-extractor")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{
		LLM: LLMConfig{
			APIKey:      strings.TrimSpace(v.GetString("llm.api_key")),
			Model:       v.GetString("llm.model"),
			BaseURL:     v.GetString("llm.base_url"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     v.GetDuration("llm.timeout"),
			Retries:     v.GetInt("llm.retries"),
			BackoffUnit: v.GetDuration("llm.backoff_unit"),
		},
		PDF: PDFConfig{
			Pdftotext: v.GetString("pdf.pdftotext"),
			MaxPages:  v.GetInt("pdf.max_pages"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}, nil
}

// Validate checks the settings needed before any document is processed.
// A missing API key is reported as ErrMissingCredential.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return NewAppError(CodeConfig, "LLM_API_KEY (or DEEPSEEK_API_KEY / OPENAI_API_KEY) is required", ErrMissingCredential)
	}
	v := NewValidator().
		Field("llm.model", c.LLM.Model, Required).
		Field("llm.retries", c.LLM.Retries, Positive).
		Field("llm.timeout", c.LLM.Timeout, AtLeast(time.Millisecond)).
		Field("llm.backoff_unit", c.LLM.BackoffUnit, AtLeast(time.Millisecond)).
		Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error"))
	if v.HasErrors() {
		return NewAppError(CodeConfig, v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
