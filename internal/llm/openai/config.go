package openai

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/joseph-ayodele/papers-extractor/internal/common"
	"github.com/joseph-ayodele/papers-extractor/internal/llm"
)

// Config for the chat-completion client. Any OpenAI-compatible endpoint works
// (DeepSeek, local gateways) when BaseURL points at it.
type Config struct {
	APIKey     string
	BaseURL    string        // empty uses the SDK default
	Model      string        // used when a request names none
	Timeout    time.Duration // http client timeout
	HTTPClient *http.Client  // optional; overrides Timeout
}

type Client struct {
	cfg    Config
	sdk    openai.Client
	logger *slog.Logger
}

// NewClient validates the credential and builds the SDK client once. SDK-level
// retries are disabled; llm.Invoker retries.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai client: %w", common.ErrMissingCredential)
	}
	if cfg.Model == "" {
		cfg.Model = common.DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = common.DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = llm.NewHTTPClient(cfg.Timeout, logger)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logger.Info("llm.client.init", "model", cfg.Model, "base_url", cfg.BaseURL, "timeout", cfg.Timeout.String())
	return &Client{
		cfg:    cfg,
		sdk:    openai.NewClient(opts...),
		logger: logger,
	}, nil
}
