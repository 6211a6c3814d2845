package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/papers-extractor/internal/common"
)

const (
	DefaultMaxTokens   = 800
	DefaultRetries     = 3
	DefaultBackoffUnit = time.Second
)

// InvokerConfig holds the defaults applied to every Call.
type InvokerConfig struct {
	Model       string
	Retries     int
	BackoffUnit time.Duration
}

// Invoker sends prompts through a Completer, retrying failed calls with a
// growing backoff, and turns the reply into a Result.
type Invoker struct {
	completer Completer
	cfg       InvokerConfig
	timer     retry.Timer
	logger    *slog.Logger
}

func NewInvoker(completer Completer, cfg InvokerConfig, logger *slog.Logger) *Invoker {
	if cfg.Retries <= 0 {
		cfg.Retries = DefaultRetries
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = DefaultBackoffUnit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{completer: completer, cfg: cfg, logger: logger}
}

// WithTimer replaces the timer used to wait between attempts.
func (i *Invoker) WithTimer(t retry.Timer) *Invoker {
	i.timer = t
	return i
}

// Backoff is the wait after the given zero-based failed attempt.
func (i *Invoker) Backoff(attempt int) time.Duration {
	return time.Duration(1+attempt*2) * i.cfg.BackoffUnit
}

// Invoke never returns an error: call failures become a CallFailure result
// and unparseable replies a ParseFailure.
func (i *Invoker) Invoke(ctx context.Context, call Call) Result {
	req := ChatRequest{
		Model:       call.Model,
		System:      call.System,
		User:        call.Prompt,
		MaxTokens:   call.MaxTokens,
		Temperature: call.Temperature,
	}
	if req.Model == "" {
		req.Model = i.cfg.Model
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}
	retries := call.Retries
	if retries <= 0 {
		retries = i.cfg.Retries
	}

	reqID := uuid.New().String()
	log := i.logger.With("req_id", reqID, "call", call.Name, "model", req.Model)
	if runID := common.RunIDFromContext(ctx); runID != "" {
		log = log.With("run_id", runID)
	}
	if docID := common.DocumentIDFromContext(ctx); docID != "" {
		log = log.With("document", docID)
	}
	start := time.Now()
	log.Info("llm.invoke.start", "prompt_len", len(req.User), "max_tokens", req.MaxTokens, "retries", retries)

	if i.completer == nil {
		err := errors.New("no llm client configured")
		log.Error("llm.invoke.failed", "error", err)
		return CallFailure(err)
	}

	var (
		content string
		attempt int
	)
	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(uint(retries)),
		retry.LastErrorOnly(true),
		retry.DelayType(func(_ uint, _ error, _ *retry.Config) time.Duration {
			return i.Backoff(attempt - 1)
		}),
		retry.OnRetry(func(_ uint, err error) {
			if attempt < retries {
				log.Warn("llm.invoke.retry", "attempt", attempt, "error", err, "backoff", i.Backoff(attempt-1))
			}
		}),
	}
	if i.timer != nil {
		opts = append(opts, retry.WithTimer(i.timer))
	}

	err := retry.Do(func() error {
		attempt++
		out, err := i.completer.Complete(ctx, req)
		if err != nil {
			return err
		}
		content = out
		return nil
	}, opts...)
	if err != nil {
		log.Error("llm.invoke.failed",
			"attempts", attempt,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return CallFailure(err)
	}

	res := ParseJSON(content)
	log.Info("llm.invoke.ok",
		"attempts", attempt,
		"result", res.Kind.String(),
		"reply_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}
