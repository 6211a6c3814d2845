package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/papers-extractor/internal/common"
	"github.com/joseph-ayodele/papers-extractor/internal/export"
	"github.com/joseph-ayodele/papers-extractor/internal/fields"
	"github.com/joseph-ayodele/papers-extractor/internal/llm"
	"github.com/joseph-ayodele/papers-extractor/internal/llm/openai"
	"github.com/joseph-ayodele/papers-extractor/internal/pdftext"
	"github.com/joseph-ayodele/papers-extractor/internal/pipeline"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "papers-extractor",
	Short: "Extract structured metadata from academic PDF papers with an LLM",
	Long: `papers-extractor reads the text of academic PDFs, locates the sections that
matter (introduction, data, results) and asks a chat-completion model for
structured fields: bibliographic metadata, whether the introduction builds a
theoretical model, what the data section covers and the main empirical
equation. A batch run writes one spreadsheet row per paper.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./papers-extractor.yaml or ~/.papers-extractor/papers-extractor.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	rootCmd.AddCommand(batchCmd, inspectCmd, sectionCmd, versionCmd)
}

// app is everything a command needs, built once per invocation.
type app struct {
	cfg       *common.Config
	logger    *slog.Logger
	processor *pipeline.Processor
}

func loadConfig() (*common.Config, *slog.Logger, error) {
	cfg, err := common.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newTextExtractor(cfg *common.Config, logger *slog.Logger) *pdftext.Extractor {
	return pdftext.NewExtractor(pdftext.Config{
		Pdftotext: cfg.PDF.Pdftotext,
		MaxPages:  cfg.PDF.MaxPages,
	}, logger)
}

// newApp validates the configuration, failing before any document is read
// when the API key is missing, and wires the LLM client into the pipeline.
func newApp() (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "error", err)
		return nil, err
	}

	client, err := openai.NewClient(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}
	invoker := llm.NewInvoker(client, llm.InvokerConfig{
		Model:       cfg.LLM.Model,
		Retries:     cfg.LLM.Retries,
		BackoffUnit: cfg.LLM.BackoffUnit,
	}, logger)

	text := newTextExtractor(cfg, logger)
	extractor := fields.NewExtractor(invoker, cfg.LLM.Model, logger).WithTemperature(cfg.LLM.Temperature)
	processor := pipeline.NewProcessor(logger, pipeline.NewTextStage(text), pipeline.NewFieldsStage(extractor))

	return &app{cfg: cfg, logger: logger, processor: processor}, nil
}

func (a *app) batch() *pipeline.Batch {
	return pipeline.NewBatch(a.processor, export.NewService(a.logger), a.logger)
}
