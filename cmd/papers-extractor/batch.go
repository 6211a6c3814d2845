package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/papers-extractor/internal/common"
	"github.com/joseph-ayodele/papers-extractor/internal/pipeline"
)

var (
	batchDir        string
	batchOut        string
	batchShowHidden bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every PDF in a folder into one spreadsheet",
	Long: `Processes each PDF directly inside --dir (subfolders are ignored) one after
another and writes a single XLSX workbook when all files are done. A file that
cannot be read, or whose model calls fail, still gets a row; the reason is in
its extraction_notes column.`,
	Example: `  papers-extractor batch --dir ./papers
  papers-extractor batch --dir ./papers --out ./summary.xlsx -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if batchDir == "" {
			return common.NewAppError(common.CodeInput, "--dir is required", common.ErrInvalidInput)
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		out := batchOut
		if out == "" {
			out = pipeline.DefaultOutputPath(batchDir)
		}

		ctx := cmd.Context()
		runID := uuid.New().String()
		ctx = common.WithRunID(ctx, runID)

		b := a.batch()
		b.SkipHidden = !batchShowHidden

		start := time.Now()
		records, err := b.Run(ctx, batchDir, out)
		sum := pipeline.Summarize(records)
		sum.RunID = runID
		sum.Duration = time.Since(start).Round(time.Millisecond)
		if err != nil {
			a.logger.Error("batch.failed", "run_id", runID, "processed", len(records), "error", err)
			return err
		}
		sum.Output = out
		return writeOutput(cmd.OutOrStdout(), summaryView(sum))
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "folder containing the PDF files (required)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output XLSX path (default: <dir>/../"+pipeline.DefaultOutputName+")")
	batchCmd.Flags().BoolVar(&batchShowHidden, "include-hidden", false, "also process hidden (dot) files")
}

type batchSummary struct {
	RunID    string `json:"run_id" yaml:"run_id"`
	Files    int    `json:"files" yaml:"files"`
	OK       int    `json:"ok" yaml:"ok"`
	Partial  int    `json:"partial" yaml:"partial"`
	Failed   int    `json:"failed" yaml:"failed"`
	Output   string `json:"output" yaml:"output"`
	Duration string `json:"duration" yaml:"duration"`
}

func summaryView(s pipeline.Summary) batchSummary {
	return batchSummary{
		RunID:    s.RunID,
		Files:    s.Files,
		OK:       s.OK,
		Partial:  s.Partial,
		Failed:   s.Failed,
		Output:   s.Output,
		Duration: s.Duration.String(),
	}
}
