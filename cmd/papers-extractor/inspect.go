package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/papers-extractor/internal/common"
	"github.com/joseph-ayodele/papers-extractor/internal/pipeline"
)

var inspectText bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>",
	Short: "Run all extractors on one PDF and print what each produced",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		rec, doc, res := a.processor.Inspect(ctx, args[0])
		view := inspectView{
			Record: rec,
			Document: documentView{
				Path:     doc.Path,
				Method:   doc.Method,
				Pages:    doc.Pages,
				Chars:    len([]rune(doc.Text)),
				Duration: doc.Duration.String(),
				Warnings: doc.Warnings,
				Error:    doc.Err,
			},
			Steps: res,
		}
		if inspectText {
			view.Document.Text = doc.Text
		}
		if err := writeOutput(cmd.OutOrStdout(), view); err != nil {
			return fmt.Errorf("write output: %w: %w", common.ErrExport, err)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectText, "text", false, "include the full extracted text")
}

type documentView struct {
	Path     string   `json:"path" yaml:"path"`
	Method   string   `json:"method,omitempty" yaml:"method,omitempty"`
	Pages    int      `json:"pages" yaml:"pages"`
	Chars    int      `json:"chars" yaml:"chars"`
	Duration string   `json:"duration" yaml:"duration"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
}

type inspectView struct {
	Record   pipeline.Record       `json:"record" yaml:"record"`
	Document documentView          `json:"document" yaml:"document"`
	Steps    pipeline.FieldsResult `json:"steps" yaml:"steps"`
}
