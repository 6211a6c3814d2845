package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/papers-extractor/internal/section"
)

var sectionMaxChars int

var sectionCmd = &cobra.Command{
	Use:   "section <file.pdf> <keyword>",
	Short: "Print the section of a PDF that starts at a header keyword",
	Long: `Extracts the PDF text and prints the span from the first occurrence of
<keyword> up to the next recognized section header. No model is called and no
API key is needed.`,
	Example: `  papers-extractor section paper.pdf introduction --max-chars 3500`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		doc, err := newTextExtractor(cfg, logger).Extract(ctx, args[0])
		if err != nil {
			return fmt.Errorf("extract text: %w", err)
		}
		span := section.Locate(doc.Text, args[1], sectionMaxChars)

		return writeOutput(cmd.OutOrStdout(), sectionView{
			Path:    doc.Path,
			Keyword: args[1],
			Found:   span != "",
			Viable:  len([]rune(span)) >= section.MinViable,
			Chars:   len([]rune(span)),
			Text:    span,
		})
	},
}

func init() {
	sectionCmd.Flags().IntVar(&sectionMaxChars, "max-chars", 4000, "cap on the printed span, in characters (0 = no cap)")
}

type sectionView struct {
	Path    string `json:"path" yaml:"path"`
	Keyword string `json:"keyword" yaml:"keyword"`
	Found   bool   `json:"found" yaml:"found"`
	Viable  bool   `json:"viable" yaml:"viable"`
	Chars   int    `json:"chars" yaml:"chars"`
	Text    string `json:"text" yaml:"text"`
}
