package section

import (
	"fmt"
	"regexp"
	"strings"
)

// Strategy picks a span of text for a prompt.
type Strategy interface {
	Name() string
	Find(text string) string
}

// Header locates the section that starts at Keyword.
type Header struct {
	Keyword  string
	MaxChars int
}

func (h Header) Name() string { return "header:" + strings.ToLower(h.Keyword) }

func (h Header) Find(text string) string { return Locate(text, h.Keyword, h.MaxChars) }

// IntroHeadings marks where the opening part of a paper usually ends: the first
// numbered section or a common section title on its own line.
var IntroHeadings = regexp.MustCompile(`\n\s*(?:(?:1|2|I|II|Ⅰ|Ⅱ)\.\s|(?i:literature review|model|methodology|data|empirical|background)\b)`)

// LeadingFraction takes the first Fraction of the text and, when Split is set,
// keeps only what precedes the first Split match. With Split set and no match
// it yields nothing, leaving the decision to the next strategy.
type LeadingFraction struct {
	Fraction float64
	Split    *regexp.Regexp
	MaxChars int
}

func (l LeadingFraction) Name() string { return fmt.Sprintf("leading:%.2f", l.Fraction) }

func (l LeadingFraction) Find(text string) string {
	if l.Fraction <= 0 || text == "" {
		return ""
	}
	n := len(text)
	if l.Fraction < 1 {
		n = int(float64(len(text)) * l.Fraction)
	}
	head := strings.ToValidUTF8(text[:n], "")
	if l.Split != nil {
		loc := l.Split.FindStringIndex(head)
		if loc == nil {
			return ""
		}
		head = head[:loc[0]]
	}
	return Truncate(strings.TrimSpace(head), l.MaxChars)
}

// Prefix is the first MaxChars characters of the text.
type Prefix struct {
	MaxChars int
}

func (p Prefix) Name() string { return fmt.Sprintf("prefix:%d", p.MaxChars) }

func (p Prefix) Find(text string) string { return Truncate(text, p.MaxChars) }

// Chain tries each strategy in order. The first span that is non-empty and at
// least MinLength characters long wins.
type Chain struct {
	Strategies []Strategy
	MinLength  int
}

// Find returns the winning span and the name of the strategy that produced it,
// or two empty strings when no strategy yields a usable span.
func (c Chain) Find(text string) (string, string) {
	for _, s := range c.Strategies {
		span := s.Find(text)
		if strings.TrimSpace(span) == "" {
			continue
		}
		if c.MinLength > 0 && len([]rune(span)) < c.MinLength {
			continue
		}
		return span, s.Name()
	}
	return "", ""
}
