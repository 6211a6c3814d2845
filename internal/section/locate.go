// Package section finds named sections inside raw extracted paper text.
package section

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinViable is the shortest span callers treat as a usable section.
const MinViable = 100

// headerSkip is how far past the matched keyword the boundary search starts,
// so the header itself is never taken as its own end.
const headerSkip = 10

// Headers are the recognized section-header keywords, in lower case.
var Headers = []string{
	"abstract",
	"introduction",
	"background",
	"data",
	"materials and methods",
	"methodology",
	"methods",
	"results",
	"conclusion",
	"references",
}

// boundaries holds one line-anchored pattern per header: a newline, optional
// whitespace, an optional numeral such as "2" or "3.1.", then the header word.
var boundaries = compileBoundaries(Headers)

func compileBoundaries(headers []string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(headers))
	for _, h := range headers {
		words := strings.Fields(regexp.QuoteMeta(h))
		out[h] = regexp.MustCompile(`\n\s*[\d.]*\s*` + strings.Join(words, `\s+`) + `\b`)
	}
	return out
}

// Locate returns the span of rawText that starts at the first case-insensitive
// occurrence of keyword and ends right before the next recognized header line
// (or at the end of the text), capped at maxChars characters. maxChars <= 0
// disables the cap. An absent keyword yields "".
func Locate(rawText, keyword string, maxChars int) string {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" || rawText == "" {
		return ""
	}
	lower := foldCase(rawText)
	idx := strings.Index(lower, kw)
	if idx < 0 {
		return ""
	}

	end := len(rawText)
	if from := idx + headerSkip; from < len(lower) {
		rest := lower[from:]
		for _, h := range Headers {
			if h == kw {
				continue
			}
			loc := boundaries[h].FindStringIndex(rest)
			if loc != nil && from+loc[0] < end {
				end = from + loc[0]
			}
		}
	}
	return Truncate(rawText[idx:end], maxChars)
}

// Truncate caps s at max characters (runes). max <= 0 returns s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

// foldCase lower-cases s without changing any byte offset: runes whose lower
// case has a different UTF-8 width, and invalid bytes, are copied as is.
func foldCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		if lr := unicode.ToLower(r); lr != r && utf8.RuneLen(lr) == size {
			b.WriteRune(lr)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}
