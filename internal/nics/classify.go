// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nics turns the linearized text of the NICS "Firearm Checks:
// Month/Year by State" report into yearly, monthly, and per-state totals.
//
// The report has no machine-readable structure once flattened to text, so
// every stage here is a line heuristic: classify the line, infer the page's
// period, pull the integer tokens, and accumulate.
package nics

import (
	"regexp"
	"strings"
)

// defaultIgnorePrefixes are the report's header, footer, and caption lines.
var defaultIgnorePrefixes = []string{
	"NICS Firearm Background Checks",
	"NICS Firearm Checks",
	"Month/Year by State",
	"State / Territory",
	"NOTE",
	"Page",
	"January 1",
	"These statistics",
	"They do not represent",
	"Totals",
	"Grand Total",
}

var ignoreExact = map[string]bool{
	"":       true,
	"Totals": true,
}

const (
	sentenceMinWords  = 9
	sentenceMaxDigits = 2
)

var (
	leadingLetterRe = regexp.MustCompile(`^[A-Za-z]`)
	digitRe         = regexp.MustCompile(`\d`)
	wordRe          = regexp.MustCompile(`[A-Za-z]+`)
)

// Classifier decides whether a line of report text is a state or territory
// data row.
type Classifier struct {
	prefixes []string
}

// NewClassifier returns a Classifier that rejects the built-in header and
// footer prefixes plus any extra prefixes given.
func NewClassifier(extraPrefixes ...string) *Classifier {
	prefixes := make([]string, 0, len(defaultIgnorePrefixes)+len(extraPrefixes))
	prefixes = append(prefixes, defaultIgnorePrefixes...)
	for _, p := range extraPrefixes {
		if p = strings.TrimSpace(p); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return &Classifier{prefixes: prefixes}
}

// IsStateRow reports whether line looks like one state's monthly figures.
// A state row starts with a letter, carries digits, and is neither a known
// header or footer nor a sentence from the footnotes.
func (c *Classifier) IsStateRow(line string) bool {
	s := strings.TrimSpace(line)
	if ignoreExact[s] {
		return false
	}
	for _, p := range c.prefixes {
		if strings.HasPrefix(s, p) {
			return false
		}
	}
	if !leadingLetterRe.MatchString(s) {
		return false
	}
	if !digitRe.MatchString(s) {
		return false
	}
	if strings.Contains(s, "Grand Total") && strings.Contains(s, "State / Territory") {
		return false
	}
	return !looksLikeSentence(s)
}

// looksLikeSentence flags footnote prose: many words with almost no digits.
func looksLikeSentence(s string) bool {
	words := wordRe.FindAllString(s, -1)
	digits := digitRe.FindAllString(s, -1)
	return len(words) >= sentenceMinWords && len(digits) <= sentenceMaxDigits
}
