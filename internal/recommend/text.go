// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// normalizeText applies NFKC, lowercases and collapses whitespace.
func normalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// normalizeTag folds a category label into snake_case so that
// "Reading Comprehension", "reading-comprehension" and
// "reading_comprehension" compare equal.
func normalizeTag(s string) string {
	s = normalizeText(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '-' || r == '/' || r == '.':
			return '_'
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			return r
		default:
			return -1
		}
	}, s)
}

// tagSegments splits a normalized tag into its non-empty "_" segments.
func tagSegments(tag string) []string {
	return strings.FieldsFunc(tag, func(r rune) bool { return r == '_' })
}

// tokenSet returns the distinct content tokens of the given texts.
func tokenSet(minLen int, texts ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, text := range texts {
		for _, tok := range tokenize(text, minLen) {
			set[tok] = struct{}{}
		}
	}
	return set
}

// tokenize splits text into lowercase word tokens with stop words removed
// and plurals folded.
func tokenize(text string, minLen int) []string {
	words := strings.FieldsFunc(normalizeText(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(words))
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		w = singular(w)
		if len([]rune(w)) < minLen {
			continue
		}
		out = append(out, w)
	}
	return out
}

// singular strips common English plural suffixes.
func singular(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		return w[:len(w)-1]
	default:
		return w
	}
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"to": true, "in": true, "on": true, "for": true, "with": true, "at": true,
	"by": true, "from": true, "is": true, "are": true, "was": true, "be": true,
	"it": true, "its": true, "as": true, "this": true, "that": true, "has": true,
	"have": true, "not": true, "but": true, "into": true, "their": true,
	"they": true, "he": true, "she": true, "his": true, "her": true,
	"when": true, "while": true, "how": true, "what": true, "which": true,
	"can": true, "cannot": true, "does": true, "do": true,
	"often": true, "very": true, "some": true, "struggles": true, "struggle": true,
	"difficulty": true, "difficulties": true, "trouble": true, "student": true,
	"students": true, "learner": true, "learners": true,
}
