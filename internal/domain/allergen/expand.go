package allergen

import (
	"strings"
	"unicode"
)

// minTokenLen filters out one-character noise from tokenization
const minTokenLen = 2

// normalizeInput lowercases, trims and collapses internal whitespace
func normalizeInput(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Tokenize splits free text into lowercase word tokens of length >= 2.
// Punctuation and symbols are treated as separators; letters and digits
// of any script are kept.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Expansion is the result of resolving one allergy label
type Expansion struct {
	Canonical string
	Tokens    []string
}

// Expand resolves a free-text allergy label to its canonical entry and
// blocked tokens. Labels with no alias-table match fall back to plain
// tokenization, so unmappable input yields a minimal token set rather
// than failing. Two surface forms of the same canonical entry always
// produce the identical token set.
func Expand(label string) Expansion {
	n := normalizeInput(label)
	if n == "" {
		return Expansion{}
	}
	for _, a := range Aliases {
		if strings.ToLower(a.Canonical) == n {
			return Expansion{Canonical: a.Canonical, Tokens: append([]string(nil), a.Tokens...)}
		}
		for _, al := range a.Aliases {
			if al == n {
				return Expansion{Canonical: a.Canonical, Tokens: append([]string(nil), a.Tokens...)}
			}
		}
	}
	return Expansion{Tokens: Tokenize(label)}
}

// NormalizeLabel maps a free-text allergy label to its canonical form
// when the alias table knows it, otherwise returns the trimmed input.
func NormalizeLabel(label string) string {
	n := normalizeInput(label)
	if n == "" {
		return strings.TrimSpace(label)
	}
	for _, a := range Aliases {
		if strings.ToLower(a.Canonical) == n {
			return a.Canonical
		}
		for _, al := range a.Aliases {
			if al == n {
				return a.Canonical
			}
		}
	}
	return strings.TrimSpace(label)
}

// BlockedTokens builds the deduplicated union of blocked tokens for a
// list of allergy or dislike labels. Order follows first appearance.
func BlockedTokens(labels []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		for _, t := range Expand(label).Tokens {
			if len([]rune(t)) < minTokenLen {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// ContainsAny reports whether the text contains any of the tokens as a
// substring. Matching is case-insensitive; callers pass pre-lowered
// tokens from Expand/BlockedTokens.
func ContainsAny(text string, tokens []string) bool {
	if text == "" || len(tokens) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	for _, t := range tokens {
		if t != "" && strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
