// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"regexp"
	"strings"
)

// wordRe matches lowercase alphanumeric words. No stemming, no
// stopword removal: the corpus is small and domain terms ("cd",
// "raid") would be casualties of a general stopword list.
var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize splits text into lowercase alphanumeric word tokens.
func Tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// Terms expands a token list into the unigram+bigram term list used by
// the TF-IDF vocabulary.
func Terms(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// JoinParts concatenates non-empty text fields with the fixed document
// separator.
func JoinParts(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}

// NormText collapses whitespace (including non-breaking spaces) so
// scraped fragments concatenate cleanly.
func NormText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
