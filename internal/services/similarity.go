package services

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonWordChars = regexp.MustCompile(`[^\w\s]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// normalizeTitle lowercases, drops punctuation and collapses whitespace.
func normalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = nonWordChars.ReplaceAllString(t, "")
	t = spaceRuns.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// diceCoefficient scores two strings by their shared adjacent-character
// pairs, ignoring whitespace. Each bigram of a is matched at most as many
// times as it occurs.
func diceCoefficient(a, b string) float64 {
	first := []rune(stripSpaces(a))
	second := []rune(stripSpaces(b))
	if string(first) == string(second) {
		return 1
	}
	if len(first) < 2 || len(second) < 2 {
		return 0
	}

	bigrams := make(map[[2]rune]int, len(first)-1)
	for i := 0; i < len(first)-1; i++ {
		bigrams[[2]rune{first[i], first[i+1]}]++
	}

	shared := 0
	for i := 0; i < len(second)-1; i++ {
		bg := [2]rune{second[i], second[i+1]}
		if bigrams[bg] > 0 {
			bigrams[bg]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(first)+len(second)-2)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
