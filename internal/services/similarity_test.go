package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "pair programming improves code quality", normalizeTitle("  Pair programming   improves code quality!! "))
	assert.Equal(t, "testdriven development", normalizeTitle("Test-Driven\tDevelopment"))
	assert.Equal(t, "", normalizeTitle("?!"))
}

func TestDiceCoefficient(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "pair programming", "pair programming", 1},
		{"whitespace ignored", "a b c", "abc", 1},
		{"shared bigrams", "healed", "sealed", 0.8},
		{"one shared bigram", "night", "nacht", 0.25},
		{"too short", "a", "ab", 0},
		{"disjoint", "abcd", "wxyz", 0},
		{"repeated bigrams counted once each", "aaaa", "aa", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, diceCoefficient(tt.a, tt.b), 1e-9)
		})
	}
}

func TestDiceCoefficientIsSymmetric(t *testing.T) {
	a := "pair programming improves code quality"
	b := "pair programming improves software quality"
	assert.InDelta(t, diceCoefficient(a, b), diceCoefficient(b, a), 1e-9)
}
