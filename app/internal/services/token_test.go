package services

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTokenGenerator_Length(t *testing.T) {
	gen := NewTokenGenerator()
	for i := 0; i < 100; i++ {
		require.Len(t, gen.Token(), TokenLength)
	}
}

func TestTokenGenerator_Deterministic(t *testing.T) {
	a := NewTokenGeneratorWithSource(rand.NewSource(42))
	b := NewTokenGeneratorWithSource(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		require.Equal(t, a.Token(), b.Token())
	}
}

func TestTokenGenerator_SequenceVaries(t *testing.T) {
	gen := NewTokenGeneratorWithSource(rand.NewSource(1))
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		seen[gen.Token()] = struct{}{}
	}
	require.Len(t, seen, 1000)
}

func TestTokenGenerator_Alphabet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		gen := NewTokenGeneratorWithSource(rand.NewSource(seed))
		token := gen.Token()

		if len(token) != TokenLength {
			t.Fatalf("token %q has length %d", token, len(token))
		}
		for _, r := range token {
			if !strings.ContainsRune(tokenAlphabet, r) {
				t.Fatalf("token %q contains %q outside the alphabet", token, r)
			}
		}
	})
}
