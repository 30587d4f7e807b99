package services

import (
	"math/rand"
	"sync"
	"time"
)

// TokenLength is the fixed length of every request token.
const TokenLength = 14

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TokenGenerator produces fixed-length random alphanumeric tokens.
// It performs no collision checking; with 62^14 possible tokens and a
// single writer, collisions are treated as negligible.
type TokenGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewTokenGenerator() *TokenGenerator {
	return NewTokenGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewTokenGeneratorWithSource lets tests inject a seeded source for
// reproducible output.
func NewTokenGeneratorWithSource(src rand.Source) *TokenGenerator {
	return &TokenGenerator{rnd: rand.New(src)}
}

func (g *TokenGenerator) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, TokenLength)
	for i := range buf {
		buf[i] = tokenAlphabet[g.rnd.Intn(len(tokenAlphabet))]
	}
	return string(buf)
}
