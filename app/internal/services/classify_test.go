package services

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"gift-link/app/internal/models"
)

func TestClassify_Stars(t *testing.T) {
	cls, err := Classify("42")
	require.NoError(t, err)
	require.Equal(t, models.RequestTypeStars, cls.Type)
	require.Equal(t, "42", cls.Value)
	require.Equal(t, 42, cls.Stars)
}

func TestClassify_StarsLeadingZeros(t *testing.T) {
	cls, err := Classify("007")
	require.NoError(t, err)
	require.Equal(t, models.RequestTypeStars, cls.Type)
	require.Equal(t, 7, cls.Stars)
	require.Equal(t, "007", cls.Value)
}

func TestClassify_ZeroRejected(t *testing.T) {
	_, err := Classify("0")
	require.ErrorIs(t, err, ErrStarsNotPositive)
}

func TestClassify_OverflowRejected(t *testing.T) {
	_, err := Classify(strings.Repeat("9", 40))
	require.ErrorIs(t, err, ErrStarsInvalid)
}

func TestClassify_URLs(t *testing.T) {
	for _, input := range []string{
		"https://example.com",
		"http://example.com/path/to/nft",
		"HTTPS://Example.COM/Gift?id=1&x=2",
		"https://t.me/nft/EasterEgg-12345",
	} {
		cls, err := Classify(input)
		require.NoError(t, err, "input %q", input)
		require.Equal(t, models.RequestTypeNFT, cls.Type, "input %q", input)
		require.Equal(t, input, cls.Value)
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	for _, input := range []string{
		"hello world",
		"42 stars",
		"ftp://example.com",
		"example.com",
		"https://",
		"",
		"-5",
	} {
		_, err := Classify(input)
		require.ErrorIs(t, err, ErrUnrecognized, "input %q", input)
	}
}

// The two classification rules can never both match one input.
func TestClassify_RulesDisjoint(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		stars := starsPattern.MatchString(input)
		url := urlPattern.MatchString(input)
		if stars && url {
			t.Fatalf("input %q matched both rules", input)
		}
	})
}

func TestClassify_AnyPositiveCountIsStars(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 1_000_000).Draw(t, "n")

		cls, err := Classify(strconv.Itoa(n))
		if err != nil {
			t.Fatalf("positive count %d rejected: %v", n, err)
		}
		if cls.Type != models.RequestTypeStars || cls.Stars != n {
			t.Fatalf("count %d classified as %+v", n, cls)
		}
	})
}
