package services

import (
	"errors"
	"regexp"
	"strconv"

	"gift-link/app/internal/models"
)

var (
	// ErrStarsNotPositive means the text was a well-formed number but
	// not greater than zero.
	ErrStarsNotPositive = errors.New("star count must be greater than zero")

	// ErrStarsInvalid means the text looked numeric but could not be
	// parsed as an integer.
	ErrStarsInvalid = errors.New("star count is not a valid number")

	// ErrUnrecognized means the text is neither a star count nor a URL.
	ErrUnrecognized = errors.New("input is neither a star count nor a link")
)

var (
	starsPattern = regexp.MustCompile(`^\d+$`)
	urlPattern   = regexp.MustCompile(`(?i)^https?://[\w.-]+(/[\w\-./?%&=+:#~@!$'()*,;]*)?$`)
)

// Classification is the result of interpreting the owner's free-text
// input. Exactly one of the two request types can match a given input.
type Classification struct {
	Type  models.RequestType
	Value string
	Stars int
}

// Classify interprets trimmed free text as either a star count or an
// NFT URL. The stored Value is the raw input text.
func Classify(text string) (Classification, error) {
	switch {
	case starsPattern.MatchString(text):
		n, err := strconv.Atoi(text)
		if err != nil {
			return Classification{}, ErrStarsInvalid
		}
		if n <= 0 {
			return Classification{}, ErrStarsNotPositive
		}
		return Classification{Type: models.RequestTypeStars, Value: text, Stars: n}, nil

	case urlPattern.MatchString(text):
		return Classification{Type: models.RequestTypeNFT, Value: text}, nil

	default:
		return Classification{}, ErrUnrecognized
	}
}
