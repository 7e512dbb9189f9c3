package devapi

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// DefaultMaxInputLength is the longest input accepted, in characters.
const DefaultMaxInputLength = 1000

// Rejection reasons. Their text is sent to clients as the detail message.
var (
	ErrInputRequired     = errors.New("Input string is required")
	ErrInputTooLong      = errors.New("Input string is too long")
	ErrInvalidCharacters = errors.New("Input string contains invalid characters")
)

// ValidateInput trims input and enforces the API policy: not empty, at most
// limit characters, ASCII only. Length is checked before the character set.
func ValidateInput(input string, limit int) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrInputRequired
	}
	if utf8.RuneCountInString(input) > limit {
		return "", ErrInputTooLong
	}
	for i := 0; i < len(input); i++ {
		if input[i] >= utf8.RuneSelf {
			return "", ErrInvalidCharacters
		}
	}
	return input, nil
}
