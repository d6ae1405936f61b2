// Package station validates ICAO station identifiers.
package station

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Code is a validated four letter ICAO station identifier.
type Code string

func (c Code) String() string {
	return string(c)
}

var (
	ErrWrongLength   = errors.New("wrong length")
	ErrNonAlphabetic = errors.New("non-alphabetic character")
)

// ValidationError reports why a candidate station code was rejected.
type ValidationError struct {
	Input  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid station code %q: %v", e.Input, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// Parse normalizes candidate to upper case and checks that it is exactly
// four letters A-Z.
func Parse(candidate string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(candidate))

	if utf8.RuneCountInString(code) != 4 {
		return "", &ValidationError{Input: candidate, Reason: ErrWrongLength}
	}

	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", &ValidationError{Input: candidate, Reason: ErrNonAlphabetic}
		}
	}

	return Code(code), nil
}
