// Package safety screens generated greeting text before it is handed back to
// a client.
package safety

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxGreetingLength is the longest greeting accepted, in characters.
const MaxGreetingLength = 1000

var (
	// ErrEmpty is returned for empty or whitespace-only text.
	ErrEmpty = errors.New("greeting is empty")
	// ErrTooLong is returned for text longer than MaxGreetingLength.
	ErrTooLong = fmt.Errorf("greeting exceeds %d characters", MaxGreetingLength)
)

type blockedPattern struct {
	name string
	re   *regexp.Regexp
}

var blocked = []blockedPattern{
	{"credential", regexp.MustCompile(`(?i)\b(?:password|secret|token|api[_-]?key)\b`)},
	{"script", regexp.MustCompile(`(?is)<script[^>]*>.*</script>`)},
	{"event handler", regexp.MustCompile(`(?i)on\w+\s*=`)},
	{"markup", regexp.MustCompile("[<>{}\\[\\]`]")},
}

// UnsafeContentError names the pattern a greeting tripped.
type UnsafeContentError struct {
	Pattern string
}

func (e *UnsafeContentError) Error() string {
	return fmt.Sprintf("greeting contains blocked content: %s", e.Pattern)
}

// ValidateGreeting returns nil when s is fit to send.
func ValidateGreeting(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmpty
	}
	if utf8.RuneCountInString(s) > MaxGreetingLength {
		return ErrTooLong
	}
	for _, p := range blocked {
		if p.re.MatchString(s) {
			return &UnsafeContentError{Pattern: p.name}
		}
	}
	return nil
}

// IsSafeGreeting is the boolean form of ValidateGreeting.
func IsSafeGreeting(s string) bool {
	return ValidateGreeting(s) == nil
}
