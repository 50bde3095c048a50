package tokenizer

import (
	"errors"
	"os"
	"strings"
)

var errNilCounter = errors.New("nil tokenizer counter")

// CountString counts tokens in text, replacing invalid UTF-8 first.
func CountString(counter Counter, text string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	return counter.CountString(strings.ToValidUTF8(text, "\uFFFD"))
}

// CountFile reads the file at path and counts its tokens.
func CountFile(counter Counter, path string) (int, error) {
	if counter == nil {
		return 0, errNilCounter
	}
	// #nosec G304
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return 0, readErr
	}
	return CountString(counter, string(data))
}
