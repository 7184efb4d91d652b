package models

import "fmt"

// ParseMode selects how ingestion treats cells it cannot turn into edges.
type ParseMode string

// Supported parse modes.
const (
	// ModeLenient drops malformed cells and rows without reporting them as errors.
	ModeLenient ParseMode = "lenient"
	// ModeStrict fails ingestion on the first malformed cell or row.
	ModeStrict ParseMode = "strict"
)

// ParseModeFrom validates a textual mode. An empty string selects ModeLenient.
func ParseModeFrom(s string) (ParseMode, error) {
	switch ParseMode(s) {
	case "", ModeLenient:
		return ModeLenient, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
