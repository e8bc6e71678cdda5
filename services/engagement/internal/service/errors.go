package service

import (
	"errors"
	"fmt"

	"github.com/example/studyshare/services/engagement/internal/store"
)

// Validation errors are resolved before any storage access and are
// always distinct from storage failures, so callers can tell bad input
// from a broken backend.
var (
	ErrOutOfRange     = errors.New("score out of range")
	ErrEmptyContent   = errors.New("content must not be empty")
	ErrContentTooLong = errors.New("content too long")
)

func validateScore(axis string, v int) error {
	if v < store.MinScore || v > store.MaxScore {
		return fmt.Errorf("%s must be between %d and %d: %w", axis, store.MinScore, store.MaxScore, ErrOutOfRange)
	}
	return nil
}
