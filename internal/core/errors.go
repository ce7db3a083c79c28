package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput marks blank user input. The session re-prompts without
	// changing state.
	ErrEmptyInput = errors.New("empty input")

	// ErrInterrupt is returned by console readers when the user presses Ctrl+C.
	ErrInterrupt = errors.New("interrupted")

	ErrDuplicateManual = errors.New("manual already exists")
	ErrNoText          = errors.New("no text extracted")
)

// NotFoundError reports a missing manual. A session cannot start without one.
type NotFoundError struct {
	EquipmentID int64
	Name        string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("no manual found for equipment %q", e.Name)
	}
	return fmt.Sprintf("no manual found for equipment ID %d", e.EquipmentID)
}

// GenerationError wraps any completion gateway failure.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
