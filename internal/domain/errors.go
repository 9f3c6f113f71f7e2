package domain

import (
	"errors"
	"fmt"
)

// Upload and entry errors. Each one is turned into a user-visible message by UserMessage.
var (
	ErrNoFileSelected    = errors.New("no file selected")
	ErrWrongFileType     = errors.New("wrong file type")
	ErrEmptyInput        = errors.New("empty input")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrManualEntryFormat = errors.New("invalid manual entry format")
)

// FileReadError is returned when the content of an upload cannot be read
type FileReadError struct {
	Err error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read file: %v", e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// UserMessage converts an error into the text shown to the learner
func UserMessage(err error) string {
	var readErr *FileReadError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFileSelected):
		return "No file selected"
	case errors.Is(err, ErrWrongFileType):
		return "Please upload a text file (.txt)"
	case errors.Is(err, ErrEmptyInput):
		return "The file is empty or contains no valid word pairs"
	case errors.Is(err, ErrInvalidFormat):
		return "Invalid format. Each line must be in the format: '[correct,wrong] word = translation'"
	case errors.Is(err, ErrManualEntryFormat):
		return "Invalid format. Please use: 'word = translation'"
	case errors.As(err, &readErr):
		return "Error reading file: " + readErr.Err.Error()
	default:
		return "Something went wrong. Please try again."
	}
}
