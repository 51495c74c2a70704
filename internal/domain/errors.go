package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDocumentType = errors.New("no schema registered for document type")
	ErrUnknownModel        = errors.New("no pricing registered for model")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile           = errors.New("file is empty")
)

// InferenceError reports a model gateway failure. It names the pipeline
// stage that was running when the gateway failed; transport, auth, and
// malformed-output causes all collapse into this one kind.
type InferenceError struct {
	Stage Stage
	Err   error
}

// NewInferenceError wraps a gateway failure with its originating stage.
func NewInferenceError(stage Stage, err error) *InferenceError {
	return &InferenceError{Stage: stage, Err: err}
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed during %s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
