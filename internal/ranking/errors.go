package ranking

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTrainingSet = errors.New("training set is empty")
	ErrBatchTooLarge    = errors.New("too many resumes in one batch")
)

// TrainingDataError points at the record that made a training set unusable.
type TrainingDataError struct {
	Index   int
	Message string
	Cause   error
}

func (e *TrainingDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("training record %d: %s: %v", e.Index, e.Message, e.Cause)
	}
	return fmt.Sprintf("training record %d: %s", e.Index, e.Message)
}

func (e *TrainingDataError) Unwrap() error {
	return e.Cause
}
