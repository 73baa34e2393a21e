package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldScorer is the structured log field key for the active scoring strategy.
	FieldScorer = "scorer"
	// FieldModelPath is the structured log field key for the model artifact location.
	FieldModelPath = "model_path"
	// FieldCandidate is the structured log field key for a candidate identifier.
	FieldCandidate = "candidate_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when
// logger is nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the scorer and model artifact used for a ranking call.
func CommonFields(scorer, modelPath string) []zap.Field {
	return StringFields(
		StringField{Key: FieldScorer, Value: scorer},
		StringField{Key: FieldModelPath, Value: modelPath},
	)
}

func WithCommonFields(logger *zap.Logger, scorer, modelPath string) *zap.Logger {
	return WithFields(logger, CommonFields(scorer, modelPath)...)
}

// Candidate returns the candidate identifier field.
func Candidate(id string) zap.Field {
	return zap.String(FieldCandidate, id)
}
