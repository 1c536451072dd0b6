package domain

import (
	"errors"
	"fmt"
)

// ErrorKind buckets the terminal failure modes of request processing. Every
// failure aborts the whole request; nothing is retried or degraded.
type ErrorKind string

const (
	KindStructural   ErrorKind = "structural"    // malformed document, unparsable date
	KindMissingField ErrorKind = "missing_field" // required element/attribute absent
	KindInvalidValue ErrorKind = "invalid_value" // present but outside its allowed set/range
	KindOccupancy    ErrorKind = "occupancy"     // one of the fixed room rules
	KindDateWindow   ErrorKind = "date_window"   // lead time or stay length too short
)

// ValidationError is the single error type the pipeline produces. Message
// strings are part of the contract with callers and must not be reworded.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Errf(kind ErrorKind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind carried by err, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}
