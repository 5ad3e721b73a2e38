package sensor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAudio = errors.New("invalid audio")
	ErrFieldCount   = errors.New("wrong field count")
	ErrFieldValue   = errors.New("bad field value")
	ErrNoTranscoder = errors.New("no transcoder for non-wav audio")
)

// ParseError locates a malformed accelerometer row.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("accel line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("accel line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
