package codec

import (
	"fmt"
	"strings"
)

// SerializationError is returned when a value cannot be represented as JSON
// It is a programmer error and should never be retried
type SerializationError struct {
	Err error
}

func (s *SerializationError) Error() string {
	return fmt.Sprintf("could not serialize: %v", s.Err)
}

// Unwrap returns the underlying error
func (s *SerializationError) Unwrap() error {
	return s.Err
}

// DeserializationError is returned when persisted JSON is malformed
// Path is the trail of fields and indexes leading to the offending value, e.g., pots[1].winners[0]
type DeserializationError struct {
	Path []string
	Err  error
}

func (d *DeserializationError) Error() string {
	if len(d.Path) == 0 {
		return d.Err.Error()
	}

	return d.Field() + ": " + d.Err.Error()
}

// Unwrap returns the underlying error
func (d *DeserializationError) Unwrap() error {
	return d.Err
}

// Field returns the rendered path, e.g., pots[1].winners[0]
func (d *DeserializationError) Field() string {
	var sb strings.Builder
	for i, segment := range d.Path {
		if i > 0 && !strings.HasPrefix(segment, "[") {
			sb.WriteByte('.')
		}

		sb.WriteString(segment)
	}

	return sb.String()
}

// ReferenceResolutionError happens when a reference stub names an entity that was never built
// This always indicates corrupted or hand-edited data
type ReferenceResolutionError struct {
	ID string
}

func (r *ReferenceResolutionError) Error() string {
	return fmt.Sprintf("unresolved player reference %q", r.ID)
}

// Errorf returns a new DeserializationError without a path
func Errorf(format string, a ...interface{}) error {
	return &DeserializationError{Err: fmt.Errorf(format, a...)}
}

// Annotate prepends segment to the error's path
// If err is not a DeserializationError, it becomes the cause of a new one
func Annotate(segment string, err error) error {
	if err == nil {
		return nil
	}

	if de, ok := err.(*DeserializationError); ok {
		path := make([]string, 0, len(de.Path)+1)
		path = append(path, segment)
		path = append(path, de.Path...)
		return &DeserializationError{Path: path, Err: de.Err}
	}

	return &DeserializationError{Path: []string{segment}, Err: err}
}

// Index returns the path segment for an array element
func Index(i int) string {
	return fmt.Sprintf("[%d]", i)
}
