package nbt

import (
	"errors"
	"fmt"
)

var ErrMalformed = errors.New("nbt: malformed input")
var ErrNotFound = errors.New("nbt: tag not found")

// MalformedError describes where a decode stopped. It matches ErrMalformed
// with errors.Is, and Err when a decompressor reported the problem.
type MalformedError struct {
	Offset int
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("nbt: malformed input at offset %d: %s", e.Offset, e.Reason)
}

func (e *MalformedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformed}
	}
	return []error{ErrMalformed, e.Err}
}

// Find returns the first tag in tags whose name is name.
func Find(tags []Tag, name string) (Tag, error) {
	for _, tag := range tags {
		if tag.Name == name {
			return tag, nil
		}
	}
	return Tag{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}
