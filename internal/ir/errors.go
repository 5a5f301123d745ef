package ir

import (
	"errors"
	"fmt"
	"math"
)

// Error represents a renumbering failure for a single record.
//
// Errors are values: the engine returns them immediately and never
// substitutes a default. Callers decide whether to report and continue.
//
// Error includes structured fields for diagnostics.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Offset is the byte offset in the notation, or -1 when not applicable.
	Offset int

	// Tag is the offending tag value (duplicate or unknown), or 0.
	Tag int

	// Position is the index tuple position for OUT_OF_RANGE errors, or -1.
	Position int
}

// ErrorCode categorizes renumbering errors.
type ErrorCode string

const (
	// ErrCodeMalformedInput indicates unbalanced brackets or a colon inside
	// brackets that is not followed by digits.
	ErrCodeMalformedInput ErrorCode = "MALFORMED_INPUT"

	// ErrCodeEmptyInput indicates the notation carries no tags.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"

	// ErrCodeDuplicateTag indicates the same tag appears more than once.
	ErrCodeDuplicateTag ErrorCode = "DUPLICATE_TAG"

	// ErrCodeOutOfRange indicates an index references a tag the notation lacks.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Position >= 0:
		return fmt.Sprintf("%s: %s (index %d)", e.Code, e.Message, e.Position)
	case e.Offset >= 0:
		return fmt.Sprintf("%s: %s (offset %d)", e.Code, e.Message, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMalformedError creates an Error for structurally invalid notation.
func NewMalformedError(offset int, format string, args ...any) *Error {
	return &Error{
		Code:     ErrCodeMalformedInput,
		Message:  fmt.Sprintf(format, args...),
		Offset:   offset,
		Position: -1,
	}
}

// NewEmptyError creates an Error for a notation without tags.
func NewEmptyError() *Error {
	return &Error{
		Code:     ErrCodeEmptyInput,
		Message:  "notation contains no atom map tags",
		Offset:   -1,
		Position: -1,
	}
}

// NewDuplicateTagError creates an Error for a tag seen twice.
func NewDuplicateTagError(tag int) *Error {
	return &Error{
		Code:     ErrCodeDuplicateTag,
		Message:  fmt.Sprintf("tag %d appears more than once", tag),
		Offset:   -1,
		Tag:      tag,
		Position: -1,
	}
}

// NewOutOfRangeError creates an Error for an index whose tag (value + 1) is
// not present in the notation. For value == math.MaxInt the tag does not
// fit in an int and Tag is left 0.
func NewOutOfRangeError(position, value int) *Error {
	if value == math.MaxInt {
		return &Error{
			Code:     ErrCodeOutOfRange,
			Message:  fmt.Sprintf("index %d references a tag larger than any valid tag", value),
			Offset:   -1,
			Position: position,
		}
	}
	return &Error{
		Code:     ErrCodeOutOfRange,
		Message:  fmt.Sprintf("index %d references tag %d, which is not in the notation", value, value+1),
		Offset:   -1,
		Tag:      value + 1,
		Position: position,
	}
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsMalformed returns true if err is a MALFORMED_INPUT error.
func IsMalformed(err error) bool {
	return CodeOf(err) == ErrCodeMalformedInput
}

// IsEmpty returns true if err is an EMPTY_INPUT error.
func IsEmpty(err error) bool {
	return CodeOf(err) == ErrCodeEmptyInput
}

// IsDuplicateTag returns true if err is a DUPLICATE_TAG error.
func IsDuplicateTag(err error) bool {
	return CodeOf(err) == ErrCodeDuplicateTag
}

// IsOutOfRange returns true if err is an OUT_OF_RANGE error.
func IsOutOfRange(err error) bool {
	return CodeOf(err) == ErrCodeOutOfRange
}
