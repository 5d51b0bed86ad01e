package pgex

import (
	"fmt"
	"strings"
)

// MissingDelimiterError reports that an expected character was not found
// where the grammar requires one (e.g. the closing '"' of a string, the ';'
// after a field value, or the ']' closing a list).
type MissingDelimiterError struct {
	Want byte
}

func (e *MissingDelimiterError) Error() string {
	return fmt.Sprintf("expected %q", e.Want)
}

// UnexpectedCharacterError reports a byte that is forbidden at the current
// cursor position (e.g. a raw ';' inside a quoted string, or a trailing comma
// before a list's closing ']').
type UnexpectedCharacterError struct {
	Got byte
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected %q", e.Got)
}

// BadTermError reports that a primitive value failed to parse (overflow, a
// lone '-', an empty digit run, a malformed float, ...).
type BadTermError struct {
	Reason string
}

func (e *BadTermError) Error() string {
	return e.Reason
}

// BadFieldError wraps the cause of a failure encountered while loading or
// skipping one named field.
type BadFieldError struct {
	Tag   string
	Cause error
}

func (e *BadFieldError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("field %q", e.Tag)
	}
	return fmt.Sprintf("field %q: %v", e.Tag, e.Cause)
}

func (e *BadFieldError) Unwrap() error { return e.Cause }

// BadArrayError wraps the cause of a failure encountered while loading the
// i-th element (0-based) of a list.
type BadArrayError struct {
	Index int
	Cause error
}

func (e *BadArrayError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("array element %d", e.Index)
	}
	return fmt.Sprintf("array element %d: %v", e.Index, e.Cause)
}

func (e *BadArrayError) Unwrap() error { return e.Cause }

// CallbackError reports that a user load or save callback raised a fatal
// error (as opposed to simply returning false, which is ordinary control
// flow — see SectionDescriptor).
type CallbackError struct {
	Reason string
	Cause  error
}

func (e *CallbackError) Error() string {
	if e.Cause == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
}

func (e *CallbackError) Unwrap() error { return e.Cause }

// MiscParseError is the catch-all for structural failures that are not tied
// to one field or array element: an unterminated section, a malformed
// section name, and so on.
type MiscParseError struct {
	Reason string
	Cause  error
}

func (e *MiscParseError) Error() string {
	if e.Cause == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
}

func (e *MiscParseError) Unwrap() error { return e.Cause }

// FileFormatsError is the single error value FileSchema.Load returns for a
// malformed document. It carries the failing line
// number and raw line text alongside the full nested cause chain built up by
// the codecs, field descriptors, object schema, and section runtime.
type FileFormatsError struct {
	LineNumber uint64
	LineData   string
	Cause      error
}

func (e *FileFormatsError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Failed to parse PGEX file (line %d)", e.LineNumber)
	for cause := e.Cause; cause != nil; cause = unwrapOne(cause) {
		fmt.Fprintf(&b, "\n  caused by: %v", causeOnly(cause))
	}
	return b.String()
}

func (e *FileFormatsError) Unwrap() error { return e.Cause }

// unwrapOne returns the next link in the chain, or nil if err does not wrap
// anything further.
func unwrapOne(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return nil
}

// causeOnly renders a single link of the chain without recursing into
// whatever it wraps, so FileFormatsError.Error can present one line per
// frame instead of a single run-on sentence.
func causeOnly(err error) string {
	switch e := err.(type) {
	case *BadFieldError:
		return fmt.Sprintf("bad field %q", e.Tag)
	case *BadArrayError:
		return fmt.Sprintf("bad array element %d", e.Index)
	case *CallbackError:
		return e.Reason
	case *MiscParseError:
		return e.Reason
	default:
		return err.Error()
	}
}
