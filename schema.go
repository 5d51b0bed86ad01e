package pgex

import "strings"

// ObjectSchema is an ordered list of FieldDescriptor values describing how
// to load and save one record body ("tag:value;tag2:value2;..."). Field
// order in the schema should match the order an encoder is expected to
// write them in: LoadLine exploits that by remembering where the last
// matched field was and scanning forward from there first, so well-formed
// input is matched in a single pass instead of rescanning from the top for
// every field.
type ObjectSchema[T any] struct {
	name   string
	fields []FieldDescriptor[T]
	newFn  func() T
}

// NewObjectSchema builds a schema named name (used only for diagnostics)
// with a constructor for fresh values and its fields in wire order.
func NewObjectSchema[T any](name string, newFn func() T, fields ...FieldDescriptor[T]) *ObjectSchema[T] {
	return &ObjectSchema[T]{name: name, newFn: newFn, fields: fields}
}

func (s *ObjectSchema[T]) Name() string { return s.name }

// New returns a zero-value (or constructor-built) T ready to be populated
// by LoadLine.
func (s *ObjectSchema[T]) New() T {
	if s.newFn != nil {
		return s.newFn()
	}
	var zero T
	return zero
}

// skipTerm consumes one unrecognized field's value without interpreting
// it, so schemas tolerate fields from a newer format version. It respects
// quoted strings and bracketed lists so an embedded ';' or ']' inside them
// does not terminate the skip early.
func skipTerm(c *Cursor) error {
	depth := 0
	for {
		ch := c.Peek()
		switch ch {
		case 0:
			return &MissingDelimiterError{Want: ';'}
		case '"':
			c.Advance(1)
			for {
				inner := c.Peek()
				if inner == 0 {
					return &MissingDelimiterError{Want: '"'}
				}
				if inner == '\\' {
					c.Advance(2)
					continue
				}
				c.Advance(1)
				if inner == '"' {
					break
				}
			}
		case '[':
			depth++
			c.Advance(1)
		case ']':
			if depth == 0 {
				return &UnexpectedCharacterError{Got: ']'}
			}
			depth--
			c.Advance(1)
		case ';':
			if depth == 0 {
				return nil
			}
			c.Advance(1)
		default:
			c.Advance(1)
		}
	}
}

// LoadLine parses a "tag:value;..." record body into obj.
func (s *ObjectSchema[T]) LoadLine(obj *T, line string) error {
	c := NewCursor(line)
	nextField := 0

	for !c.Done() {
		tagStart := c.Pos()
		for c.Peek() != ':' && c.Peek() != ';' && c.Peek() != 0 {
			c.Advance(1)
		}
		if c.Peek() != ':' {
			return &BadFieldError{Tag: line[tagStart:c.Pos()], Cause: &MissingDelimiterError{Want: ':'}}
		}
		tag := line[tagStart:c.Pos()]
		if tag == "" {
			return &UnexpectedCharacterError{Got: ':'}
		}
		c.Advance(1)

		idx := -1
		if n := len(s.fields); n > 0 {
			for step := 0; step < n; step++ {
				i := (nextField + step) % n
				if s.fields[i].Tag() == tag {
					idx = i
					break
				}
			}
		}

		if idx == -1 {
			if err := skipTerm(c); err != nil {
				return &BadFieldError{Tag: tag, Cause: err}
			}
		} else {
			if err := s.fields[idx].Load(obj, c); err != nil {
				return err
			}
			nextField = (idx + 1) % len(s.fields)
		}

		if c.Peek() != ';' {
			return &MissingDelimiterError{Want: ';'}
		}
		c.Advance(1)
	}
	return nil
}

// SaveLine renders obj's record body relative to ref (the schema's default
// value, used to decide which SaveModeNormal/SaveModeNotOnly fields can be
// omitted). It reports false when nothing at all was written — callers
// embedding this as a nested object can use that to omit the field
// entirely rather than emit an empty quoted string.
func (s *ObjectSchema[T]) SaveLine(obj, ref T) (string, bool) {
	var forced []string
	var fallback string
	haveFallback := false

	for _, f := range s.fields {
		r := f.trySave(&obj, &ref)
		switch {
		case r.forceInclude:
			forced = append(forced, r.text)
		case r.fallback && !haveFallback:
			fallback = r.text
			haveFallback = true
		}
	}

	if len(forced) == 0 {
		if haveFallback {
			return fallback, true
		}
		return "", false
	}
	return strings.Join(forced, ""), true
}
