package pgex

// SectionMode selects how a section's body lines map to objects.
type SectionMode int

const (
	// SectionRepeated yields one object per body line (a list section).
	SectionRepeated SectionMode = iota
	// SectionSingle yields at most one object, taken from the section's
	// first body line; any further lines before _END are tolerated and
	// ignored (forward compatibility with a format that grew more lines
	// for a settings-style section).
	SectionSingle
	// SectionCombine accumulates fields from every body line onto one
	// shared object and delivers it once, when _END is reached.
	SectionCombine
)

// SectionDescriptor binds a wire section name to an ObjectSchema and the
// callbacks that receive (on load) or supply (on save) its objects.
type SectionDescriptor[T any] struct {
	sectionName string
	schema      *ObjectSchema[T]
	mode        SectionMode
	onLoad      func(obj T) bool
	items       func() []T
}

// NewSection constructs a section. Call OnLoad and/or Items afterward to
// wire it to the caller's data.
func NewSection[T any](name string, schema *ObjectSchema[T], mode SectionMode) *SectionDescriptor[T] {
	return &SectionDescriptor[T]{sectionName: name, schema: schema, mode: mode}
}

// OnLoad registers the callback invoked for each object a load yields.
// Returning false vetoes the rest of the section: the runtime fast-forwards
// to the section's _END line and resumes the file loop; it does not abort
// the whole file load.
func (s *SectionDescriptor[T]) OnLoad(fn func(obj T) bool) *SectionDescriptor[T] {
	s.onLoad = fn
	return s
}

// Items registers the callback that supplies the objects to write on save.
// For SectionCombine it should return exactly one element (or none, in
// which case nothing is written for the section).
func (s *SectionDescriptor[T]) Items(fn func() []T) *SectionDescriptor[T] {
	s.items = fn
	return s
}

// Name returns the section's wire identifier.
func (s *SectionDescriptor[T]) Name() string { return s.sectionName }

func (s *SectionDescriptor[T]) endLine() string { return s.sectionName + "_END" }

// isSectionEnd reports whether line is exactly name+"_END" — not merely a
// line ending in "_END", which would let an unrelated line that happens to
// share that suffix falsely close the section.
func isSectionEnd(line, name string) bool {
	const suffix = "_END"
	if len(line) != len(name)+len(suffix) {
		return false
	}
	return line[:len(name)] == name && line[len(name):] == suffix
}

// handleBlankLine is called when a section body line is empty. A blank
// line is only tolerated when it is the last line in the input, in which
// case done is true and the section ends there with no error; a blank line
// with more content after it is a malformed section.
func (s *SectionDescriptor[T]) handleBlankLine(r *fileReader) (done bool, err error) {
	next, _, ok, ioErr := r.nextLine()
	if ioErr != nil {
		return false, ioErr
	}
	if !ok {
		return true, nil
	}
	r.pushback(next)
	return false, &MiscParseError{Reason: "unexpected blank line in section " + s.sectionName}
}

func (s *SectionDescriptor[T]) load(r *fileReader) error {
	switch s.mode {
	case SectionCombine:
		return s.loadCombine(r)
	case SectionSingle:
		return s.loadSingle(r)
	default:
		return s.loadRepeated(r)
	}
}

func (s *SectionDescriptor[T]) loadCombine(r *fileReader) error {
	obj := s.schema.New()
	for {
		line, lineNo, ok, err := r.nextLine()
		if err != nil {
			return err
		}
		if !ok {
			return &FileFormatsError{LineNumber: lineNo, Cause: &MiscParseError{Reason: "unterminated section " + s.sectionName}}
		}
		if isSectionEnd(line, s.sectionName) {
			break
		}
		if line == "" {
			done, err := s.handleBlankLine(r)
			if err != nil {
				return &FileFormatsError{LineNumber: lineNo, Cause: err}
			}
			if done {
				break
			}
			continue
		}
		if err := s.schema.LoadLine(&obj, line); err != nil {
			return &FileFormatsError{LineNumber: lineNo, LineData: line, Cause: err}
		}
	}
	if s.onLoad != nil {
		s.onLoad(obj)
	}
	return nil
}

func (s *SectionDescriptor[T]) loadSingle(r *fileReader) error {
	line, lineNo, ok, err := r.nextLine()
	if err != nil {
		return err
	}
	if !ok {
		return &FileFormatsError{LineNumber: lineNo, Cause: &MiscParseError{Reason: "unterminated section " + s.sectionName}}
	}
	if isSectionEnd(line, s.sectionName) {
		return nil
	}
	if line == "" {
		done, err := s.handleBlankLine(r)
		if err != nil {
			return &FileFormatsError{LineNumber: lineNo, Cause: err}
		}
		if done {
			return nil
		}
		return s.skipToEnd(r)
	}

	obj := s.schema.New()
	if err := s.schema.LoadLine(&obj, line); err != nil {
		return &FileFormatsError{LineNumber: lineNo, LineData: line, Cause: err}
	}
	if s.onLoad != nil {
		s.onLoad(obj)
	}
	return s.skipToEnd(r)
}

func (s *SectionDescriptor[T]) loadRepeated(r *fileReader) error {
	for {
		line, lineNo, ok, err := r.nextLine()
		if err != nil {
			return err
		}
		if !ok {
			return &FileFormatsError{LineNumber: lineNo, Cause: &MiscParseError{Reason: "unterminated section " + s.sectionName}}
		}
		if isSectionEnd(line, s.sectionName) {
			return nil
		}
		if line == "" {
			done, err := s.handleBlankLine(r)
			if err != nil {
				return &FileFormatsError{LineNumber: lineNo, Cause: err}
			}
			if done {
				return nil
			}
			continue
		}

		obj := s.schema.New()
		if err := s.schema.LoadLine(&obj, line); err != nil {
			return &FileFormatsError{LineNumber: lineNo, LineData: line, Cause: err}
		}
		if s.onLoad != nil && !s.onLoad(obj) {
			return s.skipToEnd(r)
		}
	}
}

// skipToEnd fast-forwards past remaining body lines to the section's _END
// line, without interpreting them. Used both for SectionSingle's tolerance
// of trailing lines and for a vetoed SectionRepeated object.
func (s *SectionDescriptor[T]) skipToEnd(r *fileReader) error {
	for {
		line, lineNo, ok, err := r.nextLine()
		if err != nil {
			return err
		}
		if !ok {
			return &FileFormatsError{LineNumber: lineNo, Cause: &MiscParseError{Reason: "unterminated section " + s.sectionName}}
		}
		if isSectionEnd(line, s.sectionName) {
			return nil
		}
	}
}

func (s *SectionDescriptor[T]) save(sink ByteSink) error {
	var items []T
	if s.items != nil {
		items = s.items()
	}
	if len(items) == 0 {
		return nil
	}

	ref := s.schema.New()
	wroteHeader := false
	for _, obj := range items {
		body, ok := s.schema.SaveLine(obj, ref)
		if !ok {
			continue
		}
		if !wroteHeader {
			if err := sink.WriteLine(s.sectionName); err != nil {
				return err
			}
			wroteHeader = true
		}
		if err := sink.WriteLine(body); err != nil {
			return err
		}
	}
	if !wroteHeader {
		return nil
	}

	return sink.WriteLine(s.endLine())
}
