package pgex

import "io"

// sectionRuntime is the non-generic facade every SectionDescriptor[T]
// exposes to FileSchema, letting sections over different object types
// share one slice.
type sectionRuntime interface {
	Name() string
	load(r *fileReader) error
	save(sink ByteSink) error
}

// FileSchema is an ordered list of sections making up one PGEX document
// type (a level file, a world-map file, a game-save file, ...).
type FileSchema struct {
	sections []sectionRuntime
}

// NewFileSchema assembles a FileSchema from sections in wire order.
func NewFileSchema(sections ...sectionRuntime) *FileSchema {
	return &FileSchema{sections: sections}
}

// LoadCallbacks customizes Load beyond what each SectionDescriptor's own
// OnLoad callback already handles.
type LoadCallbacks struct {
	// OnUnknownSection is called when a top-level line opens a section the
	// schema does not recognize, before that section is skipped to its
	// _END line. Useful for diagnostics; the skip happens regardless of
	// whether this is set.
	OnUnknownSection func(name string)
}

// SaveCallbacks customizes Save. It is empty today; keeping it as its own
// type means a future addition (progress reporting, say) will not have to
// change Save's signature.
type SaveCallbacks struct{}

// Load reads a document from lr, dispatching each section in turn. Unknown
// top-level sections are tolerated and skipped. A malformed line anywhere
// is reported as a single *FileFormatsError carrying the offending line
// number and text plus the full cause chain that produced it.
func (fs *FileSchema) Load(lr LineReader, cb LoadCallbacks) error {
	r := newFileReader(lr)
	for {
		line, lineNo, ok, err := r.nextLine()
		if err != nil {
			return &FileFormatsError{LineNumber: lineNo, Cause: &MiscParseError{Reason: "read error", Cause: err}}
		}
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		sec := fs.find(line)
		if sec == nil {
			if cb.OnUnknownSection != nil {
				cb.OnUnknownSection(line)
			}
			if err := skipUnknownSection(r, line); err != nil {
				return err
			}
			continue
		}

		if err := sec.load(r); err != nil {
			if ffe, ok := err.(*FileFormatsError); ok {
				return ffe
			}
			return &FileFormatsError{LineNumber: lineNo, LineData: line, Cause: err}
		}
	}
}

// LoadReader is Load over a plain io.Reader.
func (fs *FileSchema) LoadReader(r io.Reader, cb LoadCallbacks) error {
	return fs.Load(NewLineReader(r), cb)
}

func (fs *FileSchema) find(name string) sectionRuntime {
	for _, sec := range fs.sections {
		if sec.Name() == name {
			return sec
		}
	}
	return nil
}

func skipUnknownSection(r *fileReader, name string) error {
	for {
		line, lineNo, ok, err := r.nextLine()
		if err != nil {
			return &FileFormatsError{LineNumber: lineNo, Cause: &MiscParseError{Reason: "read error", Cause: err}}
		}
		if !ok {
			return &FileFormatsError{LineNumber: lineNo, Cause: &MiscParseError{Reason: "unterminated section " + name}}
		}
		if isSectionEnd(line, name) {
			return nil
		}
	}
}

// Save writes every section, in schema order, to sink.
func (fs *FileSchema) Save(sink ByteSink, _ SaveCallbacks) error {
	for _, sec := range fs.sections {
		if err := sec.save(sink); err != nil {
			return err
		}
	}
	return nil
}

// SaveWriter is Save over a plain io.Writer.
func (fs *FileSchema) SaveWriter(w io.Writer, cb SaveCallbacks) error {
	return fs.Save(NewLineWriter(w), cb)
}
