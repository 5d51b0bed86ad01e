package pgex

import (
	"bufio"
	"io"
)

// LineReader supplies a document's lines one at a time. ReadLine returns
// ok=false with a nil error at normal end of input.
type LineReader interface {
	ReadLine() (line string, ok bool, err error)
}

// ByteSink receives a document's lines one at a time as they are produced.
type ByteSink interface {
	WriteLine(line string) error
}

// NewLineReader wraps r as a LineReader, splitting on newlines. It accepts
// documents well beyond bufio.Scanner's default token size, since a single
// record body (e.g. a long tile or gradient list) can run to megabytes.
func NewLineReader(r io.Reader) LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64<<20)
	return &scannerLineReader{sc: sc}
}

type scannerLineReader struct {
	sc *bufio.Scanner
}

func (l *scannerLineReader) ReadLine() (string, bool, error) {
	if !l.sc.Scan() {
		return "", false, l.sc.Err()
	}
	return l.sc.Text(), true, nil
}

// NewLineWriter wraps w as a ByteSink, writing each line followed by '\n'.
func NewLineWriter(w io.Writer) ByteSink {
	return &writerSink{w: w}
}

type writerSink struct {
	w io.Writer
}

func (s *writerSink) WriteLine(line string) error {
	if _, err := io.WriteString(s.w, line); err != nil {
		return err
	}
	_, err := io.WriteString(s.w, "\n")
	return err
}

// fileReader tracks 1-based line numbers over a LineReader and supports
// pushing one line back. The section runtime needs that to peek at the
// line after a blank body line before deciding whether the blank line ends
// the document or is malformed mid-section.
type fileReader struct {
	lr         LineReader
	lineNo     uint64
	pending    string
	hasPending bool
}

func newFileReader(lr LineReader) *fileReader {
	return &fileReader{lr: lr}
}

func (r *fileReader) nextLine() (string, uint64, bool, error) {
	if r.hasPending {
		r.hasPending = false
		return r.pending, r.lineNo, true, nil
	}
	line, ok, err := r.lr.ReadLine()
	if err != nil {
		return "", r.lineNo, false, err
	}
	if !ok {
		return "", r.lineNo, false, nil
	}
	r.lineNo++
	return line, r.lineNo, true, nil
}

func (r *fileReader) pushback(line string) {
	r.pending = line
	r.hasPending = true
}
