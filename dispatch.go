package pgex

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// FormatHandler parses a file dialect this package does not implement
// itself. SMBX-64 and SMBX-38A saves share file extensions and rough shape
// with PGEX/MDX documents but are otherwise unrelated formats; callers that
// need to read them register a handler here instead of this package
// growing parsers for formats outside its scope.
type FormatHandler func(r io.Reader) error

// Dispatch sniffs the first line of r and routes the whole document, first
// line included, to the PGEX/MDX loader or to one of smbx64/smbx38a. A "SMBXFile" prefix
// selects the 38A handler; a first line that is nothing but decimal digits
// selects the 64 handler; anything else is treated as PGEX/MDX.
func Dispatch(r io.Reader, fs *FileSchema, cb LoadCallbacks, smbx64, smbx38a FormatHandler) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &FileFormatsError{Cause: &MiscParseError{Reason: "read error", Cause: err}}
	}

	first := firstLine(data)

	switch {
	case strings.HasPrefix(first, "SMBXFile"):
		if smbx38a == nil {
			return &FileFormatsError{LineNumber: 1, LineData: first, Cause: &MiscParseError{Reason: "SMBX-38A format has no registered handler"}}
		}
		return smbx38a(bytes.NewReader(data))
	case isBareInteger(first):
		if smbx64 == nil {
			return &FileFormatsError{LineNumber: 1, LineData: first, Cause: &MiscParseError{Reason: "SMBX-64 format has no registered handler"}}
		}
		return smbx64(bytes.NewReader(data))
	default:
		return fs.LoadReader(bytes.NewReader(data), cb)
	}
}

func firstLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 64<<20)
	if sc.Scan() {
		return sc.Text()
	}
	return ""
}

func isBareInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
