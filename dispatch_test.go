package pgex_test

import (
	"io"
	"strings"
	"testing"

	"github.com/pgex-go/pgex"
)

func TestDispatchRoutesSMBX38A(t *testing.T) {
	var handled string
	handler := func(r io.Reader) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		handled = string(data)
		return nil
	}

	fs := pgex.NewFileSchema()
	input := "SMBXFile\nsome legacy payload\n"
	if err := pgex.Dispatch(strings.NewReader(input), fs, pgex.LoadCallbacks{}, nil, handler); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if handled != input {
		t.Fatalf("38A handler got %q, want the full input %q", handled, input)
	}
}

func TestDispatchRoutesSMBX64(t *testing.T) {
	var called bool
	handler := func(r io.Reader) error { called = true; return nil }

	fs := pgex.NewFileSchema()
	input := "64\nrest of legacy save\n"
	if err := pgex.Dispatch(strings.NewReader(input), fs, pgex.LoadCallbacks{}, handler, nil); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !called {
		t.Fatal("SMBX-64 handler was not invoked")
	}
}

func TestDispatchDefaultsToPGEX(t *testing.T) {
	section := pgex.NewSection("ITEMS", itemSchema(), pgex.SectionRepeated)
	fs := pgex.NewFileSchema(section)

	input := "ITEMS\nID:1;\nITEMS_END\n"
	if err := pgex.Dispatch(strings.NewReader(input), fs, pgex.LoadCallbacks{}, nil, nil); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
}

func TestDispatchMissingHandlerIsAnError(t *testing.T) {
	fs := pgex.NewFileSchema()
	input := "SMBXFile\npayload\n"
	if err := pgex.Dispatch(strings.NewReader(input), fs, pgex.LoadCallbacks{}, nil, nil); err == nil {
		t.Fatal("expected error when no SMBX-38A handler is registered")
	}
}
