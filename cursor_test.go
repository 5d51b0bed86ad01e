package pgex_test

import (
	"testing"

	"github.com/pgex-go/pgex"
)

func TestCursorBasics(t *testing.T) {
	c := pgex.NewCursor("ab")
	if c.Done() {
		t.Fatal("fresh cursor over non-empty line reports Done")
	}
	if c.Peek() != 'a' {
		t.Fatalf("Peek() = %q, want 'a'", c.Peek())
	}
	if c.PeekAt(1) != 'b' {
		t.Fatalf("PeekAt(1) = %q, want 'b'", c.PeekAt(1))
	}
	if c.PeekAt(2) != 0 {
		t.Fatalf("PeekAt(2) = %q, want 0 past end of line", c.PeekAt(2))
	}

	c.Advance(1)
	if c.Pos() != 1 {
		t.Fatalf("Pos() = %d, want 1", c.Pos())
	}
	if c.Rest() != "b" {
		t.Fatalf("Rest() = %q, want %q", c.Rest(), "b")
	}

	c.Advance(5)
	if !c.Done() {
		t.Fatal("Advance past end of line should clamp to Done")
	}
	if c.Peek() != 0 {
		t.Fatalf("Peek() past end = %q, want 0", c.Peek())
	}
}

func TestCursorEmptyLine(t *testing.T) {
	c := pgex.NewCursor("")
	if !c.Done() {
		t.Fatal("cursor over empty line should start Done")
	}
	if c.Rest() != "" {
		t.Fatalf("Rest() = %q, want empty", c.Rest())
	}
}
