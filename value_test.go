package pgex_test

import (
	"strings"
	"testing"

	"github.com/pgex-go/pgex"
)

func TestInt32CodecOverflow(t *testing.T) {
	for _, test := range []struct {
		name    string
		in      string
		want    int32
		wantErr bool
	}{
		{name: "zero", in: "0", want: 0},
		{name: "positive", in: "2147483647", want: 2147483647},
		{name: "positive overflow", in: "2147483648", wantErr: true},
		{name: "negative", in: "-2147483648", want: -2147483648},
		{name: "negative overflow", in: "-2147483649", wantErr: true},
		{name: "huge digit run", in: "99999999999999999999999999", wantErr: true},
		{name: "no digits", in: "", wantErr: true},
		{name: "bare minus", in: "-", wantErr: true},
	} {
		t.Run(test.name, func(t *testing.T) {
			c := pgex.NewCursor(test.in)
			got, err := (pgex.Int32Codec{}).Load(c)
			if test.wantErr {
				if err == nil {
					t.Fatalf("Load(%q) = %d, nil; want error", test.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", test.in, err)
			}
			if got != test.want {
				t.Errorf("Load(%q) = %d, want %d", test.in, got, test.want)
			}
		})
	}
}

func TestUint64CodecOverflow(t *testing.T) {
	c := pgex.NewCursor("18446744073709551616") // MaxUint64 + 1
	if _, err := (pgex.Uint64Codec{}).Load(c); err == nil {
		t.Fatal("expected overflow error")
	}

	c = pgex.NewCursor("18446744073709551615") // MaxUint64
	got, err := (pgex.Uint64Codec{}).Load(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 18446744073709551615 {
		t.Errorf("got %d, want MaxUint64", got)
	}
}

func TestFloat64CodecGrammar(t *testing.T) {
	for _, test := range []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{name: "integer", in: "42", want: 42},
		{name: "negative", in: "-3", want: -3},
		{name: "decimal", in: "3.5", want: 3.5},
		{name: "exponent", in: "1.5e2", want: 150},
		{name: "negative exponent", in: "1.5e-2", want: 0.015},
		{name: "leading dot rejected", in: ".5", wantErr: true},
		{name: "bare minus rejected", in: "-", wantErr: true},
		{name: "trailing dot with no fraction digits rejected", in: "5.", wantErr: true},
		{name: "exponent with no digits rejected", in: "5e", wantErr: true},
		{name: "exponent magnitude too large rejected", in: "1e400", wantErr: true},
	} {
		t.Run(test.name, func(t *testing.T) {
			c := pgex.NewCursor(test.in)
			got, err := (pgex.Float64Codec{}).Load(c)
			if test.wantErr {
				if err == nil {
					t.Fatalf("Load(%q) = %v, nil; want error", test.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", test.in, err)
			}
			if got != test.want {
				t.Errorf("Load(%q) = %v, want %v", test.in, got, test.want)
			}
		})
	}
}

func TestStringCodecEscaping(t *testing.T) {
	for _, test := range []struct {
		name string
		in   string
	}{
		{name: "plain", in: "hello"},
		{name: "newline", in: "a\nb"},
		{name: "carriage return", in: "a\rb"},
		{name: "quote", in: `a"b`},
		{name: "delimiters", in: "a;b:c[d]e,f%g\\h"},
		{name: "empty", in: ""},
	} {
		t.Run(test.name, func(t *testing.T) {
			var out strings.Builder
			if !(pgex.StringCodec{}).Save(&out, test.in) {
				t.Fatal("Save reported nothing written")
			}

			c := pgex.NewCursor(out.String())
			got, err := (pgex.StringCodec{}).Load(c)
			if err != nil {
				t.Fatalf("Load(%q) error: %v", out.String(), err)
			}
			if got != test.in {
				t.Errorf("round trip = %q, want %q", got, test.in)
			}
		})
	}
}

func TestStringCodecRejectsRawDelimiters(t *testing.T) {
	for _, in := range []string{`"a;b"`, `"a:b"`} {
		c := pgex.NewCursor(in)
		if _, err := (pgex.StringCodec{}).Load(c); err == nil {
			t.Errorf("Load(%q): expected error for unescaped delimiter", in)
		}
	}
}

func TestListCodecTrailingComma(t *testing.T) {
	list := pgex.ListCodec[int32]{Elem: pgex.Int32Codec{}}

	c := pgex.NewCursor("[1,2,3]")
	got, err := list.Load(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int32{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %d, want %d", i, got[i], want[i])
		}
	}

	c = pgex.NewCursor("[1,2,]")
	if _, err := list.Load(c); err == nil {
		t.Error("expected trailing comma to be rejected")
	}
}

func TestListCodecRoundTripEmpty(t *testing.T) {
	list := pgex.ListCodec[int32]{Elem: pgex.Int32Codec{}}

	var out strings.Builder
	if list.Save(&out, nil) {
		t.Fatalf("Save of empty list wrote %q, want nothing written", out.String())
	}

	got, err := list.Load(pgex.NewCursor("[]"))
	if err != nil {
		t.Fatalf("Load(%q) error: %v", "[]", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load(%q) = %v, want an empty list", "[]", got)
	}
}

func TestListCodecSaveRoundTrip(t *testing.T) {
	list := pgex.ListCodec[int32]{Elem: pgex.Int32Codec{}}
	in := []int32{1, 2, 3}

	var out strings.Builder
	if !list.Save(&out, in) {
		t.Fatal("Save reported nothing written")
	}
	if out.String() != "[1,2,3]" {
		t.Fatalf("Save = %q, want [1,2,3]", out.String())
	}

	got, err := list.Load(pgex.NewCursor(out.String()))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("round trip length = %d, want %d", len(got), len(in))
	}
}

func TestBitListCodecRoundTrip(t *testing.T) {
	in := []bool{true, false, false, true, true}
	var out strings.Builder
	(pgex.BitListCodec{}).Save(&out, in)
	if out.String() != "10011" {
		t.Fatalf("Save = %q, want 10011", out.String())
	}

	c := pgex.NewCursor(out.String() + ";")
	got, err := (pgex.BitListCodec{}).Load(c)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %v, want %v", got, in)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("bit %d = %v, want %v", i, got[i], in[i])
		}
	}
}

func TestBoolCodec(t *testing.T) {
	for in, want := range map[string]bool{"0": false, "1": true} {
		got, err := (pgex.BoolCodec{}).Load(pgex.NewCursor(in))
		if err != nil {
			t.Fatalf("Load(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Load(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := (pgex.BoolCodec{}).Load(pgex.NewCursor("2")); err == nil {
		t.Error("expected error for invalid bool byte")
	}
}
