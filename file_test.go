package pgex_test

import (
	"strings"
	"testing"

	"github.com/pgex-go/pgex"
)

func TestFileSchemaSkipsUnknownSections(t *testing.T) {
	var seen []int32
	section := pgex.NewSection("ITEMS", itemSchema(), pgex.SectionRepeated).
		OnLoad(func(r itemRecord) bool { seen = append(seen, r.ID); return true })
	fs := pgex.NewFileSchema(section)

	var unknown []string
	input := "FUTURE_SECTION\nanything:goes;here\nFUTURE_SECTION_END\nITEMS\nID:1;\nITEMS_END\n"
	err := fs.LoadReader(strings.NewReader(input), pgex.LoadCallbacks{
		OnUnknownSection: func(name string) { unknown = append(unknown, name) },
	})
	if err != nil {
		t.Fatalf("LoadReader error: %v", err)
	}
	if len(unknown) != 1 || unknown[0] != "FUTURE_SECTION" {
		t.Fatalf("unknown sections = %v, want [FUTURE_SECTION]", unknown)
	}
	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("seen = %v, want [1]", seen)
	}
}

func TestFileSchemaUnknownSectionRequiresItsOwnEnd(t *testing.T) {
	section := pgex.NewSection("ITEMS", itemSchema(), pgex.SectionRepeated)
	fs := pgex.NewFileSchema(section)

	input := "FUTURE_SECTION\nanything:goes;\n"
	if err := fs.LoadReader(strings.NewReader(input), pgex.LoadCallbacks{}); err == nil {
		t.Fatal("expected error for an unknown section missing its _END line")
	}
}

func TestFileFormatsErrorReportsLineNumber(t *testing.T) {
	section := pgex.NewSection("ITEMS", itemSchema(), pgex.SectionRepeated)
	fs := pgex.NewFileSchema(section)

	input := "ITEMS\nID:1;\nID:not-a-number;\nITEMS_END\n"
	err := fs.LoadReader(strings.NewReader(input), pgex.LoadCallbacks{})
	if err == nil {
		t.Fatal("expected a parse error")
	}
	ffe, ok := err.(*pgex.FileFormatsError)
	if !ok {
		t.Fatalf("error type = %T, want *pgex.FileFormatsError", err)
	}
	if ffe.LineNumber != 3 {
		t.Fatalf("LineNumber = %d, want 3", ffe.LineNumber)
	}
	if ffe.LineData != "ID:not-a-number;" {
		t.Fatalf("LineData = %q, want the offending line", ffe.LineData)
	}
	if ffe.Error() == "" {
		t.Fatal("Error() returned empty string")
	}
}

func TestFileSchemaMultipleSections(t *testing.T) {
	metaSchema := pgex.NewObjectSchema("META", func() meta { return meta{} },
		pgex.NewField("A", pgex.Int32Codec{}, func(m *meta) int32 { return m.A }, func(m *meta, v int32) { m.A = v }).NoSkip(),
		pgex.NewField("B", pgex.Int32Codec{}, func(m *meta) int32 { return m.B }, func(m *meta, v int32) { m.B = v }).NoSkip(),
	)
	var gotMeta meta
	metaSection := pgex.NewSection("META", metaSchema, pgex.SectionCombine).
		OnLoad(func(m meta) bool { gotMeta = m; return true })

	var gotItems []itemRecord
	itemsSection := pgex.NewSection("ITEMS", itemSchema(), pgex.SectionRepeated).
		OnLoad(func(r itemRecord) bool { gotItems = append(gotItems, r); return true })

	fs := pgex.NewFileSchema(metaSection, itemsSection)

	input := "META\nA:1;\nB:2;\nMETA_END\nITEMS\nID:10;\nID:20;\nITEMS_END\n"
	if err := fs.LoadReader(strings.NewReader(input), pgex.LoadCallbacks{}); err != nil {
		t.Fatalf("LoadReader error: %v", err)
	}
	if gotMeta.A != 1 || gotMeta.B != 2 {
		t.Fatalf("gotMeta = %+v, want {1 2}", gotMeta)
	}
	if len(gotItems) != 2 || gotItems[0].ID != 10 || gotItems[1].ID != 20 {
		t.Fatalf("gotItems = %v, want [10 20]", gotItems)
	}
}
