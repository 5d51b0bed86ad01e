// Package demo is a small, representative schema used by cmd/pgexfmt so the
// CLI has something concrete to validate/canonicalize/serve. The per-object
// field catalogues for a real level/world/save file are an external
// collaborator's concern (see the module's top-level documentation); this
// package stands in for that collaborator with a level file's header and
// block list.
package demo

import "github.com/pgex-go/pgex"

// Header is a level file's single settings record.
type Header struct {
	Name      string
	StarsNum  int32
	IsHub     bool
	OpenLevel string
}

// Block is one placed block, one per body line of the "BLOCKS" section.
type Block struct {
	ID       int32
	X, Y     float64
	W, H     float64
	Layer    string
	Contents int32
	Meta     map[string]any
}

// Background is one placed background object.
type Background struct {
	ID   int32
	X, Y float64
	Meta map[string]any
}

// Document is an in-memory level: one Header plus repeated Block and
// Background records.
type Document struct {
	Header      Header
	Blocks      []Block
	Backgrounds []Background
}

func headerSchema() *pgex.ObjectSchema[Header] {
	return pgex.NewObjectSchema("HEADER", func() Header { return Header{} },
		pgex.NewField[Header, string]("TL", pgex.StringCodec{},
			func(h *Header) string { return h.Name },
			func(h *Header, v string) { h.Name = v }),
		pgex.NonNegField[Header, int32]("SS", pgex.Int32Codec{},
			func(h *Header) int32 { return h.StarsNum },
			func(h *Header, v int32) { h.StarsNum = v }),
		pgex.NewField[Header, bool]("IH", pgex.BoolCodec{},
			func(h *Header) bool { return h.IsHub },
			func(h *Header, v bool) { h.IsHub = v }),
		pgex.NewField[Header, string]("OL", pgex.StringCodec{},
			func(h *Header) string { return h.OpenLevel },
			func(h *Header, v string) { h.OpenLevel = v }),
	)
}

func blockSchema() *pgex.ObjectSchema[Block] {
	return pgex.NewObjectSchema("BLOCK", func() Block { return Block{} },
		pgex.NonNegField[Block, int32]("ID", pgex.Int32Codec{},
			func(b *Block) int32 { return b.ID },
			func(b *Block, v int32) { b.ID = v }),
		pgex.NewField[Block, float64]("X", pgex.Float64Codec{},
			func(b *Block) float64 { return b.X },
			func(b *Block, v float64) { b.X = v }),
		pgex.NewField[Block, float64]("Y", pgex.Float64Codec{},
			func(b *Block) float64 { return b.Y },
			func(b *Block, v float64) { b.Y = v }),
		pgex.NewField[Block, float64]("W", pgex.Float64Codec{},
			func(b *Block) float64 { return b.W },
			func(b *Block, v float64) { b.W = v }),
		pgex.NewField[Block, float64]("H", pgex.Float64Codec{},
			func(b *Block) float64 { return b.H },
			func(b *Block, v float64) { b.H = v }),
		pgex.NewField[Block, string]("LY", pgex.StringCodec{},
			func(b *Block) string { return b.Layer },
			func(b *Block, v string) { b.Layer = v }).NotOnly(),
		pgex.NewField[Block, int32]("NC", pgex.Int32Codec{},
			func(b *Block) int32 { return b.Contents },
			func(b *Block, v int32) { b.Contents = v }),
		pgex.XtraField[Block](
			func(b *Block) map[string]any { return b.Meta },
			func(b *Block, v map[string]any) { b.Meta = v }),
	)
}

func backgroundSchema() *pgex.ObjectSchema[Background] {
	return pgex.NewObjectSchema("BGO", func() Background { return Background{} },
		pgex.NonNegField[Background, int32]("ID", pgex.Int32Codec{},
			func(b *Background) int32 { return b.ID },
			func(b *Background, v int32) { b.ID = v }),
		pgex.NewField[Background, float64]("X", pgex.Float64Codec{},
			func(b *Background) float64 { return b.X },
			func(b *Background, v float64) { b.X = v }),
		pgex.NewField[Background, float64]("Y", pgex.Float64Codec{},
			func(b *Background) float64 { return b.Y },
			func(b *Background, v float64) { b.Y = v }),
		pgex.XtraField[Background](
			func(b *Background) map[string]any { return b.Meta },
			func(b *Background, v map[string]any) { b.Meta = v }),
	)
}

// FileSchema builds the section list for doc: loading populates doc's
// fields in place; saving reads them back out.
func FileSchema(doc *Document) *pgex.FileSchema {
	header := pgex.NewSection("HEADER", headerSchema(), pgex.SectionSingle).
		OnLoad(func(h Header) bool { doc.Header = h; return true }).
		Items(func() []Header { return []Header{doc.Header} })

	blocks := pgex.NewSection("BLOCKS", blockSchema(), pgex.SectionRepeated).
		OnLoad(func(b Block) bool { doc.Blocks = append(doc.Blocks, b); return true }).
		Items(func() []Block { return doc.Blocks })

	backgrounds := pgex.NewSection("BACKGROUNDS", backgroundSchema(), pgex.SectionRepeated).
		OnLoad(func(b Background) bool { doc.Backgrounds = append(doc.Backgrounds, b); return true }).
		Items(func() []Background { return doc.Backgrounds })

	return pgex.NewFileSchema(header, blocks, backgrounds)
}
