package pgex

import (
	"strings"

	json "github.com/goccy/go-json"
)

// SaveMode controls when a field is written back out relative to its
// default value.
type SaveMode int

const (
	// SaveModeNormal omits the field when it equals its reference default.
	SaveModeNormal SaveMode = iota
	// SaveModeNoSkip always writes the field, default or not.
	SaveModeNoSkip
	// SaveModeNotOnly omits the field when it is default, unless every
	// other field in the record would also be omitted — in which case one
	// NotOnly field is written anyway, so the record body is never empty.
	SaveModeNotOnly
)

// fieldSaveResult is the outcome of asking one field descriptor to render
// itself. text is the "tag:value;" fragment (empty if the codec declined to
// write anything at all). forceInclude means the fragment must appear in
// the record. fallback means the fragment is a reserve candidate, used only
// if no field in the record forced inclusion.
type fieldSaveResult struct {
	text         string
	forceInclude bool
	fallback     bool
}

// FieldDescriptor binds one wire tag to a member of T. Values are obtained
// through constructors in this file (Field, NonNegField, NestedField,
// UniqueField, XtraField) — the interface itself is not meant to be
// implemented outside this package.
type FieldDescriptor[T any] interface {
	Tag() string
	Load(obj *T, c *Cursor) error
	trySave(obj, ref *T) fieldSaveResult
}

// Field binds tag to a scalar member of T via a ValueCodec and a get/set
// accessor pair.
type Field[T any, V any] struct {
	tag   string
	get   func(*T) V
	set   func(*T, V)
	codec ValueCodec[V]
	mode  SaveMode
}

// NewField constructs a Field in SaveModeNormal.
func NewField[T any, V any](tag string, codec ValueCodec[V], get func(*T) V, set func(*T, V)) *Field[T, V] {
	return &Field[T, V]{tag: tag, get: get, set: set, codec: codec}
}

// NoSkip switches the field to SaveModeNoSkip and returns f for chaining.
func (f *Field[T, V]) NoSkip() *Field[T, V] {
	f.mode = SaveModeNoSkip
	return f
}

// NotOnly switches the field to SaveModeNotOnly and returns f for chaining.
func (f *Field[T, V]) NotOnly() *Field[T, V] {
	f.mode = SaveModeNotOnly
	return f
}

func (f *Field[T, V]) Tag() string { return f.tag }

func (f *Field[T, V]) Load(obj *T, c *Cursor) error {
	v, err := f.codec.Load(c)
	if err != nil {
		return &BadFieldError{Tag: f.tag, Cause: err}
	}
	f.set(obj, v)
	return nil
}

func (f *Field[T, V]) trySave(obj, ref *T) fieldSaveResult {
	v := f.get(obj)
	var refVal V
	if ref != nil {
		refVal = f.get(ref)
	}
	isDefault := f.codec.IsDefault(v, refVal)

	var b strings.Builder
	b.WriteString(f.tag)
	b.WriteByte(':')
	if !f.codec.Save(&b, v) {
		return fieldSaveResult{}
	}
	b.WriteByte(';')
	text := b.String()

	switch f.mode {
	case SaveModeNoSkip:
		return fieldSaveResult{text: text, forceInclude: true}
	case SaveModeNotOnly:
		if isDefault {
			return fieldSaveResult{text: text, fallback: true}
		}
		return fieldSaveResult{text: text, forceInclude: true}
	default:
		if isDefault {
			return fieldSaveResult{}
		}
		return fieldSaveResult{text: text, forceInclude: true}
	}
}

// nonNegCodec rejects negative values on load; save is unchanged.
type nonNegCodec[V int32 | int64] struct {
	inner ValueCodec[V]
}

func (c nonNegCodec[V]) Load(cur *Cursor) (V, error) {
	v, err := c.inner.Load(cur)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, &BadTermError{Reason: "negative value not allowed here"}
	}
	return v, nil
}

func (c nonNegCodec[V]) Save(out *strings.Builder, v V) bool { return c.inner.Save(out, v) }
func (c nonNegCodec[V]) IsDefault(v, ref V) bool              { return c.inner.IsDefault(v, ref) }

// NonNegField is Field specialised to integers that must never load as
// negative (array sizes, counts, indices).
func NonNegField[T any, V int32 | int64](tag string, codec ValueCodec[V], get func(*T) V, set func(*T, V)) *Field[T, V] {
	return NewField[T, V](tag, nonNegCodec[V]{inner: codec}, get, set)
}

// NestedField binds tag to a member of T that is itself described by an
// ObjectSchema, serialized as a quoted string per ObjectCodec. Nested
// objects are always written when present; use a pointer or a presence
// flag elsewhere on T if a nested object is genuinely optional.
func NestedField[T any, V any](tag string, schema *ObjectSchema[V], get func(*T) V, set func(*T, V)) *Field[T, V] {
	return NewField[T, V](tag, ObjectCodec[V]{Schema: schema}, get, set)
}

// UniqueFieldDescriptor is an escape hatch for fields whose load/save logic
// does not fit the get/set-plus-codec shape (cross-field validation,
// version-dependent encodings, and similar one-off cases).
type UniqueFieldDescriptor[T any] struct {
	tag  string
	load func(obj *T, c *Cursor) error
	save func(obj, ref *T) (value string, include bool)
}

// UniqueField constructs a UniqueFieldDescriptor from a load function and a
// save function. save returns the raw value text (unescaped, un-tagged) and
// whether the field should be included at all.
func UniqueField[T any](tag string, load func(obj *T, c *Cursor) error, save func(obj, ref *T) (string, bool)) *UniqueFieldDescriptor[T] {
	return &UniqueFieldDescriptor[T]{tag: tag, load: load, save: save}
}

func (u *UniqueFieldDescriptor[T]) Tag() string { return u.tag }

func (u *UniqueFieldDescriptor[T]) Load(obj *T, c *Cursor) error {
	if err := u.load(obj, c); err != nil {
		return &BadFieldError{Tag: u.tag, Cause: err}
	}
	return nil
}

func (u *UniqueFieldDescriptor[T]) trySave(obj, ref *T) fieldSaveResult {
	value, include := u.save(obj, ref)
	if !include {
		return fieldSaveResult{}
	}
	var b strings.Builder
	b.WriteString(u.tag)
	b.WriteByte(':')
	b.WriteString(value)
	b.WriteByte(';')
	return fieldSaveResult{text: b.String(), forceInclude: true}
}

// XtraFieldDescriptor binds the fixed "XTRA" tag to a free-form metadata
// map, round-tripped as an embedded JSON document. It exists so editor
// plugins can stash arbitrary per-object data without the core schema
// needing to know about it.
type XtraFieldDescriptor[T any] struct {
	get func(*T) map[string]any
	set func(*T, map[string]any)
}

// XtraField binds the metadata member of T to the "XTRA" tag.
func XtraField[T any](get func(*T) map[string]any, set func(*T, map[string]any)) *XtraFieldDescriptor[T] {
	return &XtraFieldDescriptor[T]{get: get, set: set}
}

func (x *XtraFieldDescriptor[T]) Tag() string { return "XTRA" }

func (x *XtraFieldDescriptor[T]) Load(obj *T, c *Cursor) error {
	s, err := (StringCodec{}).Load(c)
	if err != nil {
		return &BadFieldError{Tag: "XTRA", Cause: err}
	}
	var m map[string]any
	if len(s) > 0 {
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			return &BadFieldError{Tag: "XTRA", Cause: &MiscParseError{Reason: "invalid XTRA payload", Cause: err}}
		}
	}
	x.set(obj, m)
	return nil
}

func (x *XtraFieldDescriptor[T]) trySave(obj, _ *T) fieldSaveResult {
	m := x.get(obj)
	if len(m) == 0 {
		return fieldSaveResult{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fieldSaveResult{}
	}
	var b strings.Builder
	b.WriteString("XTRA:")
	(StringCodec{}).Save(&b, string(data))
	b.WriteByte(';')
	return fieldSaveResult{text: b.String(), forceInclude: true}
}
