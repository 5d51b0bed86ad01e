// Package pgex implements streaming parsing and canonical serialization of
// PGEX (also called MDX), a line-oriented, section-based text format used to
// persist level, world-map, and game-save data for a 2D platform game editor.
//
// A PGEX document is a sequence of sections. Each section begins with a bare
// identifier line and ends with that identifier followed by "_END". The lines
// in between are body records of the form:
//
//	tag0:value0;tag1:value1;...;
//
// Package pgex does not know about any concrete object type. Callers build an
// [ObjectSchema] out of [FieldDescriptor] values (see [Field], [NonNegField],
// [NestedField], [UniqueField], and [XtraField]), group schemas into
// [SectionDescriptor] values, and assemble those into a [FileSchema]. Parsing
// a document drives a [LoadCallbacks] table; writing one drives a
// [SaveCallbacks] table.
//
// The wire encoding of individual values (integers, floats, booleans, quoted
// strings, homogeneous lists, bit-strings, and nested objects) is handled by
// the codecs in value.go; they are also what decides, at save time, whether a
// field is indistinguishable from its default and can be omitted.
package pgex
