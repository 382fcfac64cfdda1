// Package nbt implements Minecraft's Named Binary Tag format.
//
// NBT is a tree-based binary format used for player data, level data and
// chunk payloads. This package provides:
//   - The Tag value model (all thirteen tag types, ordered compounds)
//   - A binary parser and encoder (big-endian, bit-exact round trips)
//   - The Modified UTF-8 string codec the wire format depends on
//   - Gzip-wrapped document helpers for level.dat-style files
//   - An SNBT text rendering for inspection
//
// # Data Model
//
// Scalars: byte, short, int, long, float, double, string
// Arrays:  byte array, int array, long array
// Containers: list (homogeneous), compound (ordered name→tag)
//
// A top-level document is a NamedTag: one type-id byte, a name, a payload.
// A document whose leading type id is zero is the empty document ("", End).
//
// # Example
//
//	root := nbt.Compound(
//		nbt.Entry("Data", nbt.Int(123)),
//		nbt.Entry("Name", nbt.String("overworld")),
//	)
//	var buf bytes.Buffer
//	if err := nbt.WriteNamedTag(&buf, "Level", root); err != nil { ... }
//	doc, rest, err := nbt.ParseNamedTag(buf.Bytes())
//
// # Error Behavior
//
// Parsing fails fast on the first malformed field: truncated input returns
// ErrUnexpectedEOF, unknown type ids return *InvalidTagError, malformed
// strings return *MUTF8Error, and over-deep nesting returns *DepthError.
// No partial trees are returned.
package nbt
