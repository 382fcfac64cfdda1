package nbt

import (
	"bytes"
	"errors"
	"testing"
)

// ============================================================
// Named Tag Parsing
// ============================================================

func TestParseNamedTag_Byte(t *testing.T) {
	data := []byte{0x01, 0x00, 0x04, 'n', 'a', 'm', 'e', 0x7F}
	doc, rest, err := ParseNamedTag(data)
	if err != nil {
		t.Fatalf("ParseNamedTag failed: %v", err)
	}
	if doc.Name != "name" {
		t.Errorf("name = %q, want %q", doc.Name, "name")
	}
	v, err := doc.Tag.AsByte()
	if err != nil {
		t.Fatalf("AsByte failed: %v", err)
	}
	if v != 127 {
		t.Errorf("value = %d, want 127", v)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining bytes, got %d", len(rest))
	}
}

func TestParseNamedTag_EmptyDocument(t *testing.T) {
	doc, rest, err := ParseNamedTag([]byte{0x00, 0xAA, 0xBB})
	if err != nil {
		t.Fatalf("ParseNamedTag failed: %v", err)
	}
	if doc.Name != "" || doc.Tag.Type() != TypeEnd {
		t.Errorf("expected empty document, got (%q, %s)", doc.Name, doc.Tag.Type())
	}
	// The leading zero consumes only itself.
	if len(rest) != 2 {
		t.Errorf("expected 2 remaining bytes, got %d", len(rest))
	}
}

func TestParseNamedTag_Concatenated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNamedTag(&buf, "first", Int(1)); err != nil {
		t.Fatal(err)
	}
	if err := WriteNamedTag(&buf, "second", Int(2)); err != nil {
		t.Fatal(err)
	}

	doc1, rest, err := ParseNamedTag(buf.Bytes())
	if err != nil {
		t.Fatalf("first document: %v", err)
	}
	doc2, rest, err := ParseNamedTag(rest)
	if err != nil {
		t.Fatalf("second document: %v", err)
	}
	if doc1.Name != "first" || doc2.Name != "second" {
		t.Errorf("got %q, %q", doc1.Name, doc2.Name)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining bytes, got %d", len(rest))
	}
}

func TestParseNamedTag_InvalidTypeID(t *testing.T) {
	data := []byte{13, 0x00, 0x01, 'x', 0x00}
	_, _, err := ParseNamedTag(data)
	var terr *InvalidTagError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *InvalidTagError, got %v", err)
	}
	if terr.ID != 13 {
		t.Errorf("ID = %d, want 13", terr.ID)
	}
}

func TestParseNamedTag_Empty(t *testing.T) {
	_, _, err := ParseNamedTag(nil)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

// ============================================================
// Payload Parsing
// ============================================================

func TestParsePayload_Scalars(t *testing.T) {
	tests := []struct {
		name string
		typ  TagType
		data []byte
		want *Tag
	}{
		{"byte", TypeByte, []byte{0xD6}, Byte(-42)},
		{"short", TypeShort, []byte{0x7F, 0xFF}, Short(32767)},
		{"int", TypeInt, []byte{0x7F, 0xFF, 0xFF, 0xFF}, Int(2147483647)},
		{"long", TypeLong, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, Long(-1)},
		{"float", TypeFloat, []byte{0x3F, 0x80, 0x00, 0x00}, Float(1.0)},
		{"double", TypeDouble, []byte{0x40, 0x09, 0x21, 0xFB, 0x54, 0x44, 0x2D, 0x18}, Double(3.141592653589793)},
		{"string", TypeString, []byte{0x00, 0x03, 'h', 'i', '!'}, String("hi!")},
		{"end", TypeEnd, nil, End()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, rest, err := ParsePayload(tt.data, tt.typ)
			if err != nil {
				t.Fatalf("ParsePayload failed: %v", err)
			}
			if !tag.Equal(tt.want) {
				t.Errorf("got %s, want %s", FormatSNBT(tag), FormatSNBT(tt.want))
			}
			if len(rest) != 0 {
				t.Errorf("expected no remaining bytes, got %d", len(rest))
			}
		})
	}
}

func TestParsePayload_EmptyList(t *testing.T) {
	// Element type End, count 0.
	tag, _, err := ParsePayload([]byte{0x00, 0x00, 0x00, 0x00, 0x00}, TypeList)
	if err != nil {
		t.Fatalf("ParsePayload failed: %v", err)
	}
	if tag.Type() != TypeList || tag.Len() != 0 {
		t.Errorf("expected empty list, got %s len %d", tag.Type(), tag.Len())
	}
}

func TestParsePayload_NegativeCount(t *testing.T) {
	// ByteArray with count -1: must be rejected before allocation.
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	_, _, err := ParsePayload(data, TypeByteArray)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestParsePayload_OversizeCount(t *testing.T) {
	tests := []struct {
		name string
		typ  TagType
		data []byte
	}{
		{"byte array", TypeByteArray, []byte{0x7F, 0xFF, 0xFF, 0xFF, 0x01}},
		{"int array", TypeIntArray, []byte{0x00, 0x00, 0x10, 0x00, 0x01}},
		{"long array", TypeLongArray, []byte{0x00, 0x00, 0x10, 0x00, 0x01}},
		{"list", TypeList, []byte{0x01, 0x7F, 0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParsePayload(tt.data, tt.typ)
			if !errors.Is(err, ErrUnexpectedEOF) {
				t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
			}
		})
	}
}

func TestParse_TruncationSafety(t *testing.T) {
	// A valid document truncated at every byte offset must fail with
	// ErrUnexpectedEOF, never panic or succeed.
	root := Compound(
		Entry("byte", Byte(1)),
		Entry("string", String("value")),
		Entry("list", List(Int(1), Int(2), Int(3))),
		Entry("longs", LongArray([]int64{1, 2})),
		Entry("nested", Compound(Entry("inner", Double(0.5)))),
	)
	var buf bytes.Buffer
	if err := WriteNamedTag(&buf, "root", root); err != nil {
		t.Fatal(err)
	}
	full := buf.Bytes()

	for cut := 1; cut < len(full); cut++ {
		_, _, err := ParseNamedTag(full[:cut])
		if err == nil {
			t.Fatalf("truncation at %d unexpectedly succeeded", cut)
		}
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Fatalf("truncation at %d: expected ErrUnexpectedEOF, got %v", cut, err)
		}
	}
}

// ============================================================
// Depth Limiting
// ============================================================

func TestParse_DepthExceeded(t *testing.T) {
	// Nested single-element lists: each level is elem=TypeList, count=1.
	depth := DefaultMaxDepth + 8
	data := make([]byte, 0, depth*5+5)
	for i := 0; i < depth; i++ {
		data = append(data, byte(TypeList), 0x00, 0x00, 0x00, 0x01)
	}
	data = append(data, byte(TypeEnd), 0x00, 0x00, 0x00, 0x00)

	_, _, err := ParsePayload(data, TypeList)
	var derr *DepthError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DepthError, got %v", err)
	}
}

func TestParse_DepthWithinLimit(t *testing.T) {
	tag := Int(1)
	for i := 0; i < 40; i++ {
		tag = List(tag)
	}
	var buf bytes.Buffer
	if err := WriteNamedTag(&buf, "deep", tag); err != nil {
		t.Fatal(err)
	}

	if _, _, err := ParseNamedTag(buf.Bytes(), WithMaxDepth(64)); err != nil {
		t.Fatalf("expected success within limit, got %v", err)
	}
	if _, _, err := ParseNamedTag(buf.Bytes(), WithMaxDepth(16)); err == nil {
		t.Fatal("expected depth error with tight limit")
	}
}
