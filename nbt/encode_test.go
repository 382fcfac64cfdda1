package nbt

import (
	"bytes"
	"testing"
)

// ============================================================
// Encoding
// ============================================================

func TestWriteNamedTag_Byte(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNamedTag(&buf, "name", Byte(127)); err != nil {
		t.Fatalf("WriteNamedTag failed: %v", err)
	}
	expected := []byte{0x01, 0x00, 0x04, 'n', 'a', 'm', 'e', 0x7F}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("got %#v, want %#v", buf.Bytes(), expected)
	}
}

func TestWriteNamedTag_EmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNamedTag(&buf, "", End()); err != nil {
		t.Fatalf("WriteNamedTag failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x00}) {
		t.Errorf("got %#v, want single zero byte", buf.Bytes())
	}
}

func TestWritePayload_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePayload(&buf, List()); err != nil {
		t.Fatalf("WritePayload failed: %v", err)
	}
	// Element type End, count 0.
	expected := []byte{0x00, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("got %#v, want %#v", buf.Bytes(), expected)
	}
}

func TestWritePayload_CompoundOrder(t *testing.T) {
	// Compound entry order is load-bearing for the output bytes.
	a := Compound(Entry("a", Byte(1)), Entry("b", Byte(2)))
	b := Compound(Entry("b", Byte(2)), Entry("a", Byte(1)))

	var bufA, bufB bytes.Buffer
	if err := WritePayload(&bufA, a); err != nil {
		t.Fatal(err)
	}
	if err := WritePayload(&bufB, b); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
		t.Error("different entry orders must encode to different bytes")
	}
	if !a.Equal(b) {
		t.Error("different entry orders must still compare equal by value")
	}
}

// ============================================================
// Round Trips
// ============================================================

func testTree() *Tag {
	return Compound(
		Entry("byte", Byte(127)),
		Entry("short", Short(32767)),
		Entry("int", Int(2147483647)),
		Entry("long", Long(-9223372036854775808)),
		Entry("float", Float(1.5)),
		Entry("double", Double(-0.25)),
		Entry("string", String("with é, \x00 and \U0001F600")),
		Entry("bytes", ByteArray([]byte{0, 1, 2, 255})),
		Entry("ints", IntArray([]int32{-1, 0, 1})),
		Entry("longs", LongArray([]int64{-1, 0, 1})),
		Entry("list", List(String("A"), String("B"), String("C"))),
		Entry("empty_list", List()),
		Entry("nested", Compound(
			Entry("key", String("value")),
			Entry("deeper", Compound(Entry("n", Int(7)))),
		)),
	)
}

func TestRoundTrip_Tree(t *testing.T) {
	root := testTree()

	var buf bytes.Buffer
	if err := WriteNamedTag(&buf, "Level", root); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	doc, rest, err := ParseNamedTag(buf.Bytes())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if doc.Name != "Level" {
		t.Errorf("name = %q, want %q", doc.Name, "Level")
	}
	if !doc.Tag.Equal(root) {
		t.Errorf("round trip mismatch:\n got: %s\nwant: %s", FormatSNBT(doc.Tag), FormatSNBT(root))
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining bytes, got %d", len(rest))
	}
}

func TestRoundTrip_BytesExact(t *testing.T) {
	// Encoding is deterministic: decode then re-encode reproduces the bytes.
	var buf bytes.Buffer
	if err := WriteNamedTag(&buf, "root", testTree()); err != nil {
		t.Fatal(err)
	}
	first := append([]byte(nil), buf.Bytes()...)

	doc, _, err := ParseNamedTag(first)
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := WriteNamedTag(&buf, doc.Name, doc.Tag); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), first) {
		t.Error("re-encode did not reproduce original bytes")
	}
}

func TestRoundTrip_FloatBits(t *testing.T) {
	// Floats travel as bit patterns, not host conversions.
	tests := []*Tag{
		Float(0), Float(-0), Float(1e-45), Float(3.4e38),
		Double(0), Double(5e-324), Double(1.7976931348623157e308),
	}
	for _, tag := range tests {
		var buf bytes.Buffer
		if err := WritePayload(&buf, tag); err != nil {
			t.Fatal(err)
		}
		got, _, err := ParsePayload(buf.Bytes(), tag.Type())
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(tag) {
			t.Errorf("float round trip mismatch for %s", FormatSNBT(tag))
		}
	}
}

// ============================================================
// Gzip-Wrapped Documents
// ============================================================

func TestDecode_GzipWrapped(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeGzip(&buf, "Level", testTree()); err != nil {
		t.Fatalf("EncodeGzip failed: %v", err)
	}
	if b := buf.Bytes(); b[0] != 0x1f || b[1] != 0x8b {
		t.Fatal("expected gzip magic")
	}

	doc, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if doc.Name != "Level" || !doc.Tag.Equal(testTree()) {
		t.Error("gzip round trip mismatch")
	}
}

func TestDecode_Raw(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNamedTag(&buf, "raw", Int(5)); err != nil {
		t.Fatal(err)
	}
	doc, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if doc.Name != "raw" {
		t.Errorf("name = %q", doc.Name)
	}
}
