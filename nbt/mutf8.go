package nbt

import (
	"fmt"
	"unicode/utf16"
)

// MUTF8Error is returned when Modified UTF-8 decoding fails.
type MUTF8Error struct {
	Reason string
	Offset int // byte offset of the offending sequence
}

func (e *MUTF8Error) Error() string {
	return fmt.Sprintf("nbt: invalid MUTF-8 at offset %d: %s", e.Offset, e.Reason)
}

// DecodeMUTF8 decodes a Modified UTF-8 (MUTF-8) byte slice into a string.
//
// MUTF-8 is the string encoding used by NBT (inherited from Java). It differs
// from standard UTF-8 in two ways: NUL is encoded as the two-byte sequence
// 0xC0 0x80, and supplementary characters are encoded as UTF-16 surrogate
// pairs, each half as an independent 3-byte sequence (6 bytes total).
//
// The decoder first accumulates UTF-16 code units and then converts the unit
// sequence to a string, so surrogate combination is uniform regardless of how
// the halves were emitted. It fails on truncated sequences, bad continuation
// bytes, lead bytes ≥ 0xF0, and unpaired surrogates.
func DecodeMUTF8(data []byte) (string, error) {
	if asciiOnly(data) {
		// Byte-identical to standard UTF-8 for this subset.
		return string(data), nil
	}

	units := make([]uint16, 0, len(data))
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b < 0x80:
			units = append(units, uint16(b))
			i++
		case b&0xE0 == 0xC0:
			if i+1 >= len(data) {
				return "", &MUTF8Error{Reason: "truncated 2-byte sequence", Offset: i}
			}
			b2 := data[i+1]
			if b2&0xC0 != 0x80 {
				return "", &MUTF8Error{Reason: "bad continuation in 2-byte sequence", Offset: i}
			}
			units = append(units, uint16(b&0x1F)<<6|uint16(b2&0x3F))
			i += 2
		case b&0xF0 == 0xE0:
			if i+2 >= len(data) {
				return "", &MUTF8Error{Reason: "truncated 3-byte sequence", Offset: i}
			}
			b2, b3 := data[i+1], data[i+2]
			if b2&0xC0 != 0x80 || b3&0xC0 != 0x80 {
				return "", &MUTF8Error{Reason: "bad continuation in 3-byte sequence", Offset: i}
			}
			units = append(units, uint16(b&0x0F)<<12|uint16(b2&0x3F)<<6|uint16(b3&0x3F))
			i += 3
		default:
			return "", &MUTF8Error{Reason: fmt.Sprintf("invalid lead byte 0x%02X", b), Offset: i}
		}
	}

	if err := validateUTF16(units, len(data)); err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

// validateUTF16 rejects unit sequences containing unpaired surrogates, which
// utf16.Decode would otherwise silently replace with U+FFFD.
func validateUTF16(units []uint16, byteLen int) error {
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return &MUTF8Error{Reason: "unpaired high surrogate", Offset: byteLen}
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return &MUTF8Error{Reason: "unpaired low surrogate", Offset: byteLen}
		}
	}
	return nil
}

// EncodeMUTF8 encodes a string into Modified UTF-8 bytes. It always succeeds
// for well-formed strings.
func EncodeMUTF8(s string) []byte {
	if asciiOnlyString(s) {
		return []byte(s)
	}

	out := make([]byte, 0, len(s)+len(s)/2)
	for _, r := range s {
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			out = appendUnit(out, uint16(hi))
			out = appendUnit(out, uint16(lo))
			continue
		}
		out = appendUnit(out, uint16(r))
	}
	return out
}

func appendUnit(out []byte, u uint16) []byte {
	switch {
	case u == 0:
		return append(out, 0xC0, 0x80)
	case u < 0x80:
		return append(out, byte(u))
	case u < 0x800:
		return append(out, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
	default:
		return append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
	}
}

// asciiOnly reports whether every byte is printable ASCII (0x01–0x7F), the
// subset on which MUTF-8 and UTF-8 coincide byte for byte.
func asciiOnly(data []byte) bool {
	for _, b := range data {
		if b == 0 || b >= 0x80 {
			return false
		}
	}
	return true
}

func asciiOnlyString(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 || s[i] >= 0x80 {
			return false
		}
	}
	return true
}
