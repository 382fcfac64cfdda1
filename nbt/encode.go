package nbt

import (
	"encoding/binary"
	"io"
	"math"
)

// WriteNamedTag writes one top-level document (type id, name, payload) to w.
// It is the structural mirror of ParseNamedTag.
func WriteNamedTag(w io.Writer, name string, tag *Tag) error {
	if err := writeByte(w, byte(tag.Type())); err != nil {
		return err
	}
	if tag.Type() == TypeEnd {
		// The empty document is a single zero byte.
		return nil
	}
	if err := writeString(w, name); err != nil {
		return err
	}
	return WritePayload(w, tag)
}

// WritePayload writes the payload of a tag (no type id, no name) to w.
func WritePayload(w io.Writer, tag *Tag) error {
	switch tag.Type() {
	case TypeEnd:
		return nil

	case TypeByte:
		return writeByte(w, byte(tag.intVal))

	case TypeShort:
		return writeU16(w, uint16(tag.intVal))

	case TypeInt:
		return writeU32(w, uint32(tag.intVal))

	case TypeLong:
		return writeU64(w, uint64(tag.intVal))

	case TypeFloat:
		return writeU32(w, math.Float32bits(float32(tag.floatVal)))

	case TypeDouble:
		return writeU64(w, math.Float64bits(tag.floatVal))

	case TypeByteArray:
		if err := writeU32(w, uint32(len(tag.byteArr))); err != nil {
			return err
		}
		_, err := w.Write(tag.byteArr)
		return err

	case TypeString:
		return writeString(w, tag.strVal)

	case TypeList:
		// The element type is taken from the first element; an empty list is
		// written with element type End and count zero. Heterogeneous lists
		// are a caller error and are not detected.
		elem := TypeEnd
		if len(tag.listVal) > 0 {
			elem = tag.listVal[0].Type()
		}
		if err := writeByte(w, byte(elem)); err != nil {
			return err
		}
		if err := writeU32(w, uint32(len(tag.listVal))); err != nil {
			return err
		}
		for _, e := range tag.listVal {
			if err := WritePayload(w, e); err != nil {
				return err
			}
		}
		return nil

	case TypeCompound:
		for _, e := range tag.compoundVal {
			if err := writeByte(w, byte(e.Tag.Type())); err != nil {
				return err
			}
			if err := writeString(w, e.Name); err != nil {
				return err
			}
			if err := WritePayload(w, e.Tag); err != nil {
				return err
			}
		}
		return writeByte(w, 0)

	case TypeIntArray:
		if err := writeU32(w, uint32(len(tag.intArr))); err != nil {
			return err
		}
		for _, v := range tag.intArr {
			if err := writeU32(w, uint32(v)); err != nil {
				return err
			}
		}
		return nil

	case TypeLongArray:
		if err := writeU32(w, uint32(len(tag.longArr))); err != nil {
			return err
		}
		for _, v := range tag.longArr {
			if err := writeU64(w, uint64(v)); err != nil {
				return err
			}
		}
		return nil

	default:
		return &InvalidTagError{ID: byte(tag.Type())}
	}
}

// writeString writes a 16-bit length prefix followed by MUTF-8 bytes.
func writeString(w io.Writer, s string) error {
	raw := EncodeMUTF8(s)
	if err := writeU16(w, uint16(len(raw))); err != nil {
		return err
	}
	_, err := w.Write(raw)
	return err
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}
