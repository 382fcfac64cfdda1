package nbt

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnexpectedEOF is returned when the input ends before a tag or field
// could be fully read, or when a length field exceeds the remaining input.
var ErrUnexpectedEOF = errors.New("nbt: unexpected end of input")

// InvalidTagError is returned when an unknown type id is encountered.
type InvalidTagError struct {
	ID byte
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("nbt: invalid tag type id %d", e.ID)
}

// DepthError is returned when a tag tree nests deeper than the configured
// maximum. It bounds stack usage on adversarial input.
type DepthError struct {
	MaxDepth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("nbt: nesting exceeds maximum depth %d", e.MaxDepth)
}

// DefaultMaxDepth is the parser's default nesting limit.
const DefaultMaxDepth = 512

// ParseOption configures the parser.
type ParseOption func(*parser)

// WithMaxDepth sets the maximum nesting depth (default: DefaultMaxDepth).
func WithMaxDepth(depth int) ParseOption {
	return func(p *parser) {
		p.maxDepth = depth
	}
}

// parser maintains a cursor over a byte slice.
type parser struct {
	data     []byte
	pos      int
	maxDepth int
}

func newParser(data []byte, opts []ParseOption) *parser {
	p := &parser{data: data, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseNamedTag parses one top-level document (type id, name, payload) from
// the start of data. It returns the document and the bytes remaining after
// it, so repeated calls can read concatenated documents. A leading zero type
// id yields the empty document ("", End) without consuming further input.
func ParseNamedTag(data []byte, opts ...ParseOption) (*NamedTag, []byte, error) {
	p := newParser(data, opts)
	doc, err := p.parseNamedTag()
	if err != nil {
		return nil, nil, err
	}
	return doc, p.data[p.pos:], nil
}

// ParsePayload parses a single payload of the given type from the start of
// data, returning the tag and the remaining bytes.
func ParsePayload(data []byte, typ TagType, opts ...ParseOption) (*Tag, []byte, error) {
	p := newParser(data, opts)
	tag, err := p.parsePayload(typ, 0)
	if err != nil {
		return nil, nil, err
	}
	return tag, p.data[p.pos:], nil
}

func (p *parser) parseNamedTag() (*NamedTag, error) {
	id, err := p.readU8()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return &NamedTag{Name: "", Tag: End()}, nil
	}
	if TagType(id) > maxTagType {
		return nil, &InvalidTagError{ID: id}
	}
	name, err := p.readString()
	if err != nil {
		return nil, err
	}
	payload, err := p.parsePayload(TagType(id), 0)
	if err != nil {
		return nil, err
	}
	return &NamedTag{Name: name, Tag: payload}, nil
}

func (p *parser) parsePayload(typ TagType, depth int) (*Tag, error) {
	if depth > p.maxDepth {
		return nil, &DepthError{MaxDepth: p.maxDepth}
	}

	switch typ {
	case TypeEnd:
		return End(), nil

	case TypeByte:
		v, err := p.readU8()
		if err != nil {
			return nil, err
		}
		return Byte(int8(v)), nil

	case TypeShort:
		v, err := p.readU16()
		if err != nil {
			return nil, err
		}
		return Short(int16(v)), nil

	case TypeInt:
		v, err := p.readU32()
		if err != nil {
			return nil, err
		}
		return Int(int32(v)), nil

	case TypeLong:
		v, err := p.readU64()
		if err != nil {
			return nil, err
		}
		return Long(int64(v)), nil

	case TypeFloat:
		v, err := p.readU32()
		if err != nil {
			return nil, err
		}
		return Float(math.Float32frombits(v)), nil

	case TypeDouble:
		v, err := p.readU64()
		if err != nil {
			return nil, err
		}
		return Double(math.Float64frombits(v)), nil

	case TypeByteArray:
		n, err := p.readCount(1)
		if err != nil {
			return nil, err
		}
		raw, err := p.readBytes(n)
		if err != nil {
			return nil, err
		}
		arr := make([]byte, n)
		copy(arr, raw)
		return ByteArray(arr), nil

	case TypeString:
		s, err := p.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case TypeList:
		elem, err := p.readU8()
		if err != nil {
			return nil, err
		}
		if TagType(elem) > maxTagType {
			return nil, &InvalidTagError{ID: elem}
		}
		n, err := p.readCount(1)
		if err != nil {
			return nil, err
		}
		elements := make([]*Tag, 0, min(n, 1024))
		for i := 0; i < n; i++ {
			t, err := p.parsePayload(TagType(elem), depth+1)
			if err != nil {
				return nil, err
			}
			elements = append(elements, t)
		}
		return List(elements...), nil

	case TypeCompound:
		var entries []CompoundEntry
		for {
			id, err := p.readU8()
			if err != nil {
				return nil, err
			}
			if id == 0 {
				break
			}
			if TagType(id) > maxTagType {
				return nil, &InvalidTagError{ID: id}
			}
			name, err := p.readString()
			if err != nil {
				return nil, err
			}
			payload, err := p.parsePayload(TagType(id), depth+1)
			if err != nil {
				return nil, err
			}
			entries = append(entries, CompoundEntry{Name: name, Tag: payload})
		}
		return Compound(entries...), nil

	case TypeIntArray:
		n, err := p.readCount(4)
		if err != nil {
			return nil, err
		}
		arr := make([]int32, n)
		for i := range arr {
			v, err := p.readU32()
			if err != nil {
				return nil, err
			}
			arr[i] = int32(v)
		}
		return IntArray(arr), nil

	case TypeLongArray:
		n, err := p.readCount(8)
		if err != nil {
			return nil, err
		}
		arr := make([]int64, n)
		for i := range arr {
			v, err := p.readU64()
			if err != nil {
				return nil, err
			}
			arr[i] = int64(v)
		}
		return LongArray(arr), nil

	default:
		return nil, &InvalidTagError{ID: byte(typ)}
	}
}

// readString reads a 16-bit length prefix followed by that many MUTF-8 bytes.
func (p *parser) readString() (string, error) {
	n, err := p.readU16()
	if err != nil {
		return "", err
	}
	raw, err := p.readBytes(int(n))
	if err != nil {
		return "", err
	}
	return DecodeMUTF8(raw)
}

// readCount reads a 32-bit signed element count and rejects it before any
// allocation if it is negative or cannot fit in the remaining input at the
// given element width. Truncated or corrupt counts therefore surface as
// ErrUnexpectedEOF instead of a huge allocation.
func (p *parser) readCount(width int) (int, error) {
	v, err := p.readU32()
	if err != nil {
		return 0, err
	}
	n := int(int32(v))
	if n < 0 || n > (len(p.data)-p.pos)/width {
		return 0, ErrUnexpectedEOF
	}
	return n, nil
}

func (p *parser) readU8() (byte, error) {
	if p.pos >= len(p.data) {
		return 0, ErrUnexpectedEOF
	}
	b := p.data[p.pos]
	p.pos++
	return b, nil
}

func (p *parser) readU16() (uint16, error) {
	if len(p.data)-p.pos < 2 {
		return 0, ErrUnexpectedEOF
	}
	v := uint16(p.data[p.pos])<<8 | uint16(p.data[p.pos+1])
	p.pos += 2
	return v, nil
}

func (p *parser) readU32() (uint32, error) {
	if len(p.data)-p.pos < 4 {
		return 0, ErrUnexpectedEOF
	}
	d := p.data[p.pos:]
	v := uint32(d[0])<<24 | uint32(d[1])<<16 | uint32(d[2])<<8 | uint32(d[3])
	p.pos += 4
	return v, nil
}

func (p *parser) readU64() (uint64, error) {
	if len(p.data)-p.pos < 8 {
		return 0, ErrUnexpectedEOF
	}
	d := p.data[p.pos:]
	v := uint64(d[0])<<56 | uint64(d[1])<<48 | uint64(d[2])<<40 | uint64(d[3])<<32 |
		uint64(d[4])<<24 | uint64(d[5])<<16 | uint64(d[6])<<8 | uint64(d[7])
	p.pos += 8
	return v, nil
}

// readBytes returns a view into the input; callers that retain the bytes
// must copy them.
func (p *parser) readBytes(n int) ([]byte, error) {
	if n < 0 || len(p.data)-p.pos < n {
		return nil, ErrUnexpectedEOF
	}
	b := p.data[p.pos : p.pos+n]
	p.pos += n
	return b, nil
}
