package nbt

import "fmt"

// TagType identifies an NBT tag variant. The numeric value is the type id
// serialized on the wire.
type TagType uint8

const (
	TypeEnd TagType = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeString
	TypeList
	TypeCompound
	TypeIntArray
	TypeLongArray
)

// maxTagType is the highest valid type id.
const maxTagType = TypeLongArray

// String returns the tag type name.
func (t TagType) String() string {
	switch t {
	case TypeEnd:
		return "end"
	case TypeByte:
		return "byte"
	case TypeShort:
		return "short"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeByteArray:
		return "byte_array"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeCompound:
		return "compound"
	case TypeIntArray:
		return "int_array"
	case TypeLongArray:
		return "long_array"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Tag represents one node of an NBT tree.
type Tag struct {
	typ TagType

	// Scalar values (only one valid based on typ). Byte/Short/Int/Long all
	// share intVal; Float/Double share floatVal.
	intVal   int64
	floatVal float64
	strVal   string

	// Array values
	byteArr []byte
	intArr  []int32
	longArr []int64

	// Container values
	listVal     []*Tag
	compoundVal []CompoundEntry
}

// CompoundEntry is one name→tag pair of a compound. Entry order is preserved
// and serialized; a compound is not an unordered map.
type CompoundEntry struct {
	Name string
	Tag  *Tag
}

// NamedTag is a top-level (name, tag) document.
type NamedTag struct {
	Name string
	Tag  *Tag
}

// ============================================================
// Constructors
// ============================================================

// End creates the end marker tag.
func End() *Tag {
	return &Tag{typ: TypeEnd}
}

// Byte creates a byte tag.
func Byte(v int8) *Tag {
	return &Tag{typ: TypeByte, intVal: int64(v)}
}

// Short creates a short tag.
func Short(v int16) *Tag {
	return &Tag{typ: TypeShort, intVal: int64(v)}
}

// Int creates an int tag.
func Int(v int32) *Tag {
	return &Tag{typ: TypeInt, intVal: int64(v)}
}

// Long creates a long tag.
func Long(v int64) *Tag {
	return &Tag{typ: TypeLong, intVal: v}
}

// Float creates a float tag.
func Float(v float32) *Tag {
	return &Tag{typ: TypeFloat, floatVal: float64(v)}
}

// Double creates a double tag.
func Double(v float64) *Tag {
	return &Tag{typ: TypeDouble, floatVal: v}
}

// ByteArray creates a byte array tag.
func ByteArray(v []byte) *Tag {
	return &Tag{typ: TypeByteArray, byteArr: v}
}

// String creates a string tag.
func String(v string) *Tag {
	return &Tag{typ: TypeString, strVal: v}
}

// List creates a list tag. All elements must share one tag type; the encoder
// uses the first element's type for the whole list and does not detect
// heterogeneous lists.
func List(elements ...*Tag) *Tag {
	return &Tag{typ: TypeList, listVal: elements}
}

// Compound creates a compound tag from entries in the given order.
func Compound(entries ...CompoundEntry) *Tag {
	return &Tag{typ: TypeCompound, compoundVal: entries}
}

// IntArray creates an int array tag.
func IntArray(v []int32) *Tag {
	return &Tag{typ: TypeIntArray, intArr: v}
}

// LongArray creates a long array tag.
func LongArray(v []int64) *Tag {
	return &Tag{typ: TypeLongArray, longArr: v}
}

// Entry creates a CompoundEntry for use in Compound construction.
func Entry(name string, tag *Tag) CompoundEntry {
	return CompoundEntry{Name: name, Tag: tag}
}

// ============================================================
// Accessors
// ============================================================

// Type returns the tag type.
func (t *Tag) Type() TagType {
	if t == nil {
		return TypeEnd
	}
	return t.typ
}

// AsByte returns the byte value.
func (t *Tag) AsByte() (int8, error) {
	if err := t.check(TypeByte); err != nil {
		return 0, err
	}
	return int8(t.intVal), nil
}

// AsShort returns the short value.
func (t *Tag) AsShort() (int16, error) {
	if err := t.check(TypeShort); err != nil {
		return 0, err
	}
	return int16(t.intVal), nil
}

// AsInt returns the int value.
func (t *Tag) AsInt() (int32, error) {
	if err := t.check(TypeInt); err != nil {
		return 0, err
	}
	return int32(t.intVal), nil
}

// AsLong returns the long value.
func (t *Tag) AsLong() (int64, error) {
	if err := t.check(TypeLong); err != nil {
		return 0, err
	}
	return t.intVal, nil
}

// AsFloat returns the float value.
func (t *Tag) AsFloat() (float32, error) {
	if err := t.check(TypeFloat); err != nil {
		return 0, err
	}
	return float32(t.floatVal), nil
}

// AsDouble returns the double value.
func (t *Tag) AsDouble() (float64, error) {
	if err := t.check(TypeDouble); err != nil {
		return 0, err
	}
	return t.floatVal, nil
}

// AsByteArray returns the byte array value.
func (t *Tag) AsByteArray() ([]byte, error) {
	if err := t.check(TypeByteArray); err != nil {
		return nil, err
	}
	return t.byteArr, nil
}

// AsString returns the string value.
func (t *Tag) AsString() (string, error) {
	if err := t.check(TypeString); err != nil {
		return "", err
	}
	return t.strVal, nil
}

// AsList returns the list elements.
func (t *Tag) AsList() ([]*Tag, error) {
	if err := t.check(TypeList); err != nil {
		return nil, err
	}
	return t.listVal, nil
}

// AsCompound returns the compound entries in insertion order.
func (t *Tag) AsCompound() ([]CompoundEntry, error) {
	if err := t.check(TypeCompound); err != nil {
		return nil, err
	}
	return t.compoundVal, nil
}

// AsIntArray returns the int array value.
func (t *Tag) AsIntArray() ([]int32, error) {
	if err := t.check(TypeIntArray); err != nil {
		return nil, err
	}
	return t.intArr, nil
}

// AsLongArray returns the long array value.
func (t *Tag) AsLongArray() ([]int64, error) {
	if err := t.check(TypeLongArray); err != nil {
		return nil, err
	}
	return t.longArr, nil
}

func (t *Tag) check(want TagType) error {
	if t == nil {
		return fmt.Errorf("nbt: nil tag")
	}
	if t.typ != want {
		return fmt.Errorf("nbt: expected %s, got %s", want, t.typ)
	}
	return nil
}

// Len returns the element count of a list, compound, or array tag.
func (t *Tag) Len() int {
	if t == nil {
		return 0
	}
	switch t.typ {
	case TypeList:
		return len(t.listVal)
	case TypeCompound:
		return len(t.compoundVal)
	case TypeByteArray:
		return len(t.byteArr)
	case TypeIntArray:
		return len(t.intArr)
	case TypeLongArray:
		return len(t.longArr)
	default:
		return 0
	}
}

// Get returns the named entry of a compound, or nil if absent (or if t is
// not a compound). When a name occurs more than once the first entry wins.
func (t *Tag) Get(name string) *Tag {
	if t == nil || t.typ != TypeCompound {
		return nil
	}
	for _, e := range t.compoundVal {
		if e.Name == name {
			return e.Tag
		}
	}
	return nil
}

// Index returns the i-th element of a list.
func (t *Tag) Index(i int) (*Tag, error) {
	if t == nil || t.typ != TypeList {
		return nil, fmt.Errorf("nbt: not a list")
	}
	if i < 0 || i >= len(t.listVal) {
		return nil, fmt.Errorf("nbt: index %d out of bounds (len=%d)", i, len(t.listVal))
	}
	return t.listVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set sets or replaces a named entry on a compound, preserving the position
// of an existing entry and appending new ones.
func (t *Tag) Set(name string, tag *Tag) {
	if t.typ != TypeCompound {
		panic("nbt: cannot set on non-compound")
	}
	for i := range t.compoundVal {
		if t.compoundVal[i].Name == name {
			t.compoundVal[i].Tag = tag
			return
		}
	}
	t.compoundVal = append(t.compoundVal, CompoundEntry{Name: name, Tag: tag})
}

// Append adds an element to a list.
func (t *Tag) Append(tag *Tag) {
	if t.typ != TypeList {
		panic("nbt: cannot append to non-list")
	}
	t.listVal = append(t.listVal, tag)
}

// ============================================================
// Equality
// ============================================================

// Equal reports whether two tags hold the same value. Compound comparison is
// order-insensitive: two compounds with the same entries in a different order
// are equal, even though they encode to different bytes. Float comparison is
// bit-exact (NaN equals NaN with the same bit pattern is not required; NaN
// compares unequal as in Go).
func (t *Tag) Equal(o *Tag) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.typ != o.typ {
		return false
	}
	switch t.typ {
	case TypeEnd:
		return true
	case TypeByte, TypeShort, TypeInt, TypeLong:
		return t.intVal == o.intVal
	case TypeFloat, TypeDouble:
		return t.floatVal == o.floatVal
	case TypeString:
		return t.strVal == o.strVal
	case TypeByteArray:
		if len(t.byteArr) != len(o.byteArr) {
			return false
		}
		for i := range t.byteArr {
			if t.byteArr[i] != o.byteArr[i] {
				return false
			}
		}
		return true
	case TypeIntArray:
		if len(t.intArr) != len(o.intArr) {
			return false
		}
		for i := range t.intArr {
			if t.intArr[i] != o.intArr[i] {
				return false
			}
		}
		return true
	case TypeLongArray:
		if len(t.longArr) != len(o.longArr) {
			return false
		}
		for i := range t.longArr {
			if t.longArr[i] != o.longArr[i] {
				return false
			}
		}
		return true
	case TypeList:
		if len(t.listVal) != len(o.listVal) {
			return false
		}
		for i := range t.listVal {
			if !t.listVal[i].Equal(o.listVal[i]) {
				return false
			}
		}
		return true
	case TypeCompound:
		if len(t.compoundVal) != len(o.compoundVal) {
			return false
		}
		for _, e := range t.compoundVal {
			other := o.Get(e.Name)
			if other == nil || !e.Tag.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
