package region

import (
	"fmt"

	"github.com/Neumenon/anvil/internal/mmap"
	"github.com/Neumenon/anvil/nbt"
)

// Region is a read-only view of one region file. The backing bytes are owned
// by the Region for its lifetime; decompressed chunk payloads returned to the
// caller are independent copies. A Region is safe for concurrent readers.
type Region struct {
	data   []byte
	header RegionHeader
	mm     *mmap.File // nil when opened from bytes
}

// Open memory-maps the region file at path and parses both header sectors
// eagerly. No chunk payload is touched. The caller must Close the Region to
// release the mapping.
func Open(path string) (*Region, error) {
	mm, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := OpenBytes(mm.Data)
	if err != nil {
		mm.Close()
		return nil, err
	}
	r.mm = mm
	return r, nil
}

// OpenBytes builds a Region over bytes the caller already holds. The Region
// borrows data; it must not be mutated while the Region is in use.
func OpenBytes(data []byte) (*Region, error) {
	if len(data) < HeaderSize {
		return nil, &FormatError{Reason: fmt.Sprintf("file too small for headers: %d bytes", len(data))}
	}

	r := &Region{data: data}
	for i := 0; i < 1024; i++ {
		off := i * 4
		r.header.Locations[i] = ChunkLocation{
			Offset:  uint32(data[off])<<16 | uint32(data[off+1])<<8 | uint32(data[off+2]),
			Sectors: data[off+3],
		}
	}
	for i := 0; i < 1024; i++ {
		off := SectorSize + i*4
		r.header.Timestamps[i] = uint32(data[off])<<24 | uint32(data[off+1])<<16 |
			uint32(data[off+2])<<8 | uint32(data[off+3])
	}
	return r, nil
}

// Close releases the memory mapping, if any. Chunk data previously returned
// by ChunkData remains valid (it is copied), but the Region must not be used
// after Close.
func (r *Region) Close() error {
	if r.mm == nil {
		return nil
	}
	mm := r.mm
	r.mm = nil
	r.data = nil
	return mm.Close()
}

// Location returns the header location entry for the chunk coordinates.
func (r *Region) Location(x, z int32) ChunkLocation {
	return r.header.Locations[SlotFor(x, z)]
}

// Timestamp returns the header modification timestamp for the coordinates.
func (r *Region) Timestamp(x, z int32) uint32 {
	return r.header.Timestamps[SlotFor(x, z)]
}

// ChunkData returns the decompressed payload of the chunk at (x, z), or
// (nil, nil) when the chunk is absent. The returned slice is an owned copy.
func (r *Region) ChunkData(x, z int32) ([]byte, error) {
	loc := r.header.Locations[SlotFor(x, z)]
	if loc.Offset == 0 {
		return nil, nil
	}

	start := int(loc.Offset) * SectorSize
	if start+5 > len(r.data) {
		return nil, &FormatError{Reason: fmt.Sprintf("chunk offset %d outside file", loc.Offset)}
	}

	length := uint32(r.data[start])<<24 | uint32(r.data[start+1])<<16 |
		uint32(r.data[start+2])<<8 | uint32(r.data[start+3])
	if length < 1 {
		// A zero-length record is an absent chunk, not an error.
		return nil, nil
	}

	end := start + 4 + int(length)
	if end > len(r.data) {
		return nil, &FormatError{Reason: fmt.Sprintf("chunk record at sector %d truncated", loc.Offset)}
	}

	ctype := CompressionType(r.data[start+4])
	if !ctype.valid() {
		return nil, &InvalidCompressionError{Type: byte(ctype)}
	}

	// Payload is length-1 bytes: the length field counts the type byte.
	return decompress(ctype, r.data[start+5:end])
}

// ChunkTag returns the parsed NBT document of the chunk at (x, z), or
// (nil, nil) when the chunk is absent. Malformed NBT inside a present chunk
// is an error, distinct from absence.
func (r *Region) ChunkTag(x, z int32) (*nbt.NamedTag, error) {
	data, err := r.ChunkData(x, z)
	if err != nil || data == nil {
		return nil, err
	}
	doc, _, err := nbt.ParseNamedTag(data)
	if err != nil {
		return nil, fmt.Errorf("region: chunk (%d, %d): %w", x, z, err)
	}
	return doc, nil
}
