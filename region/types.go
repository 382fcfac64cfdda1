package region

import "fmt"

// SectorSize is the fixed allocation unit of a region file.
const SectorSize = 4096

// HeaderSize is the combined size of the two header sectors.
const HeaderSize = 2 * SectorSize

// MaxChunkSize is the largest on-disk chunk record a region file can
// address: the sector count is an 8-bit field, and 4 bytes of each record
// are the length prefix.
const MaxChunkSize = 255*SectorSize - 4

// ChunkLocation addresses one chunk's byte range within the file.
// Offset zero means the chunk is absent.
type ChunkLocation struct {
	// Offset is the chunk record's position in sectors from the start of the
	// file. Stored on disk as a 24-bit big-endian field.
	Offset uint32

	// Sectors is the number of sectors allocated for the record.
	Sectors uint8
}

// Present reports whether the location addresses a stored chunk.
func (l ChunkLocation) Present() bool {
	return l.Offset != 0 && l.Sectors != 0
}

// RegionHeader holds the two fixed-size header tables, indexed by slot.
type RegionHeader struct {
	Locations  [1024]ChunkLocation
	Timestamps [1024]uint32
}

// CompressionType identifies the per-chunk compression scheme.
type CompressionType uint8

const (
	// Gzip compression (standard for .dat files, rare in .mca).
	Gzip CompressionType = 1
	// Zlib compression (standard for .mca chunks).
	Zlib CompressionType = 2
	// Uncompressed payload.
	Uncompressed CompressionType = 3
)

// String returns the compression type name.
func (c CompressionType) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Uncompressed:
		return "uncompressed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// valid reports whether c is a supported compression type.
func (c CompressionType) valid() bool {
	return c == Gzip || c == Zlib || c == Uncompressed
}

// InvalidCompressionError is returned when a chunk record carries an unknown
// compression type byte.
type InvalidCompressionError struct {
	Type byte
}

func (e *InvalidCompressionError) Error() string {
	return fmt.Sprintf("region: unknown compression type %d", e.Type)
}

// FormatError is returned when the container's structure is corrupt: a file
// too small for its headers, or a length/offset field pointing outside it.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "region: " + e.Reason
}

// SlotFor maps chunk coordinates to a header slot in 0..1023. Coordinates
// wrap with floor modulo, so negative coordinates index from the top:
// (-1, -1) shares a slot with (31, 31).
func SlotFor(x, z int32) int {
	relX := ((x % 32) + 32) % 32
	relZ := ((z % 32) + 32) % 32
	return int(relZ*32 + relX)
}
