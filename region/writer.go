package region

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Neumenon/anvil/nbt"
)

// Chunk is one coordinate-addressed document to be written into a region.
type Chunk struct {
	X, Z int32

	// Name and Tag form the chunk's top-level NBT document.
	Name string
	Tag  *nbt.Tag

	// Timestamp is recorded in the header's timestamp table. Zero leaves the
	// slot unmarked.
	Timestamp uint32
}

// ChunkTooLargeError is returned when a chunk's compressed record cannot be
// addressed by the 8-bit sector count field.
type ChunkTooLargeError struct {
	X, Z int32
	Size int // compressed record size in bytes, including the type byte
}

func (e *ChunkTooLargeError) Error() string {
	return fmt.Sprintf("region: chunk (%d, %d) too large: %d bytes exceeds %d",
		e.X, e.Z, e.Size, MaxChunkSize)
}

// Writer lays out a complete region file on an io.WriteSeeker. It writes
// data sectors first and back-patches the two header sectors last, so it
// requires exclusive ownership of the output stream for the duration of one
// WriteAllChunks call.
type Writer struct {
	w     io.WriteSeeker
	ctype CompressionType
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompression selects the per-chunk compression scheme (default: Zlib).
func WithCompression(c CompressionType) WriterOption {
	return func(w *Writer) {
		w.ctype = c
	}
}

// NewWriter creates a region writer over w.
func NewWriter(w io.WriteSeeker, opts ...WriterOption) *Writer {
	rw := &Writer{w: w, ctype: Zlib}
	for _, opt := range opts {
		opt(rw)
	}
	return rw
}

// WriteAllChunks writes every chunk, in the given order, into a fresh region
// layout: data sectors from index 2 onward, each record padded to a sector
// boundary, then the location and timestamp tables. Coordinates never
// written stay absent (ChunkLocation{0, 0}, timestamp 0). When two chunks
// map to the same slot the later one wins the header entry and the earlier
// record becomes dead sectors.
func (w *Writer) WriteAllChunks(chunks []Chunk) error {
	if !w.ctype.valid() {
		return &InvalidCompressionError{Type: byte(w.ctype)}
	}

	var header RegionHeader

	if _, err := w.w.Seek(HeaderSize, io.SeekStart); err != nil {
		return err
	}
	currentSector := uint32(2)

	var raw bytes.Buffer
	for _, c := range chunks {
		raw.Reset()
		if err := nbt.WriteNamedTag(&raw, c.Name, c.Tag); err != nil {
			return err
		}
		compressed, err := compress(w.ctype, raw.Bytes())
		if err != nil {
			return err
		}

		totalLen := len(compressed) + 1 // +1 for the compression type byte
		if totalLen > MaxChunkSize {
			return &ChunkTooLargeError{X: c.X, Z: c.Z, Size: totalLen}
		}
		sectorsNeeded := (totalLen + 4 + SectorSize - 1) / SectorSize

		if currentSector > 0xFFFFFF {
			return &FormatError{Reason: "region full: sector offset exceeds 24 bits"}
		}

		if _, err := w.w.Seek(int64(currentSector)*SectorSize, io.SeekStart); err != nil {
			return err
		}
		var prefix [5]byte
		prefix[0] = byte(totalLen >> 24)
		prefix[1] = byte(totalLen >> 16)
		prefix[2] = byte(totalLen >> 8)
		prefix[3] = byte(totalLen)
		prefix[4] = byte(w.ctype)
		if _, err := w.w.Write(prefix[:]); err != nil {
			return err
		}
		if _, err := w.w.Write(compressed); err != nil {
			return err
		}
		if padding := sectorsNeeded*SectorSize - (totalLen + 4); padding > 0 {
			if _, err := w.w.Write(make([]byte, padding)); err != nil {
				return err
			}
		}

		slot := SlotFor(c.X, c.Z)
		header.Locations[slot] = ChunkLocation{
			Offset:  currentSector,
			Sectors: uint8(sectorsNeeded),
		}
		header.Timestamps[slot] = c.Timestamp

		currentSector += uint32(sectorsNeeded)
	}

	return w.writeHeader(&header)
}

// writeHeader back-patches the two header sectors at the start of the file.
func (w *Writer) writeHeader(h *RegionHeader) error {
	if _, err := w.w.Seek(0, io.SeekStart); err != nil {
		return err
	}

	buf := make([]byte, HeaderSize)
	for i, loc := range h.Locations {
		off := i * 4
		buf[off] = byte(loc.Offset >> 16)
		buf[off+1] = byte(loc.Offset >> 8)
		buf[off+2] = byte(loc.Offset)
		buf[off+3] = loc.Sectors
	}
	for i, ts := range h.Timestamps {
		off := SectorSize + i*4
		buf[off] = byte(ts >> 24)
		buf[off+1] = byte(ts >> 16)
		buf[off+2] = byte(ts >> 8)
		buf[off+3] = byte(ts)
	}

	_, err := w.w.Write(buf)
	return err
}
