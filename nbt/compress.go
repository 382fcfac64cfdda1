package nbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Decode parses a single top-level document from data, transparently
// decompressing it first when it carries the gzip magic bytes. This is the
// entry point for level.dat-style files, which are usually gzip-wrapped but
// occasionally stored raw.
func Decode(data []byte) (*NamedTag, error) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		defer zr.Close()
		raw, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("nbt: gzip: %w", err)
		}
		data = raw
	}
	doc, _, err := ParseNamedTag(data)
	return doc, err
}

// EncodeGzip writes a gzip-wrapped top-level document to w, the on-disk form
// used for save files.
func EncodeGzip(w io.Writer, name string, tag *Tag) error {
	zw := gzip.NewWriter(w)
	if err := WriteNamedTag(zw, name, tag); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
