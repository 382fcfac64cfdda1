package region

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// decompress inflates a chunk payload into an owned buffer. Uncompressed
// payloads are copied through unchanged.
func decompress(ctype CompressionType, payload []byte) ([]byte, error) {
	switch ctype {
	case Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("region: gzip: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("region: gzip: %w", err)
		}
		return out, nil

	case Zlib:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("region: zlib: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("region: zlib: %w", err)
		}
		return out, nil

	case Uncompressed:
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil

	default:
		return nil, &InvalidCompressionError{Type: byte(ctype)}
	}
}

// compress deflates a raw chunk payload with the given scheme.
func compress(ctype CompressionType, raw []byte) ([]byte, error) {
	switch ctype {
	case Gzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			zw.Close()
			return nil, fmt.Errorf("region: gzip: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("region: gzip: %w", err)
		}
		return buf.Bytes(), nil

	case Zlib:
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			zw.Close()
			return nil, fmt.Errorf("region: zlib: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("region: zlib: %w", err)
		}
		return buf.Bytes(), nil

	case Uncompressed:
		return raw, nil

	default:
		return nil, &InvalidCompressionError{Type: byte(ctype)}
	}
}
