package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

const (
	// MaxDecompressedSize caps the output of Decompress for share payloads.
	MaxDecompressedSize = 10 * 1024 * 1024

	// readChunkSize is the unit in which decompressed output is read and
	// counted against the limit.
	readChunkSize = 8 * 1024
)

// Compress returns the raw DEFLATE (RFC 1951) encoding of data at the best
// compression level. Lower levels store high-entropy input uncompressed,
// which can push hex or base64 heavy documents past the payload limit.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompress, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompress, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompress, err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates a raw DEFLATE stream, reading in 8 KiB chunks and
// failing with ErrDecompressedTooLarge as soon as the output exceeds limit
// bytes. Output of exactly limit bytes is accepted.
func Decompress(compressed []byte, limit int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()

	var out []byte
	chunk := make([]byte, readChunkSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if len(out)+n > limit {
				return nil, fmt.Errorf("%w: more than %d bytes", ErrDecompressedTooLarge, limit)
			}
			out = append(out, chunk[:n]...)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedStream, err)
		}
	}
}
