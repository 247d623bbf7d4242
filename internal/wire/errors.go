package wire

import "errors"

var (
	// ErrFrameTooShort is returned when a frame is shorter than HeaderSize.
	ErrFrameTooShort = errors.New("frame too short")

	// ErrCompress is returned when the DEFLATE writer fails.
	ErrCompress = errors.New("compression failed")

	// ErrMalformedStream is returned when the input is not a valid DEFLATE
	// stream.
	ErrMalformedStream = errors.New("malformed deflate stream")

	// ErrDecompressedTooLarge is returned when decompressed output exceeds
	// the configured limit.
	ErrDecompressedTooLarge = errors.New("decompressed size exceeds limit")
)
