// Package wire implements the plaintext side of the share-payload format:
// the versioned binary header that precedes the JSON document and the
// DEFLATE layer applied to the framed bytes before encryption.
//
// A frame is laid out as:
//
//	version (1) || created_at, big-endian Unix seconds (8) || JSON (UTF-8)
//
// Decompression is bounded: output is read in fixed-size chunks and aborted
// once it exceeds the caller's limit, so a small hostile stream cannot
// expand into an arbitrarily large buffer.
package wire
