package wire

import "encoding/binary"

const (
	// VersionRandomKey tags frames sealed with a random 256-bit key.
	VersionRandomKey byte = 0x01
	// VersionPassphrase tags frames sealed with a passphrase-derived key.
	VersionPassphrase byte = 0x02

	// HeaderSize is the frame header length: 1 version byte and an
	// 8-byte timestamp.
	HeaderSize = 9
)

// Header is the decoded frame header.
type Header struct {
	Version   byte
	CreatedAt uint64
}

// Frame builds version || createdAt (big-endian) || body.
func Frame(version byte, createdAt uint64, body []byte) []byte {
	frame := make([]byte, HeaderSize, HeaderSize+len(body))
	frame[0] = version
	binary.BigEndian.PutUint64(frame[1:HeaderSize], createdAt)
	return append(frame, body...)
}

// ParseHeader splits a frame into its header and body. The body aliases
// frame.
func ParseHeader(frame []byte) (Header, []byte, error) {
	if len(frame) < HeaderSize {
		return Header{}, nil, ErrFrameTooShort
	}

	h := Header{
		Version:   frame[0],
		CreatedAt: binary.BigEndian.Uint64(frame[1:HeaderSize]),
	}
	return h, frame[HeaderSize:], nil
}
