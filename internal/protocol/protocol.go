// Package protocol implements the UDP wire format: a fixed 7-byte header
// followed by a per-type payload. All integers are big-endian.
package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// PacketType is the single-byte wire discriminator (must be stable).
type PacketType uint8

const (
	Input           PacketType = 0x01
	Join            PacketType = 0x02
	Ping            PacketType = 0x04
	PlayerIDAssign  PacketType = 0x08
	Snapshot        PacketType = 0x10
	Timeout         PacketType = 0x20
	Killed          PacketType = 0x40
	PingResponse    PacketType = 0x80
)

// HeaderSize is the fixed header width: u8 type, u16 packetId, u32 timestamp.
const HeaderSize = 7

// ServerFull is the PLAYER_ID_ASSIGN value sent when all four slots are
// occupied.
const ServerFull = 255

// ErrTruncated is returned by DecodeHeader when a datagram is shorter than
// HeaderSize; callers must drop the datagram, not retry.
var ErrTruncated = errors.New("protocol: datagram shorter than header")

// Header is the 7-byte prefix on every packet.
type Header struct {
	Type      PacketType
	PacketID  uint16
	Timestamp uint32
}

// EncodeHeader writes h into a fresh 7-byte slice.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = byte(h.Type)
	binary.BigEndian.PutUint16(buf[1:3], h.PacketID)
	binary.BigEndian.PutUint32(buf[3:7], h.Timestamp)
	return buf
}

// DecodeHeader reads the header and returns the remaining payload slice.
// Datagrams shorter than HeaderSize are rejected with ErrTruncated and
// must be dropped by the caller, not retried.
func DecodeHeader(datagram []byte) (Header, []byte, error) {
	if len(datagram) < HeaderSize {
		return Header{}, nil, ErrTruncated
	}
	h := Header{
		Type:      PacketType(datagram[0]),
		PacketID:  binary.BigEndian.Uint16(datagram[1:3]),
		Timestamp: binary.BigEndian.Uint32(datagram[3:7]),
	}
	return h, datagram[HeaderSize:], nil
}

// Encode prepends h to payload, producing a complete datagram.
func Encode(h Header, payload []byte) []byte {
	buf := make([]byte, 0, HeaderSize+len(payload))
	buf = append(buf, EncodeHeader(h)...)
	buf = append(buf, payload...)
	return buf
}
