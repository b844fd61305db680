package protocol

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// InputAction is the press/release flag carried by an INPUT packet.
type InputAction uint8

const (
	ActionReleased InputAction = 0
	ActionPressed  InputAction = 1
)

// InputPayload is the decoded body of an INPUT packet (C→S).
type InputPayload struct {
	PlayerID uint8
	KeyCode  uint8
	Action   InputAction
}

var errInputPayload = errors.New("protocol: INPUT payload must be exactly 3 bytes")

// EncodeInput serialises an INPUT payload.
func EncodeInput(p InputPayload) []byte {
	return []byte{p.PlayerID, p.KeyCode, byte(p.Action)}
}

// DecodeInput parses an INPUT payload.
func DecodeInput(payload []byte) (InputPayload, error) {
	if len(payload) != 3 {
		return InputPayload{}, errInputPayload
	}
	return InputPayload{
		PlayerID: payload[0],
		KeyCode:  payload[1],
		Action:   InputAction(payload[2]),
	}, nil
}

// EncodeJoin serialises a JOIN payload: the raw UTF-8 username.
func EncodeJoin(username string) []byte { return []byte(username) }

// DecodeJoin reads a JOIN payload.
func DecodeJoin(payload []byte) string { return string(payload) }

// EncodePing serialises a PING payload (always empty).
func EncodePing() []byte { return nil }

// EncodePlayerIDAssign serialises a PLAYER_ID_ASSIGN payload. Use
// ServerFull when no slot is available.
func EncodePlayerIDAssign(playerID uint8) []byte { return []byte{playerID} }

var errPlayerIDAssignPayload = errors.New("protocol: PLAYER_ID_ASSIGN payload must be exactly 1 byte")

// DecodePlayerIDAssign parses a PLAYER_ID_ASSIGN payload.
func DecodePlayerIDAssign(payload []byte) (uint8, error) {
	if len(payload) != 1 {
		return 0, errPlayerIDAssignPayload
	}
	return payload[0], nil
}

// SnapshotEntity is one entity's entry in a SNAPSHOT packet: id, position,
// and 16 reserved bytes (velocity/facing/state, currently zero-filled,
// layout pinned by protocol_test.go so future fields never reshuffle
// earlier ones).
type SnapshotEntity struct {
	ID uint8
	X  float32
	Y  float32
}

const snapshotEntityReservedBytes = 16
const snapshotEntitySize = 1 + 4 + 4 + snapshotEntityReservedBytes
const maxSnapshotEntities = 255

var errSnapshotTooManyEntities = errors.New("protocol: a snapshot cannot carry more than 255 entities")

// EncodeSnapshot serialises a SNAPSHOT payload: a 1-byte count followed
// by that many fixed-size entries. Entities beyond maxSnapshotEntities
// are an error; callers must cap upstream and log what was dropped.
func EncodeSnapshot(entities []SnapshotEntity) ([]byte, error) {
	if len(entities) > maxSnapshotEntities {
		return nil, errSnapshotTooManyEntities
	}
	buf := make([]byte, 1+len(entities)*snapshotEntitySize)
	buf[0] = byte(len(entities))
	off := 1
	for _, e := range entities {
		buf[off] = e.ID
		binary.BigEndian.PutUint32(buf[off+1:off+5], math.Float32bits(e.X))
		binary.BigEndian.PutUint32(buf[off+5:off+9], math.Float32bits(e.Y))
		// buf[off+9 : off+9+16] is left zero-filled (reserved).
		off += snapshotEntitySize
	}
	return buf, nil
}

var errSnapshotPayload = errors.New("protocol: truncated SNAPSHOT payload")

// DecodeSnapshot parses a SNAPSHOT payload.
func DecodeSnapshot(payload []byte) ([]SnapshotEntity, error) {
	if len(payload) < 1 {
		return nil, errSnapshotPayload
	}
	count := int(payload[0])
	want := 1 + count*snapshotEntitySize
	if len(payload) < want {
		return nil, errSnapshotPayload
	}
	entities := make([]SnapshotEntity, count)
	off := 1
	for i := 0; i < count; i++ {
		entities[i] = SnapshotEntity{
			ID: payload[off],
			X:  math.Float32frombits(binary.BigEndian.Uint32(payload[off+1 : off+5])),
			Y:  math.Float32frombits(binary.BigEndian.Uint32(payload[off+5 : off+9])),
		}
		off += snapshotEntitySize
	}
	return entities, nil
}

// EncodeTimeout serialises a TIMEOUT payload: a UTF-8 message.
func EncodeTimeout(message string) []byte { return []byte(message) }

// DecodeTimeout reads a TIMEOUT payload.
func DecodeTimeout(payload []byte) string { return string(payload) }

// EncodeKilled serialises a KILLED payload.
func EncodeKilled(playerID uint8) []byte { return []byte{playerID} }

var errKilledPayload = errors.New("protocol: KILLED payload must be exactly 1 byte")

// DecodeKilled parses a KILLED payload.
func DecodeKilled(payload []byte) (uint8, error) {
	if len(payload) != 1 {
		return 0, errKilledPayload
	}
	return payload[0], nil
}

// EncodePingResponse serialises a PING_RESPONSE: an empty payload, since
// the echoed packetId/timestamp live in the header itself.
func EncodePingResponse() []byte { return nil }
