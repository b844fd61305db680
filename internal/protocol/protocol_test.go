package protocol

import (
	"bytes"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{Type: Input, PacketID: 4242, Timestamp: 0xDEADBEEF}
	datagram := Encode(h, []byte{1, 2, 3})

	got, payload, err := DecodeHeader(datagram)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != h {
		t.Fatalf("expected header %+v, got %+v", h, got)
	}
	if !bytes.Equal(payload, []byte{1, 2, 3}) {
		t.Fatalf("expected payload [1 2 3], got %v", payload)
	}
}

func TestDecodeHeaderDropsTruncatedDatagram(t *testing.T) {
	_, _, err := DecodeHeader(make([]byte, 6))
	if err != ErrTruncated {
		t.Fatalf("expected ErrTruncated for a 6-byte datagram, got %v", err)
	}
}

func TestDecodeHeaderAcceptsExactlySevenBytes(t *testing.T) {
	h, payload, err := DecodeHeader(make([]byte, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payload) != 0 {
		t.Fatalf("expected empty payload, got %v", payload)
	}
	_ = h
}

func TestInputPayloadRoundTrip(t *testing.T) {
	want := InputPayload{PlayerID: 2, KeyCode: 3, Action: ActionPressed}
	got, err := DecodeInput(EncodeInput(want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestInputPayloadRejectsWrongLength(t *testing.T) {
	if _, err := DecodeInput([]byte{1, 2}); err == nil {
		t.Fatal("expected error for a 2-byte INPUT payload")
	}
}

func TestJoinPayloadRoundTrip(t *testing.T) {
	want := "Alice"
	if got := DecodeJoin(EncodeJoin(want)); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPlayerIDAssignRoundTrip(t *testing.T) {
	got, err := DecodePlayerIDAssign(EncodePlayerIDAssign(ServerFull))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ServerFull {
		t.Fatalf("expected %d, got %d", ServerFull, got)
	}
}

func TestKilledPayloadRoundTrip(t *testing.T) {
	got, err := DecodeKilled(EncodeKilled(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestTimeoutPayloadRoundTrip(t *testing.T) {
	want := "connection timed out"
	if got := DecodeTimeout(EncodeTimeout(want)); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSnapshotPayloadRoundTrip(t *testing.T) {
	want := []SnapshotEntity{
		{ID: 0, X: 123.5, Y: -7.25},
		{ID: 1, X: 0, Y: 0},
	}
	encoded, err := EncodeSnapshot(want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1 count byte + 2 entities * (1+4+4+16) = 1 + 2*25 = 51.
	if len(encoded) != 51 {
		t.Fatalf("expected 51-byte payload, got %d", len(encoded))
	}

	got, err := DecodeSnapshot(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entity %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSnapshotRejectsMoreThan255Entities(t *testing.T) {
	entities := make([]SnapshotEntity, 256)
	if _, err := EncodeSnapshot(entities); err == nil {
		t.Fatal("expected error encoding 256 entities")
	}
}

func TestSnapshotDecodeRejectsTruncatedPayload(t *testing.T) {
	encoded, err := EncodeSnapshot([]SnapshotEntity{{ID: 1, X: 1, Y: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := DecodeSnapshot(encoded[:len(encoded)-1]); err == nil {
		t.Fatal("expected error decoding a truncated snapshot payload")
	}
}

func TestSnapshotReservedBytesAreZeroFilled(t *testing.T) {
	encoded, err := EncodeSnapshot([]SnapshotEntity{{ID: 5, X: 1, Y: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// entry starts at offset 1: id(1) + x(4) + y(4) = 9 bytes in, 16 reserved follow.
	reserved := encoded[1+9 : 1+9+16]
	for _, b := range reserved {
		if b != 0 {
			t.Fatalf("expected reserved bytes to be zero-filled, got %v", reserved)
		}
	}
}
