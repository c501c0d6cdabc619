package iso7816

import (
	"bytes"
	"testing"
)

// mockChainCard answers a chained command with bytesRemaining GET RESPONSE
// continuations, and tracks whether it saw every chained block.
type mockChainCard struct {
	blocks     [][]byte
	replyChunk []byte
	chunkSize  int
	sent       int
}

func (m *mockChainCard) Transmit(cmd []byte) ([]byte, error) {
	cla := cmd[0]
	if cla&0x10 != 0 {
		// Chained block; store body and ack with 9000.
		lc := int(cmd[4])
		m.blocks = append(m.blocks, append([]byte{}, cmd[5:5+lc]...))
		return []byte{0x90, 0x00}, nil
	}

	if cmd[1] != byte(INS_GET_RESPONSE) && len(cmd) > 4 {
		lc := int(cmd[4])
		if lc > 0 {
			m.blocks = append(m.blocks, append([]byte{}, cmd[5:5+lc]...))
		}
	}

	// Final block of a command, or a GET RESPONSE continuation: serve
	// the next chunk of replyChunk and signal 61xx if more remains.
	start := m.sent
	end := start + m.chunkSize
	more := true
	if end >= len(m.replyChunk) {
		end = len(m.replyChunk)
		more = false
	}
	out := append([]byte{}, m.replyChunk[start:end]...)
	m.sent = end
	if more {
		out = append(out, 0x61, byte(len(m.replyChunk)-end))
	} else {
		out = append(out, 0x90, 0x00)
	}
	return out, nil
}

func TestTransceiveChain_CommandChaining(t *testing.T) {
	data := make([]byte, 600)
	for i := range data {
		data[i] = byte(i)
	}

	card := &mockChainCard{chunkSize: 1000, replyChunk: []byte{0xAA, 0xBB}}
	cls, _ := NewClass(0x00)
	ins, _ := NewInstruction(0x87)

	resp, trace, err := TransceiveChain(card, cls, ins, 0x00, 0x9B, data)
	if err != nil {
		t.Fatalf("TransceiveChain: %v", err)
	}
	if resp.Status != SW_NO_ERROR {
		t.Fatalf("status = %04X", uint16(resp.Status))
	}
	if !bytes.Equal(resp.Data, []byte{0xAA, 0xBB}) {
		t.Errorf("data = %x", resp.Data)
	}

	// 600 bytes = two 255-byte chained blocks + a 90-byte final block.
	if len(card.blocks) != 3 {
		t.Fatalf("saw %d blocks, want 3", len(card.blocks))
	}
	reassembled := append(append([]byte{}, card.blocks[0]...), card.blocks[1]...)
	reassembled = append(reassembled, card.blocks[2]...)
	if !bytes.Equal(reassembled, data) {
		t.Errorf("reassembled command body mismatch")
	}
	if len(trace) < 3 {
		t.Errorf("trace too short: %d", len(trace))
	}
}

func TestTransceiveChain_ResponseChaining(t *testing.T) {
	reply := make([]byte, 700)
	for i := range reply {
		reply[i] = byte(i % 251)
	}
	card := &mockChainCard{chunkSize: 256, replyChunk: reply}
	cls, _ := NewClass(0x00)
	ins, _ := NewInstruction(0xCA)

	resp, _, err := TransceiveChain(card, cls, ins, 0x3F, 0xFF, nil)
	if err != nil {
		t.Fatalf("TransceiveChain: %v", err)
	}
	if !bytes.Equal(resp.Data, reply) {
		t.Errorf("reassembled reply mismatch: got %d bytes, want %d", len(resp.Data), len(reply))
	}
}

func TestTransceiveChain_SingleShotEquivalence(t *testing.T) {
	// A short command/response round trip (no chaining needed) must
	// behave identically to a single Client.Send.
	card := &mockChainCard{chunkSize: 1000, replyChunk: []byte{0x01, 0x02, 0x03}}
	cls, _ := NewClass(0x00)
	ins, _ := NewInstruction(0xCA)

	resp, _, err := TransceiveChain(card, cls, ins, 0x00, 0x00, []byte{0xAA})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(resp.Data, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("data = %x", resp.Data)
	}
}
