package piv

import (
	"testing"

	"github.com/arekinath/humboldt-go/pkg/piv/pivtest"
)

func TestEnumerateEmpty(t *testing.T) {
	ctx := pivtest.NewContext()

	tokens, err := Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if tokens != nil {
		t.Errorf("tokens = %v, want nil", tokens)
	}
}

// TestEnumerateOneCard mirrors a single well-behaved non-YubiKey card:
// SELECT succeeds, CHUID comes back with a well-formed GUID, and GET
// VERSION is rejected with 6D00 (instruction not supported).
func TestEnumerateOneCard(t *testing.T) {
	guid := [16]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}

	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xA4), Response: append(buildAPT(byte(AlgECCP256)), 0x90, 0x00)},
		{Match: pivtest.MatchIns(0xCA), Response: append(buildCHUID(guid), 0x90, 0x00)},
		{Match: pivtest.MatchIns(0xFD), Response: []byte{0x6D, 0x00}},
	}
	ctx := pivtest.NewContext()
	ctx.AddReader("Reader 1", card)

	tokens, err := Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	tok := tokens[0]
	if !tok.HasGUID || tok.GUID != guid {
		t.Errorf("GUID = %x hasGUID=%v, want %x", tok.GUID, tok.HasGUID, guid)
	}
	if tok.Yubico {
		t.Error("Yubico should be false for a 6D00 GET VERSION response")
	}
	if tok.InTransaction() {
		t.Error("token should not be left in a transaction after Enumerate")
	}

	Release(tokens)
	if card.Disconnects != 1 {
		t.Errorf("Disconnects = %d, want 1", card.Disconnects)
	}
}

func TestEnumerateSkipsNonPIVCard(t *testing.T) {
	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xA4), Response: []byte{0x6A, 0x82}},
	}
	ctx := pivtest.NewContext()
	ctx.AddReader("Reader 1", card)

	tokens, err := Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(tokens) != 0 {
		t.Fatalf("got %d tokens, want 0", len(tokens))
	}
	if card.Disconnects != 1 {
		t.Errorf("Disconnects = %d, want 1 (card rejected during enumeration)", card.Disconnects)
	}
}
