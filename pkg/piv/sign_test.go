package piv

import (
	"bytes"
	"crypto/elliptic"
	"testing"

	"github.com/arekinath/humboldt-go/pkg/piv/pivtest"
)

func buildGenAuthResponse(payload []byte) []byte {
	w := tagBuilder()
	w.Push(tagDynAuth)
	w.Push(tagResponse)
	w.Write(payload)
	w.Pop()
	w.Pop()
	return w.Buf()
}

func cachedECCP256Slot(tok *Token, id SlotID) {
	tok.putSlot(&Slot{ID: id, Alg: AlgECCP256})
}

// TestSignP256CardSideHash mirrors the "sign P-256 with card-side hash"
// end-to-end scenario: the card advertises ECCP256_SHA256, so Sign sends
// the raw message under the Yubico card-side-hash algorithm id instead
// of a locally computed digest, and leaves slot.Alg untouched.
func TestSignP256CardSideHash(t *testing.T) {
	const msg = "hello"
	wantSig := []byte{0x30, 0x02, 0x01, 0x02}

	var sentP1 byte
	card := pivtest.NewCard()
	card.Default = func(cmd []byte) ([]byte, error) {
		sentP1 = cmd[2]
		if !bytes.Contains(cmd, []byte(msg)) {
			t.Errorf("expected raw message %q in command body %x", msg, cmd)
		}
		return append(buildGenAuthResponse(wantSig), 0x90, 0x00), nil
	}
	tok := newTokenOnCard(card)
	tok.Algorithms = []Algorithm{AlgECCP256SHA256}
	cachedECCP256Slot(tok, SlotSignature)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	sig, err := Sign(tok, SlotSignature, []byte(msg), HashSHA256)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !bytes.Equal(sig, wantSig) {
		t.Errorf("sig = %x, want %x", sig, wantSig)
	}
	if sentP1 != byte(AlgECCP256SHA256) {
		t.Errorf("P1 = %02X, want %02X (card-side hash alg)", sentP1, byte(AlgECCP256SHA256))
	}
	if tok.GetSlot(SlotSignature).Alg != AlgECCP256 {
		t.Errorf("slot.Alg mutated to %02X, want unchanged ECCP256", byte(tok.GetSlot(SlotSignature).Alg))
	}
}

func TestSignP256LocalHashFallback(t *testing.T) {
	wantSig := []byte{0x30, 0x02, 0x01, 0x03}
	var sentP1 byte
	card := pivtest.NewCard()
	card.Default = func(cmd []byte) ([]byte, error) {
		sentP1 = cmd[2]
		return append(buildGenAuthResponse(wantSig), 0x90, 0x00), nil
	}
	tok := newTokenOnCard(card)
	// No Yubico algorithm extensions advertised.
	cachedECCP256Slot(tok, SlotSignature)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	if _, err := Sign(tok, SlotSignature, []byte("hello"), HashSHA256); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if sentP1 != byte(AlgECCP256) {
		t.Errorf("P1 = %02X, want %02X (plain ECCP256)", sentP1, byte(AlgECCP256))
	}
}

func TestSignUncachedSlotIsNoEnt(t *testing.T) {
	tok := newTokenOnCard(pivtest.NewCard())
	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	_, err := Sign(tok, SlotSignature, []byte("hello"), HashSHA256)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindNoEnt {
		t.Fatalf("got %v, want KindNoEnt", err)
	}
}

func TestECDH(t *testing.T) {
	wantShared := []byte{0x01, 0x02, 0x03, 0x04}
	card := pivtest.NewCard()
	card.Default = func(cmd []byte) ([]byte, error) {
		return append(buildGenAuthResponse(wantShared), 0x90, 0x00), nil
	}
	tok := newTokenOnCard(card)
	tok.putSlot(&Slot{ID: SlotKeyManagement, Alg: AlgECCP256})

	priv, der := selfSignedECDSACert(t, elliptic.P256())
	_ = der

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	shared, err := ECDH(tok, SlotKeyManagement, &priv.PublicKey)
	if err != nil {
		t.Fatalf("ECDH: %v", err)
	}
	if !bytes.Equal(shared, wantShared) {
		t.Errorf("shared = %x, want %x", shared, wantShared)
	}
}
