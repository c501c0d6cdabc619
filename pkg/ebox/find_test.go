package ebox

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/arekinath/humboldt-go/pkg/piv"
	"github.com/arekinath/humboldt-go/pkg/piv/pivtest"
	"github.com/arekinath/humboldt-go/pkg/tlv"
)

func selfSignedCert(t *testing.T, priv *ecdsa.PrivateKey) []byte {
	t.Helper()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "ebox-find-test"},
		NotBefore:    time.Unix(0, 0),
		NotAfter:     time.Unix(0, 0).Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}
	return der
}

func buildCertResponse(der []byte) []byte {
	w := tlv.NewWriter()
	w.Push(0x53)
	w.Push(0x70)
	w.Write(der)
	w.Pop()
	w.Push(0x71)
	w.WriteByte(0x00)
	w.Pop()
	w.Pop()
	return append(w.Buf(), 0x90, 0x00)
}

func buildAPTResponse() []byte {
	w := tlv.NewWriter()
	w.Push(0x61)
	w.Push(0x4F)
	w.Write([]byte{0xA0, 0x00, 0x00, 0x03, 0x08, 0x00, 0x00, 0x10, 0x00, 0x01, 0x00})
	w.Pop()
	w.Push(0xAC)
	w.Push(0x80)
	w.WriteByte(byte(piv.AlgECCP256))
	w.Pop()
	w.Pop()
	w.Pop()
	return append(w.Buf(), 0x90, 0x00)
}

func buildCHUIDResponse(guid [16]byte) []byte {
	w := tlv.NewWriter()
	w.Push(0x53)
	w.Push(0x34)
	w.Write(guid[:])
	w.Pop()
	w.Pop()
	return append(w.Buf(), 0x90, 0x00)
}

// enumeratedTokenWith9D builds a single enumerated token whose 9D slot
// is pre-cached against priv's public key.
func enumeratedTokenWith9D(t *testing.T, guid [16]byte, priv *ecdsa.PrivateKey) *piv.Token {
	t.Helper()
	der := selfSignedCert(t, priv)

	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xA4), Response: buildAPTResponse()},
		{Match: pivtest.MatchIns(0xCA), Response: buildCHUIDResponse(guid)},
		{Match: pivtest.MatchIns(0xFD), Response: []byte{0x6D, 0x00}},
	}
	ctx := pivtest.NewContext()
	ctx.AddReader("Reader", card)

	tokens, err := piv.Enumerate(ctx)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	tok := tokens[0]

	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xCA), Response: buildCertResponse(der)},
	}
	if err := piv.TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	if err := piv.ReadCert(tok, piv.SlotKeyManagement); err != nil {
		t.Fatalf("ReadCert: %v", err)
	}
	if err := piv.TxnEnd(tok); err != nil {
		t.Fatalf("TxnEnd: %v", err)
	}
	return tok
}

// TestFindTokenGUIDMatch seals to a specific token's GUID and expects
// FindToken to resolve that exact token/slot pair without consulting
// any other token's cached material.
func TestFindTokenGUIDMatch(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	guid := [16]byte{1, 2, 3, 4}
	tok := enumeratedTokenWith9D(t, guid, priv)

	box, err := Seal(tok, tok.GetSlot(piv.SlotKeyManagement), []byte("hello"), "", "")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	foundTok, foundSlot, err := FindToken([]*piv.Token{tok}, box)
	if err != nil {
		t.Fatalf("FindToken: %v", err)
	}
	if foundTok != tok || foundSlot.ID != piv.SlotKeyManagement {
		t.Error("FindToken returned unexpected token/slot")
	}
}

// TestFindTokenMismatchIssuesNoCardTraffic seals against token A's 9D
// key, then asks FindToken to resolve it among a set containing only
// token B (a different GUID, different key). No APDU may be issued to
// B's card for the lookup, and the result must be ENOENT.
func TestFindTokenMismatchIssuesNoCardTraffic(t *testing.T) {
	privA, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	privB, _ := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)

	guidA := [16]byte{0xAA}
	guidB := [16]byte{0xBB}
	tokA := enumeratedTokenWith9D(t, guidA, privA)

	cardB := pivtest.NewCard()
	cardB.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xA4), Response: buildAPTResponse()},
		{Match: pivtest.MatchIns(0xCA), Response: buildCHUIDResponse(guidB)},
		{Match: pivtest.MatchIns(0xFD), Response: []byte{0x6D, 0x00}},
	}
	ctxB := pivtest.NewContext()
	ctxB.AddReader("Reader B", cardB)
	tokensB, err := piv.Enumerate(ctxB)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	tokB := tokensB[0]
	_ = privB

	box, err := Seal(tokA, tokA.GetSlot(piv.SlotKeyManagement), []byte("hello"), "", "")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	sentBefore := len(cardB.Sent)
	_, _, err = FindToken([]*piv.Token{tokB}, box)
	perr, ok := err.(*piv.Error)
	if !ok || perr.Kind != piv.KindNoEnt {
		t.Fatalf("got %v, want KindNoEnt", err)
	}
	if len(cardB.Sent) != sentBefore {
		t.Error("FindToken issued APDU traffic against a non-matching token")
	}
}
