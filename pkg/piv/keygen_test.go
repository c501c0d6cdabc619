package piv

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"testing"

	"github.com/arekinath/humboldt-go/pkg/piv/pivtest"
)

func buildGenKeyResponseECC(point []byte) []byte {
	w := tagBuilder()
	w.Push(tagGenAuthResp)
	w.Push(tagECCPoint)
	w.Write(point)
	w.Pop()
	w.Pop()
	return w.Buf()
}

func TestGenerateECCP256(t *testing.T) {
	priv, _ := selfSignedECDSACert(t, elliptic.P256())
	point := elliptic.Marshal(elliptic.P256(), priv.PublicKey.X, priv.PublicKey.Y)

	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0x46), Response: append(buildGenKeyResponseECC(point), 0x90, 0x00)},
	}
	tok := newTokenOnCard(card)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	pub, err := Generate(tok, SlotSignature, AlgECCP256)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	ecPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		t.Fatalf("got %T, want *ecdsa.PublicKey", pub)
	}
	if ecPub.X.Cmp(priv.PublicKey.X) != 0 || ecPub.Y.Cmp(priv.PublicKey.Y) != 0 {
		t.Error("returned point does not match generated key")
	}
}

func TestGenerateSecurityNotSatisfied(t *testing.T) {
	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0x46), Response: []byte{0x69, 0x82}},
	}
	tok := newTokenOnCard(card)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	_, err := Generate(tok, SlotSignature, AlgECCP256)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindPerm {
		t.Fatalf("got %v, want KindPerm", err)
	}
}
