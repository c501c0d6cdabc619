package piv

import (
	"testing"

	"github.com/arekinath/humboldt-go/pkg/piv/pivtest"
)

func buildAPT(algs ...byte) []byte {
	w := tagBuilder()
	w.Push(tagAPT)
	w.Push(tagAID)
	w.Write(AID())
	w.Pop()
	w.Push(tagAlgs)
	for _, a := range algs {
		w.Push(tagAlgID)
		w.WriteByte(a)
		w.Pop()
	}
	w.Pop()
	w.Pop()
	return w.Buf()
}

func newTokenOnCard(card *pivtest.Card) *Token {
	return newToken("test-reader", card)
}

func TestSelectSuccess(t *testing.T) {
	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xA4), Response: append(buildAPT(byte(AlgECCP256), byte(AlgRSA2048)), 0x90, 0x00)},
	}
	tok := newTokenOnCard(card)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	if err := Select(tok); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(tok.Algorithms) != 2 {
		t.Fatalf("got %d algorithms, want 2", len(tok.Algorithms))
	}
	if tok.Algorithms[0] != AlgECCP256 || tok.Algorithms[1] != AlgRSA2048 {
		t.Errorf("unexpected algorithms: %v", tok.Algorithms)
	}
}

func TestSelectNotFound(t *testing.T) {
	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xA4), Response: []byte{0x6A, 0x82}},
	}
	tok := newTokenOnCard(card)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	err := Select(tok)
	if err == nil {
		t.Fatal("expected error")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindNoEnt {
		t.Fatalf("got %v, want KindNoEnt", err)
	}
}

func TestSelectOutsideTransactionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Select outside a transaction")
		}
	}()
	tok := newTokenOnCard(pivtest.NewCard())
	_ = Select(tok)
}
