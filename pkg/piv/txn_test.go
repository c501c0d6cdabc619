package piv

import (
	"testing"

	"github.com/arekinath/humboldt-go/pkg/piv/pivtest"
)

func TestTxnBeginEndClearsReset(t *testing.T) {
	card := pivtest.NewCard()
	tok := newTokenOnCard(card)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	tok.reset = true
	if err := TxnEnd(tok); err != nil {
		t.Fatalf("TxnEnd: %v", err)
	}
	if tok.reset {
		t.Error("reset flag should be cleared after TxnEnd")
	}
	if tok.inTransaction {
		t.Error("inTransaction should be cleared after TxnEnd")
	}
	if card.TxnEnds != 1 || card.Resets != 1 {
		t.Errorf("card.TxnEnds=%d card.Resets=%d, want 1/1", card.TxnEnds, card.Resets)
	}
}

func TestTxnBeginReentrancyPanics(t *testing.T) {
	tok := newTokenOnCard(pivtest.NewCard())
	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nested TxnBegin")
		}
	}()
	_ = TxnBegin(tok)
}

func TestTxnEndWithoutBeginPanics(t *testing.T) {
	tok := newTokenOnCard(pivtest.NewCard())
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling TxnEnd without TxnBegin")
		}
	}()
	_ = TxnEnd(tok)
}
