package piv

import (
	"bytes"
	"testing"

	"github.com/arekinath/humboldt-go/pkg/piv/pivtest"
)

func buildCHUID(guid [16]byte) []byte {
	w := tagBuilder()
	w.Push(chuidOuter)
	w.Push(chuidInnGUID)
	w.Write(guid[:])
	w.Pop()
	w.Pop()
	return w.Buf()
}

func TestReadCHUID(t *testing.T) {
	want := [16]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xCA), Response: append(buildCHUID(want), 0x90, 0x00)},
	}
	tok := newTokenOnCard(card)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	if err := ReadCHUID(tok); err != nil {
		t.Fatalf("ReadCHUID: %v", err)
	}
	if !tok.HasGUID {
		t.Fatal("HasGUID not set")
	}
	if !bytes.Equal(tok.GUID[:], want[:]) {
		t.Errorf("GUID = %x, want %x", tok.GUID, want)
	}
}

func TestReadCHUIDMissing(t *testing.T) {
	card := pivtest.NewCard()
	card.Steps = []pivtest.Step{
		{Match: pivtest.MatchIns(0xCA), Response: []byte{0x6A, 0x82}},
	}
	tok := newTokenOnCard(card)

	if err := TxnBegin(tok); err != nil {
		t.Fatalf("TxnBegin: %v", err)
	}
	defer TxnEnd(tok)

	err := ReadCHUID(tok)
	perr, ok := err.(*Error)
	if !ok || perr.Kind != KindNoEnt {
		t.Fatalf("got %v, want KindNoEnt", err)
	}
	if tok.HasGUID {
		t.Error("HasGUID should remain false")
	}
}
