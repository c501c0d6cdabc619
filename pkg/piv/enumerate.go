package piv

import (
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/pcsc"
)

// Enumerate lists readers via ctx, connects each, and builds a fully
// probed Token for every reader that yields a PIV-selectable card. It
// returns tokens in an owner-collection (a slice), most-recently-opened
// first.
func Enumerate(ctx pcsc.Context) ([]*Token, error) {
	readers, err := ctx.ListReaders()
	if err != nil {
		return nil, newErr("enumerate", KindIO, err)
	}

	var tokens []*Token
	for _, reader := range readers {
		card, cerr := ctx.Connect(reader)
		if cerr != nil {
			continue
		}

		tok := newToken(reader, card)
		if err := TxnBegin(tok); err != nil {
			card.Disconnect(false)
			continue
		}

		ok := probeToken(tok)

		if err := TxnEnd(tok); err != nil {
			card.Disconnect(true)
			continue
		}
		if !ok {
			card.Disconnect(true)
			continue
		}

		tokens = append([]*Token{tok}, tokens...)
	}
	return tokens, nil
}

// probeToken runs select/read_chuid/probe_yubico within an open
// transaction, returning false if the card does not speak PIV at all.
func probeToken(t *Token) bool {
	if err := Select(t); err != nil {
		return false
	}

	if err := ReadCHUID(t); err != nil {
		if pe, ok := err.(*Error); !ok || pe.Kind != KindNoEnt {
			return false
		}
		// NOENT: proceed with no CHUID.
	}

	if err := probeYubico(t); err != nil {
		if pe, ok := err.(*Error); !ok || pe.Kind != KindNotSup {
			return false
		}
		// NOTSUP: not a YubiKey, not an error.
	}

	return true
}

// Release disconnects every token in tokens, leaving the card (no
// reset), and discards cached slot material. It panics if any token is
// still in a transaction.
func Release(tokens []*Token) {
	for _, t := range tokens {
		if t.inTransaction {
			panic(fmt.Sprintf("piv: Release called with token %q still in-transaction", t.ReaderName))
		}
		t.card.Disconnect(false)
		t.slots = nil
	}
}
