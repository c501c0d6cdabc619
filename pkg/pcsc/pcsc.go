// Package pcsc defines the narrow PC/SC resource-manager interface the
// PIV layer depends on, and a concrete adapter backed by
// github.com/ebfe/scard. PC/SC daemon lifecycle, device enumeration and
// reader discovery policy live outside this module; this package only
// adapts the calls the PIV core actually issues.
package pcsc

import "github.com/ebfe/scard"

// Protocol identifies the active card protocol on a connected card.
type Protocol byte

const (
	ProtocolUndefined Protocol = iota
	ProtocolT0
	ProtocolT1
)

// Card is a single connected reader/card pairing. Every method may
// block.
type Card interface {
	// Transmit sends a single APDU and returns the raw response bytes
	// (trailing status word included).
	Transmit(cmd []byte) ([]byte, error)
	// BeginTransaction acquires exclusive access to the card.
	BeginTransaction() error
	// EndTransaction releases exclusive access. reset requests that the
	// card be reset on release.
	EndTransaction(reset bool) error
	// Disconnect releases the card handle. reset requests a card reset
	// before the handle is released.
	Disconnect(reset bool) error
	// ActiveProtocol reports which protocol (T=0 or T=1) this card
	// handle negotiated.
	ActiveProtocol() Protocol
}

// Context is the PC/SC resource-manager handle: it lists readers and
// connects to the cards seated in them.
type Context interface {
	ListReaders() ([]string, error)
	Connect(reader string) (Card, error)
	Release() error
}

// scardContext adapts github.com/ebfe/scard.Context to Context.
type scardContext struct {
	ctx *scard.Context
}

// Establish opens a PC/SC resource-manager context.
func Establish() (Context, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, err
	}
	return &scardContext{ctx: ctx}, nil
}

func (c *scardContext) ListReaders() ([]string, error) {
	return c.ctx.ListReaders()
}

func (c *scardContext) Connect(reader string) (Card, error) {
	card, err := c.ctx.Connect(reader, scard.ShareShared, scard.ProtocolT0|scard.ProtocolT1)
	if err != nil {
		return nil, err
	}
	return &scardCard{card: card}, nil
}

func (c *scardContext) Release() error {
	return c.ctx.Release()
}

type scardCard struct {
	card *scard.Card
}

func (c *scardCard) Transmit(cmd []byte) ([]byte, error) {
	return c.card.Transmit(cmd)
}

func (c *scardCard) BeginTransaction() error {
	return c.card.BeginTransaction()
}

func (c *scardCard) EndTransaction(reset bool) error {
	disposition := scard.LeaveCard
	if reset {
		disposition = scard.ResetCard
	}
	return c.card.EndTransaction(disposition)
}

func (c *scardCard) Disconnect(reset bool) error {
	disposition := scard.LeaveCard
	if reset {
		disposition = scard.ResetCard
	}
	return c.card.Disconnect(disposition)
}

func (c *scardCard) ActiveProtocol() Protocol {
	status, err := c.card.Status()
	if err != nil {
		return ProtocolUndefined
	}
	switch status.ActiveProtocol {
	case scard.ProtocolT0:
		return ProtocolT0
	case scard.ProtocolT1:
		return ProtocolT1
	default:
		return ProtocolUndefined
	}
}
