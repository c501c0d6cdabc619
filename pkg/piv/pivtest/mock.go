// Package pivtest provides an in-memory scripted card simulator
// implementing pkg/pcsc's Context/Card interfaces, so end-to-end PIV
// flows can be exercised without real PC/SC hardware. It is grounded
// on the Transmitter interface pkg/iso7816/client.go already defines
// (Transmit(cmd []byte) ([]byte, error)) — pcsc.Card simply adds the
// transaction/disconnect bracketing around the same call.
package pivtest

import (
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/pcsc"
)

// Step matches one APDU by predicate and answers with a fixed response.
// Steps are consumed in order; a Step with Repeat stays current and
// answers every call it matches, and the first call it does not match
// moves past it to the next Step.
type Step struct {
	Match    func(cmd []byte) bool
	Response []byte
	Repeat   bool
}

// Card is a scripted pcsc.Card: each Transmit call is tried against the
// current Step only; if that Step (a non-Repeat one) does not match, the
// call falls through to Default and the Step stays current.
type Card struct {
	Steps      []Step
	Default    func(cmd []byte) ([]byte, error)
	Sent       [][]byte
	Protocol   pcsc.Protocol
	Disconnects int
	Resets      int
	Txns        int
	TxnEnds     int

	pos int
}

func NewCard() *Card {
	return &Card{Protocol: pcsc.ProtocolT1}
}

func (c *Card) Transmit(cmd []byte) ([]byte, error) {
	c.Sent = append(c.Sent, append([]byte{}, cmd...))

	for c.pos < len(c.Steps) {
		step := c.Steps[c.pos]
		if step.Match(cmd) {
			if !step.Repeat {
				c.pos++
			}
			return step.Response, nil
		}
		if !step.Repeat {
			break
		}
		c.pos++
	}

	if c.Default != nil {
		return c.Default(cmd)
	}
	return nil, fmt.Errorf("pivtest: no script step matched command %x", cmd)
}

func (c *Card) BeginTransaction() error {
	c.Txns++
	return nil
}

func (c *Card) EndTransaction(reset bool) error {
	c.TxnEnds++
	if reset {
		c.Resets++
	}
	return nil
}

func (c *Card) Disconnect(reset bool) error {
	c.Disconnects++
	if reset {
		c.Resets++
	}
	return nil
}

func (c *Card) ActiveProtocol() pcsc.Protocol { return c.Protocol }

// Context is a scripted pcsc.Context exposing a fixed set of named
// readers, each backed by a *Card (or absent, for "no card present").
type Context struct {
	Readers map[string]*Card
	order   []string
}

func NewContext() *Context {
	return &Context{Readers: make(map[string]*Card)}
}

// AddReader registers a reader name with its scripted card, preserving
// insertion order for ListReaders.
func (ctx *Context) AddReader(name string, card *Card) {
	if _, exists := ctx.Readers[name]; !exists {
		ctx.order = append(ctx.order, name)
	}
	ctx.Readers[name] = card
}

func (ctx *Context) ListReaders() ([]string, error) {
	return append([]string{}, ctx.order...), nil
}

func (ctx *Context) Connect(reader string) (pcsc.Card, error) {
	card, ok := ctx.Readers[reader]
	if !ok {
		return nil, fmt.Errorf("pivtest: no card in reader %q", reader)
	}
	return card, nil
}

func (ctx *Context) Release() error { return nil }

// MatchHeader returns a Step predicate matching cmd[0:4] (CLA INS P1 P2)
// against the given bytes.
func MatchHeader(cla, ins, p1, p2 byte) func([]byte) bool {
	return func(cmd []byte) bool {
		return len(cmd) >= 4 && cmd[0] == cla && cmd[1] == ins && cmd[2] == p1 && cmd[3] == p2
	}
}

// MatchIns returns a Step predicate matching only the instruction byte.
func MatchIns(ins byte) func([]byte) bool {
	return func(cmd []byte) bool {
		return len(cmd) >= 2 && cmd[1] == ins
	}
}
