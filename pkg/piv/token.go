// Package piv implements the PIV application state machine and data
// model: application selection, CHUID and certificate parsing, key
// generation, PIN verification, admin authentication, and sign/ECDH
// operations, issued over the APDU/TLV primitives in pkg/iso7816 and
// pkg/tlv.
package piv

import (
	"crypto/x509"

	"github.com/arekinath/humboldt-go/pkg/iso7816"
	"github.com/arekinath/humboldt-go/pkg/pcsc"
)

// SlotID identifies one of the PIV key containers.
type SlotID byte

const (
	SlotAuthentication SlotID = 0x9A
	SlotSignature      SlotID = 0x9C
	SlotKeyManagement  SlotID = 0x9D
	SlotCardAuth       SlotID = 0x9E
	SlotCardAdmin      SlotID = 0x9B
)

// Algorithm identifies a PIV key algorithm, as advertised in the APT
// response and used by GEN ASYMMETRIC KEY PAIR / GEN AUTH.
type Algorithm byte

const (
	AlgRSA1024         Algorithm = 0x06
	AlgRSA2048         Algorithm = 0x07
	AlgECCP256         Algorithm = 0x11
	AlgECCP384         Algorithm = 0x14
	AlgECCP256SHA1     Algorithm = 0xF0 // Yubico extension
	AlgECCP256SHA256   Algorithm = 0xF1 // Yubico extension
	Alg3DES            Algorithm = 0x03
)

// aid is the fixed 11-byte PIV application identifier.
var aid = []byte{0xA0, 0x00, 0x00, 0x03, 0x08, 0x00, 0x00, 0x10, 0x00, 0x01, 0x00}

// Slot caches the certificate/public-key material read from one PIV key
// container. It is created lazily by ReadCert, owned by the enclosing
// Token, and discarded when the token is released.
type Slot struct {
	ID      SlotID
	Alg     Algorithm
	Cert    *x509.Certificate
	Subject string
	SSHPub  []byte // SSH public-key blob form (collaborator d)
}

// Token represents one connected PIV card. The InTransaction/Reset
// invariants are enforced by txn.go and auth.go, not by this type
// itself.
type Token struct {
	ReaderName string
	card       pcsc.Card
	protocol   pcsc.Protocol

	GUID       [16]byte
	HasGUID    bool
	Algorithms []Algorithm
	Yubico     bool
	YubicoVer  [3]byte

	inTransaction bool
	reset         bool

	slots map[SlotID]*Slot
}

// newToken wraps a connected card handle; it does not select the PIV
// applet or touch the card. Use Enumerate to build fully-probed tokens.
func newToken(reader string, card pcsc.Card) *Token {
	return &Token{
		ReaderName: reader,
		card:       card,
		protocol:   card.ActiveProtocol(),
		slots:      make(map[SlotID]*Slot),
	}
}

// InTransaction reports whether the token currently holds an exclusive
// card transaction.
func (t *Token) InTransaction() bool { return t.inTransaction }

// Transmit implements iso7816.Transmitter over the underlying PC/SC
// card handle. It panics if called outside a transaction: every caller
// in this package must bracket APDU traffic with TxnBegin/TxnEnd first.
func (t *Token) Transmit(cmd []byte) ([]byte, error) {
	if !t.inTransaction {
		panic("piv: Transmit called outside a transaction")
	}
	raw, err := t.card.Transmit(cmd)
	for i := range cmd {
		cmd[i] = 0
	}
	if err != nil {
		return nil, newErr("transmit", KindIO, err)
	}
	return raw, nil
}

// GetSlot returns the cached slot entry for id, or nil if it has not
// been read yet.
func (t *Token) GetSlot(id SlotID) *Slot {
	return t.slots[id]
}

func (t *Token) putSlot(s *Slot) {
	t.slots[s.ID] = s
}

func baseClass() iso7816.Class {
	cls, _ := iso7816.NewClass(0x00)
	return cls
}
