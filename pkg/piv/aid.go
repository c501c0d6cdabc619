package piv

import (
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/iso7816"
)

// AID returns the fixed 11-byte PIV application identifier.
func AID() []byte {
	out := make([]byte, len(aid))
	copy(out, aid)
	return out
}

const (
	tagAPT      = 0x61
	tagAID      = 0x4F
	tagAuth     = 0x79
	tagAppLabel = 0x50
	tagURI      = 0x5F50
	tagAlgs     = 0xAC
	tagAlgID    = 0x80
	tagAlgOID   = 0x06
)

// Select issues SELECT AID against the PIV applet and parses its APT
// response, populating t.Algorithms.
func Select(t *Token) error {
	if !t.inTransaction {
		panic("piv: Select called outside a transaction")
	}

	cls := baseClass()
	cmd := iso7816.SelectByAID(cls, AID())
	raw, err := cmd.Bytes()
	if err != nil {
		return newErr("select", KindInval, err)
	}

	rawResp, err := t.Transmit(raw)
	if err != nil {
		return err
	}
	resp, perr := iso7816.ParseResponseAPDU(rawResp)
	if perr != nil {
		return newErr("select", KindInval, perr)
	}
	if resp.Status != iso7816.SW_NO_ERROR {
		return newErr("select", KindNoEnt, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}

	return parseAPT(t, resp.Data)
}

func parseAPT(t *Token, data []byte) error {
	r := tlvReader(data)
	tag, err := r.ReadTag()
	if err != nil {
		return newErr("select", KindInval, err)
	}
	if tag != tagAPT {
		return newErr("select", KindNotSup, fmt.Errorf("unexpected outer tag %02X", tag))
	}

	var algs []Algorithm
	for !r.AtEnd() {
		inner, err := r.ReadTag()
		if err != nil {
			return newErr("select", KindInval, err)
		}
		switch inner {
		case tagAID, tagAuth, tagAppLabel, tagURI:
			if err := r.Skip(); err != nil {
				return newErr("select", KindInval, err)
			}
		case tagAlgs:
			for !r.AtEnd() {
				algTag, err := r.ReadTag()
				if err != nil {
					return newErr("select", KindInval, err)
				}
				switch algTag {
				case tagAlgID:
					b, err := r.ReadByte()
					if err != nil {
						return newErr("select", KindInval, err)
					}
					algs = append(algs, Algorithm(b))
				case tagAlgOID:
					if err := r.Skip(); err != nil {
						return newErr("select", KindInval, err)
					}
				default:
					return newErr("select", KindNotSup, fmt.Errorf("unknown ALGS sub-tag %02X", algTag))
				}
				if err := r.End(); err != nil {
					return newErr("select", KindInval, err)
				}
			}
		default:
			return newErr("select", KindNotSup, fmt.Errorf("unknown APT tag %02X", inner))
		}
		if err := r.End(); err != nil {
			return newErr("select", KindInval, err)
		}
	}
	if err := r.End(); err != nil {
		return newErr("select", KindInval, err)
	}

	t.Algorithms = algs
	return nil
}
