package piv

import (
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/iso7816"
)

// tagCHUID is the GET DATA object id for the CHUID object (`5C 03 5F C1 02`).
var tagCHUID = []byte{0x5F, 0xC1, 0x02}

const (
	chuidOuter   = 0x53
	chuidInnGUID = 0x34
)

// ReadCHUID issues GET DATA for the CHUID object and copies the 16-byte
// GUID into t.GUID. A missing CHUID (6A82) is reported as NOENT; the
// caller treats that as "proceed with no GUID" during enumeration.
func ReadCHUID(t *Token) error {
	if !t.inTransaction {
		panic("piv: ReadCHUID called outside a transaction")
	}

	resp, err := getData(t, "read_chuid", tagCHUID)
	if err != nil {
		return err
	}

	r := tlvReader(resp)
	outer, rerr := r.ReadTag()
	if rerr != nil {
		return newErr("read_chuid", KindInval, rerr)
	}
	if outer != chuidOuter {
		return newErr("read_chuid", KindNotSup, fmt.Errorf("unexpected outer tag %02X", outer))
	}

	for !r.AtEnd() {
		inner, rerr := r.ReadTag()
		if rerr != nil {
			return newErr("read_chuid", KindInval, rerr)
		}
		if inner == chuidInnGUID {
			var guid [16]byte
			n, rerr := r.Read(guid[:])
			if rerr != nil || n != 16 {
				return newErr("read_chuid", KindInval, fmt.Errorf("GUID field is %d bytes, want 16", n))
			}
			t.GUID = guid
			t.HasGUID = true
		}
		if rerr := r.Skip(); rerr != nil {
			return newErr("read_chuid", KindInval, rerr)
		}
		if rerr := r.End(); rerr != nil {
			return newErr("read_chuid", KindInval, rerr)
		}
	}
	return r.End()
}

// getData issues GET DATA for objTag (`5C <len> <objTag> ...`) and
// returns the decoded response body, mapping status words through
// swToErr. objTag is wrapped in a `5C` outer tag.
func getData(t *Token, op string, objTag []byte) ([]byte, error) {
	cls := baseClass()
	ins, _ := iso7816.NewInstruction(iso7816.INS_GET_DATA)

	w := tagBuilder()
	w.Push(0x5C)
	w.Write(objTag)
	w.Pop()

	resp, _, err := iso7816.TransceiveChain(t, cls, ins, 0x3F, 0xFF, w.Buf())
	if err != nil {
		return nil, newErr(op, KindIO, err)
	}
	if resp.Status != iso7816.SW_NO_ERROR {
		return nil, swToErr(op, uint16(resp.Status), false)
	}
	return resp.Data, nil
}
