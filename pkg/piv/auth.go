package piv

import (
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/cryptoprov"
	"github.com/arekinath/humboldt-go/pkg/iso7816"
)

const (
	tagDynAuth  = 0x7C
	tagWitness  = 0x80
	tagChallArg = 0x81
	tagResponse = 0x82
	tagExp      = 0x85
)

// AuthAdmin performs card-admin (slot 0x9B) challenge-response using
// 3DES-CBC, setting the token's reset-on-txn-end flag on success.
func AuthAdmin(t *Token, key [24]byte) error {
	if !t.inTransaction {
		panic("piv: AuthAdmin called outside a transaction")
	}
	defer cryptoprov.Wipe(key[:])

	cls := baseClass()
	ins, _ := iso7816.NewInstruction(iso7816.INS_GENERAL_AUTHENTICATE_BER)

	reqW := tagBuilder()
	reqW.Push(tagDynAuth)
	reqW.Push(tagChallArg)
	reqW.Pop()
	reqW.Pop()

	resp, _, err := iso7816.TransceiveChain(t, cls, ins, byte(Alg3DES), byte(SlotCardAdmin), reqW.Buf())
	if err != nil {
		return newErr("auth_admin", KindIO, err)
	}
	if resp.Status != iso7816.SW_NO_ERROR {
		return newErr("auth_admin", KindInval, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}

	r := tlvReader(resp.Data)
	outer, rerr := r.ReadTag()
	if rerr != nil || outer != tagDynAuth {
		return newErr("auth_admin", KindInval, fmt.Errorf("missing dynamic auth template"))
	}
	inner, rerr := r.ReadTag()
	if rerr != nil || inner != tagChallArg {
		return newErr("auth_admin", KindInval, fmt.Errorf("missing challenge"))
	}
	var challenge [8]byte
	if n, rerr := r.Read(challenge[:]); rerr != nil || n != 8 {
		return newErr("auth_admin", KindInval, fmt.Errorf("challenge is %d bytes, want 8", n))
	}
	defer cryptoprov.Wipe(challenge[:])
	if rerr := r.End(); rerr != nil {
		return newErr("auth_admin", KindInval, rerr)
	}
	if rerr := r.End(); rerr != nil {
		return newErr("auth_admin", KindInval, rerr)
	}

	response, derr := cryptoprov.TripleDESChallengeResponse(key, challenge)
	if derr != nil {
		return newErr("auth_admin", KindInval, derr)
	}
	defer cryptoprov.Wipe(response[:])

	respW := tagBuilder()
	respW.Push(tagDynAuth)
	respW.Push(tagResponse)
	respW.Write(response[:])
	respW.Pop()
	respW.Pop()

	resp2, _, err := iso7816.TransceiveChain(t, cls, ins, byte(Alg3DES), byte(SlotCardAdmin), respW.Buf())
	if err != nil {
		return newErr("auth_admin", KindIO, err)
	}
	switch resp2.Status {
	case iso7816.SW_NO_ERROR:
		t.reset = true
		return nil
	case iso7816.SW_ERR_INCORRECT_PARAMS_P1P2:
		return newErr("auth_admin", KindNoEnt, fmt.Errorf("sw=%04X", uint16(resp2.Status)))
	case iso7816.SW_ERR_INCORRECT_PARAMS_DATA:
		return newErr("auth_admin", KindAccess, fmt.Errorf("sw=%04X", uint16(resp2.Status)))
	default:
		return newErr("auth_admin", KindInval, fmt.Errorf("sw=%04X", uint16(resp2.Status)))
	}
}

func padPIN(pin string) [8]byte {
	var out [8]byte
	for i := range out {
		out[i] = 0xFF
	}
	for i := 0; i < 8 && i < len(pin) && pin[i] != 0; i++ {
		out[i] = pin[i]
	}
	return out
}

// retryCount extracts the low nibble of a 63Cx status word, or -1 if sw
// is not in that warning family.
func retryCount(sw iso7816.StatusWord) int {
	if sw&0xFFF0 != 0x63C0 {
		return -1
	}
	return int(sw & 0x0F)
}

// VerifyPIN verifies pin against the card's global PIN reference. If
// retries is non-nil and *retries > 0, an empty-body probe VERIFY is
// issued first; if the reported retry count is ≤ *retries, EAGAIN is
// returned without consuming an attempt. An unexpected status word on
// the probe does not abort — the probe is advisory only, and the real
// VERIFY is still sent.
func VerifyPIN(t *Token, pin string, retries *int) error {
	if !t.inTransaction {
		panic("piv: VerifyPIN called outside a transaction")
	}

	cls := baseClass()
	ins, _ := iso7816.NewInstruction(iso7816.INS_VERIFY)

	if retries != nil && *retries > 0 {
		probe := iso7816.NewCommandAPDU(cls, ins, 0x00, 0x80, nil, 0)
		raw, _ := probe.Bytes()
		rawResp, err := t.Transmit(raw)
		if err == nil {
			if presp, perr := iso7816.ParseResponseAPDU(rawResp); perr == nil {
				if rc := retryCount(presp.Status); rc >= 0 {
					if rc <= *retries {
						return newErr("verify_pin", KindAgain, fmt.Errorf("%d retries remain", rc))
					}
				}
			}
		}
	}

	body := padPIN(pin)
	defer cryptoprov.Wipe(body[:])

	cmd := iso7816.NewCommandAPDU(cls, ins, 0x00, 0x80, body[:], 0)
	raw, err := cmd.Bytes()
	if err != nil {
		return newErr("verify_pin", KindInval, err)
	}
	rawResp, terr := t.Transmit(raw)
	if terr != nil {
		return terr
	}
	resp, perr := iso7816.ParseResponseAPDU(rawResp)
	if perr != nil {
		return newErr("verify_pin", KindInval, perr)
	}

	switch {
	case resp.Status == iso7816.SW_NO_ERROR:
		t.reset = true
		return nil
	default:
		if rc := retryCount(resp.Status); rc >= 0 {
			if retries != nil {
				*retries = rc
			}
			return newErr("verify_pin", KindAccess, fmt.Errorf("%d retries remain", rc))
		}
		return newErr("verify_pin", KindInval, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}
}

// ChangePIN sends CHANGE REFERENCE DATA with a 16-byte body (old||new),
// each half padded to 8 bytes with 0xFF.
func ChangePIN(t *Token, oldPIN, newPIN string) error {
	if !t.inTransaction {
		panic("piv: ChangePIN called outside a transaction")
	}

	cls := baseClass()
	ins, _ := iso7816.NewInstruction(iso7816.INS_CHANGE_REFERENCE_DATA)

	oldBody := padPIN(oldPIN)
	newBody := padPIN(newPIN)
	defer cryptoprov.Wipe(oldBody[:])
	defer cryptoprov.Wipe(newBody[:])

	body := make([]byte, 16)
	copy(body[:8], oldBody[:])
	copy(body[8:], newBody[:])
	defer cryptoprov.Wipe(body)

	cmd := iso7816.NewCommandAPDU(cls, ins, 0x00, 0x80, body, 0)
	raw, err := cmd.Bytes()
	if err != nil {
		return newErr("change_pin", KindInval, err)
	}
	rawResp, terr := t.Transmit(raw)
	if terr != nil {
		return terr
	}
	resp, perr := iso7816.ParseResponseAPDU(rawResp)
	if perr != nil {
		return newErr("change_pin", KindInval, perr)
	}

	switch {
	case resp.Status == iso7816.SW_NO_ERROR:
		t.reset = true
		return nil
	default:
		if rc := retryCount(resp.Status); rc >= 0 {
			return newErr("change_pin", KindAccess, fmt.Errorf("%d retries remain", rc))
		}
		return newErr("change_pin", KindInval, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}
}
