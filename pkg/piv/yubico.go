package piv

import (
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/iso7816"
)

// insGetVer is the Yubico-proprietary GET VERSION instruction (0xFD),
// outside the ISO 7816-4 instruction set.
const insGetVer iso7816.InsCode = 0xFD

// probeYubico issues GET VERSION; on success it fills t.YubicoVer and
// sets t.Yubico. A non-9000 status is NOTSUP, which the enumerator
// treats as "not a YubiKey" rather than an error.
func probeYubico(t *Token) error {
	if !t.inTransaction {
		panic("piv: probeYubico called outside a transaction")
	}

	cls := baseClass()
	ins, _ := iso7816.NewInstruction(insGetVer)
	cmd := iso7816.NewCommandAPDU(cls, ins, 0x00, 0x00, nil, iso7816.MaxShortLe)
	raw, err := cmd.Bytes()
	if err != nil {
		return newErr("probe_yubico", KindInval, err)
	}

	rawResp, terr := t.Transmit(raw)
	if terr != nil {
		return terr
	}
	resp, perr := iso7816.ParseResponseAPDU(rawResp)
	if perr != nil {
		return newErr("probe_yubico", KindInval, perr)
	}
	if resp.Status != iso7816.SW_NO_ERROR {
		return newErr("probe_yubico", KindNotSup, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}
	if len(resp.Data) < 3 {
		return newErr("probe_yubico", KindNotSup, fmt.Errorf("version response too short"))
	}

	t.Yubico = true
	copy(t.YubicoVer[:], resp.Data[:3])
	return nil
}
