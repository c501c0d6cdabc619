package piv

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/arekinath/humboldt-go/pkg/iso7816"
)

const (
	tagGenAuthBody = 0xAC
	tagGenAlgID    = 0x80
	tagGenAuthResp = 0x7F49
	tagRSAModulus  = 0x81
	tagRSAExponent = 0x82
	tagECCPoint    = 0x86
)

// Generate issues GEN ASYMMETRIC KEY PAIR for slot under alg and returns
// the resulting public key (*rsa.PublicKey or *ecdsa.PublicKey).
func Generate(t *Token, id SlotID, alg Algorithm) (interface{}, error) {
	if !t.inTransaction {
		panic("piv: Generate called outside a transaction")
	}

	cls := baseClass()
	ins, _ := iso7816.NewInstruction(iso7816.INS_GENERATE_ASYMMETRIC_KEY_PAIR)

	w := tagBuilder()
	w.Push(tagGenAuthBody)
	w.Push(tagGenAlgID)
	w.WriteByte(byte(alg))
	w.Pop()
	w.Pop()

	resp, _, err := iso7816.TransceiveChain(t, cls, ins, 0x00, byte(id), w.Buf())
	if err != nil {
		return nil, newErr("generate", KindIO, err)
	}
	if resp.Status == iso7816.SW_ERR_SECURITY_STATUS_NOT_SAT {
		return nil, newErr("generate", KindPerm, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}
	if resp.Status != iso7816.SW_NO_ERROR {
		return nil, newErr("generate", KindInval, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}

	r := tlvReader(resp.Data)
	outer, rerr := r.ReadTag()
	if rerr != nil || outer != tagGenAuthResp {
		return nil, newErr("generate", KindInval, fmt.Errorf("unexpected outer tag"))
	}

	var (
		modulus, exponent, point []byte
	)
	for !r.AtEnd() {
		inner, rerr := r.ReadTag()
		if rerr != nil {
			return nil, newErr("generate", KindInval, rerr)
		}
		switch inner {
		case tagRSAModulus:
			modulus = make([]byte, r.Rem())
			r.Read(modulus)
		case tagRSAExponent:
			exponent = make([]byte, r.Rem())
			r.Read(exponent)
		case tagECCPoint:
			point = make([]byte, r.Rem())
			r.Read(point)
		default:
			r.Skip()
		}
		if rerr := r.End(); rerr != nil {
			return nil, newErr("generate", KindInval, rerr)
		}
	}
	if rerr := r.End(); rerr != nil {
		return nil, newErr("generate", KindInval, rerr)
	}

	switch alg {
	case AlgRSA1024, AlgRSA2048:
		if len(modulus) == 0 || len(exponent) == 0 {
			return nil, newErr("generate", KindInval, fmt.Errorf("missing RSA fields"))
		}
		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(modulus),
			E: int(new(big.Int).SetBytes(exponent).Int64()),
		}, nil
	case AlgECCP256, AlgECCP384:
		curve := ellipticCurveFor(alg)
		x, y := elliptic.Unmarshal(curve, point)
		if x == nil {
			return nil, newErr("generate", KindInval, fmt.Errorf("EC point not on curve"))
		}
		return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
	default:
		return nil, newErr("generate", KindNotSup, fmt.Errorf("unsupported algorithm %02X", byte(alg)))
	}
}

func ellipticCurveFor(alg Algorithm) elliptic.Curve {
	if alg == AlgECCP384 {
		return elliptic.P384()
	}
	return elliptic.P256()
}
