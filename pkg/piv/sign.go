package piv

import (
	"crypto/ecdsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/iso7816"
)

// HashAlg names the digest used by Sign.
type HashAlg int

const (
	HashSHA1 HashAlg = iota
	HashSHA256
	HashSHA384
)

// digestInfoSHA256Prefix is the DER encoding of
// DigestInfo{ AlgorithmIdentifier(sha256), NULL } without the trailing
// digest bytes. The DigestInfo OID is hard-coded to sha256 regardless
// of the hash actually used; this wire-compatibility quirk is
// preserved deliberately, not fixed.
var digestInfoSHA256Prefix = []byte{
	0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20,
}

func digest(h HashAlg, data []byte) []byte {
	switch h {
	case HashSHA1:
		sum := sha1.Sum(data)
		return sum[:]
	case HashSHA384:
		sum := sha512.Sum384(data)
		return sum[:]
	default:
		sum := sha256.Sum256(data)
		return sum[:]
	}
}

func wireInputLen(alg Algorithm) int {
	switch alg {
	case AlgRSA1024:
		return 128
	case AlgRSA2048:
		return 256
	default:
		return 0 // raw digest-length input, filled in by caller
	}
}

// pkcs1v15Pad builds `00 01 FF…FF 00 <DigestInfo(sha256)||digest>`
// left-padded to wireLen. The DigestInfo OID is always sha256 per the
// quirk documented above, independent of digest.
func pkcs1v15Pad(digest []byte, wireLen int) ([]byte, error) {
	infoLen := len(digestInfoSHA256Prefix) + len(digest)
	padLen := wireLen - 3 - infoLen
	if padLen < 8 {
		return nil, fmt.Errorf("piv: wire length %d too small for PKCS#1 v1.5 block", wireLen)
	}
	out := make([]byte, 0, wireLen)
	out = append(out, 0x00, 0x01)
	for i := 0; i < padLen; i++ {
		out = append(out, 0xFF)
	}
	out = append(out, 0x00)
	out = append(out, digestInfoSHA256Prefix...)
	out = append(out, digest...)
	return out, nil
}

// Sign computes a signature against slot's key, selecting hash and
// wire-input length per the slot's algorithm, and applying the
// card-side-hashing shortcut for P-256 when the card advertises a
// matching Yubico algorithm extension.
func Sign(t *Token, id SlotID, data []byte, hash HashAlg) ([]byte, error) {
	if !t.inTransaction {
		panic("piv: Sign called outside a transaction")
	}
	slot := t.GetSlot(id)
	if slot == nil {
		return nil, newErr("sign", KindNoEnt, fmt.Errorf("slot %02X not cached", byte(id)))
	}

	switch slot.Alg {
	case AlgRSA1024, AlgRSA2048:
		d := digest(hash, data)
		block, err := pkcs1v15Pad(d, wireInputLen(slot.Alg))
		if err != nil {
			return nil, newErr("sign", KindInval, err)
		}
		return genAuthSign(t, id, slot.Alg, block)

	case AlgECCP384:
		d := digest(HashSHA384, data)
		return genAuthSign(t, id, slot.Alg, d)

	case AlgECCP256:
		wireAlg := slot.Alg
		input := digest(hash, data)

		if cardSupportsCardSideHash(t, hash) {
			wireAlg = cardSideHashAlg(hash)
			input = data
		}

		sig, err := genAuthSign(t, id, wireAlg, input)
		return sig, err

	default:
		return nil, newErr("sign", KindNotSup, fmt.Errorf("unsupported slot algorithm %02X", byte(slot.Alg)))
	}
}

func cardSupportsCardSideHash(t *Token, hash HashAlg) bool {
	want := cardSideHashAlg(hash)
	for _, a := range t.Algorithms {
		if a == want {
			return true
		}
	}
	return false
}

func cardSideHashAlg(hash HashAlg) Algorithm {
	if hash == HashSHA1 {
		return AlgECCP256SHA1
	}
	return AlgECCP256SHA256
}

// genAuthSign issues GEN AUTH with body `7C <len> 82 00 81 <len> <input>`
// under the given wire algorithm and returns the RESPONSE (0x82) bytes.
func genAuthSign(t *Token, id SlotID, alg Algorithm, input []byte) ([]byte, error) {
	cls := baseClass()
	ins, _ := iso7816.NewInstruction(iso7816.INS_GENERAL_AUTHENTICATE_BER)

	w := tagBuilder()
	w.Push(tagDynAuth)
	w.Push(tagResponse)
	w.Pop()
	w.Push(tagChallArg)
	w.Write(input)
	w.Pop()
	w.Pop()

	resp, _, err := iso7816.TransceiveChain(t, cls, ins, byte(alg), byte(id), w.Buf())
	if err != nil {
		return nil, newErr("sign", KindIO, err)
	}
	if resp.Status == iso7816.SW_ERR_SECURITY_STATUS_NOT_SAT {
		return nil, newErr("sign", KindPerm, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}
	if resp.Status != iso7816.SW_NO_ERROR {
		return nil, newErr("sign", KindInval, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}

	return parseGenAuthResponse(resp.Data)
}

func parseGenAuthResponse(data []byte) ([]byte, error) {
	r := tlvReader(data)
	outer, rerr := r.ReadTag()
	if rerr != nil || outer != tagDynAuth {
		return nil, newErr("sign", KindInval, fmt.Errorf("missing dynamic auth template"))
	}
	inner, rerr := r.ReadTag()
	if rerr != nil || inner != tagResponse {
		return nil, newErr("sign", KindInval, fmt.Errorf("missing response tag"))
	}
	out := make([]byte, r.Rem())
	r.Read(out)
	if rerr := r.End(); rerr != nil {
		return nil, newErr("sign", KindInval, rerr)
	}
	if rerr := r.End(); rerr != nil {
		return nil, newErr("sign", KindInval, rerr)
	}
	return out, nil
}

// SignPrehash emits GEN AUTH with a pre-hashed digest and returns the
// raw signature bytes from the response.
func SignPrehash(t *Token, id SlotID, hashed []byte) ([]byte, error) {
	if !t.inTransaction {
		panic("piv: SignPrehash called outside a transaction")
	}
	slot := t.GetSlot(id)
	if slot == nil {
		return nil, newErr("sign_prehash", KindNoEnt, fmt.Errorf("slot %02X not cached", byte(id)))
	}
	sig, err := genAuthSign(t, id, slot.Alg, hashed)
	if err != nil {
		if pe, ok := err.(*Error); ok && pe.Op == "sign" {
			pe.Op = "sign_prehash"
		}
		return nil, err
	}
	return sig, nil
}

// ECDH emits GEN AUTH with an EXP tag carrying peer's SEC1 uncompressed
// point, returning the raw X-coordinate of the shared point.
func ECDH(t *Token, id SlotID, peerPub *ecdsa.PublicKey) ([]byte, error) {
	if !t.inTransaction {
		panic("piv: ECDH called outside a transaction")
	}
	slot := t.GetSlot(id)
	if slot == nil {
		return nil, newErr("ecdh", KindNoEnt, fmt.Errorf("slot %02X not cached", byte(id)))
	}

	point := elliptic256Marshal(peerPub)

	cls := baseClass()
	ins, _ := iso7816.NewInstruction(iso7816.INS_GENERAL_AUTHENTICATE_BER)

	w := tagBuilder()
	w.Push(tagDynAuth)
	w.Push(tagResponse)
	w.Pop()
	w.Push(tagExp)
	w.Write(point)
	w.Pop()
	w.Pop()

	resp, _, err := iso7816.TransceiveChain(t, cls, ins, byte(slot.Alg), byte(id), w.Buf())
	if err != nil {
		return nil, newErr("ecdh", KindIO, err)
	}
	if resp.Status == iso7816.SW_ERR_SECURITY_STATUS_NOT_SAT {
		return nil, newErr("ecdh", KindPerm, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}
	if resp.Status != iso7816.SW_NO_ERROR {
		return nil, newErr("ecdh", KindInval, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}

	out, perr := parseGenAuthResponse(resp.Data)
	if perr != nil {
		if pe, ok := perr.(*Error); ok {
			pe.Op = "ecdh"
		}
		return nil, perr
	}
	return out, nil
}

func elliptic256Marshal(pub *ecdsa.PublicKey) []byte {
	byteLen := (pub.Curve.Params().BitSize + 7) / 8
	out := make([]byte, 1+2*byteLen)
	out[0] = 0x04
	pub.X.FillBytes(out[1 : 1+byteLen])
	pub.Y.FillBytes(out[1+byteLen:])
	return out
}
