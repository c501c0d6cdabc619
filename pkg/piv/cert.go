package piv

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/iso7816"
	"golang.org/x/crypto/ssh"
)

// object ids for the slot certificate GET DATA calls.
var certObjTag = map[SlotID][]byte{
	SlotAuthentication: {0x5F, 0xC1, 0x05},
	SlotSignature:      {0x5F, 0xC1, 0x0A},
	SlotKeyManagement:  {0x5F, 0xC1, 0x0B},
	SlotCardAuth:       {0x5F, 0xC1, 0x01},
}

const (
	certOuter    = 0x53
	certInnDER   = 0x70
	certInnInfo  = 0x71
	certCIX509   = 0x04
	certCompMask = 0x03
	certCompNone = 0x00
)

// readOrder is the slot scan order used by ReadAllCerts.
var readOrder = []SlotID{SlotCardAuth, SlotAuthentication, SlotSignature, SlotKeyManagement}

// ReadCert issues GET DATA for slot's certificate object, validates and
// parses it, and replaces the cached Slot entry on success.
func ReadCert(t *Token, id SlotID) error {
	if !t.inTransaction {
		panic("piv: ReadCert called outside a transaction")
	}
	objTag, ok := certObjTag[id]
	if !ok {
		return newErr("read_cert", KindInval, fmt.Errorf("unknown slot %02X", byte(id)))
	}

	resp, err := getData(t, "read_cert", objTag)
	if err != nil {
		return err
	}

	r := tlvReader(resp)
	outer, rerr := r.ReadTag()
	if rerr != nil {
		return newErr("read_cert", KindInval, rerr)
	}
	if outer != certOuter {
		return newErr("read_cert", KindNotSup, fmt.Errorf("unexpected outer tag %02X", outer))
	}

	var der []byte
	var info byte
	haveInfo := false
	for !r.AtEnd() {
		inner, rerr := r.ReadTag()
		if rerr != nil {
			return newErr("read_cert", KindInval, rerr)
		}
		switch inner {
		case certInnDER:
			der = make([]byte, r.Rem())
			if _, rerr := r.Read(der); rerr != nil {
				return newErr("read_cert", KindInval, rerr)
			}
		case certInnInfo:
			b, rerr := r.ReadByte()
			if rerr != nil {
				return newErr("read_cert", KindInval, rerr)
			}
			info = b
			haveInfo = true
		default:
			if rerr := r.Skip(); rerr != nil {
				return newErr("read_cert", KindInval, rerr)
			}
		}
		if rerr := r.End(); rerr != nil {
			return newErr("read_cert", KindInval, rerr)
		}
	}
	if rerr := r.End(); rerr != nil {
		return newErr("read_cert", KindInval, rerr)
	}

	if haveInfo {
		if info&certCIX509 != 0 {
			return newErr("read_cert", KindNotSup, fmt.Errorf("certinfo X509 bit set"))
		}
		if info&certCompMask != certCompNone {
			return newErr("read_cert", KindNotSup, fmt.Errorf("compressed certificate (certinfo=%02X)", info))
		}
	}
	if len(der) == 0 {
		return newErr("read_cert", KindNotSup, fmt.Errorf("missing certificate body"))
	}

	cert, perr := x509.ParseCertificate(der)
	if perr != nil {
		return newErr("read_cert", KindInval, perr)
	}

	alg, sshPub, aerr := classifySlotKey(cert)
	if aerr != nil {
		return aerr
	}

	t.putSlot(&Slot{
		ID:      id,
		Alg:     alg,
		Cert:    cert,
		Subject: cert.Subject.String(),
		SSHPub:  sshPub,
	})
	return nil
}

// classifySlotKey infers the PIV algorithm identifier from the parsed
// public-key type and size, and builds the SSH public-key blob form.
// Unexpected key shapes are reported as NOTSUP rather than crashing.
func classifySlotKey(cert *x509.Certificate) (Algorithm, []byte, error) {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		var alg Algorithm
		switch pub.N.BitLen() {
		case 1024:
			alg = AlgRSA1024
		case 2048:
			alg = AlgRSA2048
		default:
			return 0, nil, newErr("read_cert", KindNotSup, fmt.Errorf("unsupported RSA modulus size %d", pub.N.BitLen()))
		}
		sshPub, err := ssh.NewPublicKey(pub)
		if err != nil {
			return 0, nil, newErr("read_cert", KindInval, err)
		}
		return alg, sshPub.Marshal(), nil
	case *ecdsa.PublicKey:
		var alg Algorithm
		switch pub.Curve {
		case elliptic.P256():
			alg = AlgECCP256
		case elliptic.P384():
			alg = AlgECCP384
		default:
			return 0, nil, newErr("read_cert", KindNotSup, fmt.Errorf("unsupported EC curve"))
		}
		sshPub, err := ssh.NewPublicKey(pub)
		if err != nil {
			return 0, nil, newErr("read_cert", KindInval, err)
		}
		return alg, sshPub.Marshal(), nil
	default:
		return 0, nil, newErr("read_cert", KindNotSup, fmt.Errorf("unsupported public key type %T", pub))
	}
}

// ReadAllCerts reads slots in the fixed order 9E, 9A, 9C, 9D. NOENT and
// NOTSUP from any single slot are swallowed; any other error aborts.
func ReadAllCerts(t *Token) error {
	for _, id := range readOrder {
		err := ReadCert(t, id)
		if err == nil {
			continue
		}
		pe, ok := err.(*Error)
		if ok && (pe.Kind == KindNoEnt || pe.Kind == KindNotSup) {
			continue
		}
		return err
	}
	return nil
}

// WriteFile writes a single PIV data object via PUT DATA with body
// `5C <tag> 53 <data>`, using command chaining for bodies over 255 bytes.
func WriteFile(t *Token, objTag []byte, data []byte) error {
	if !t.inTransaction {
		panic("piv: WriteFile called outside a transaction")
	}

	cls := baseClass()
	ins, _ := iso7816.NewInstruction(iso7816.INS_PUT_DATA)

	w := tagBuilder()
	w.Push(0x5C)
	w.Write(objTag)
	w.Pop()
	w.Push(certOuter)
	w.Write(data)
	w.Pop()

	resp, _, err := iso7816.TransceiveChain(t, cls, ins, 0x3F, 0xFF, w.Buf())
	if err != nil {
		return newErr("write_file", KindIO, err)
	}
	switch resp.Status {
	case iso7816.SW_NO_ERROR:
		return nil
	case iso7816.SW_ERR_NOT_ENOUGH_MEMORY:
		return newErr("write_file", KindNoMem, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	case iso7816.SW_ERR_SECURITY_STATUS_NOT_SAT:
		return newErr("write_file", KindPerm, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	case iso7816.SW_ERR_FUNC_NOT_SUPPORTED:
		return newErr("write_file", KindNoEnt, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	default:
		return newErr("write_file", KindInval, fmt.Errorf("sw=%04X", uint16(resp.Status)))
	}
}

// WriteCert builds the `70 <der> 71 <info>` certificate body and
// delegates to WriteFile.
func WriteCert(t *Token, id SlotID, certDER []byte, flags byte) error {
	objTag, ok := certObjTag[id]
	if !ok {
		return newErr("write_cert", KindInval, fmt.Errorf("unknown slot %02X", byte(id)))
	}

	w := tagBuilder()
	w.Push(certInnDER)
	w.Write(certDER)
	w.Pop()
	w.Push(certInnInfo)
	w.WriteByte(flags)
	w.Pop()

	return WriteFile(t, objTag, w.Buf())
}
