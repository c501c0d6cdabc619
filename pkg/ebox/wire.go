package ebox

import (
	"crypto/ecdsa"
	"fmt"

	"golang.org/x/crypto/ssh"

	"github.com/arekinath/humboldt-go/internal/wire"
	"github.com/arekinath/humboldt-go/pkg/piv"
)

const wireVersion = 1

func marshalECDSAPub(pub *ecdsa.PublicKey) ([]byte, error) {
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return nil, err
	}
	return sshPub.Marshal(), nil
}

func unmarshalECDSAPub(blob []byte) (*ecdsa.PublicKey, error) {
	sshPub, err := ssh.ParsePublicKey(blob)
	if err != nil {
		return nil, err
	}
	cpk, ok := sshPub.(ssh.CryptoPublicKey)
	if !ok {
		return nil, fmt.Errorf("ebox: ssh key type %q has no underlying crypto key", sshPub.Type())
	}
	pub, ok := cpk.CryptoPublicKey().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("ebox: ssh key type %q is not ECDSA", sshPub.Type())
	}
	return pub, nil
}

// ToBinary serializes the box as: version byte, GUID, slot id, the
// two SSH-public-key blobs, cipher/KDF C-strings, then the IV and
// ciphertext, every variable-length field SSH-style length-prefixed.
func (b *Box) ToBinary() ([]byte, error) {
	ephBlob, err := marshalECDSAPub(b.EphemeralPub)
	if err != nil {
		return nil, errf("to_binary", piv.KindInval, err)
	}
	targetBlob, err := marshalECDSAPub(b.TargetPub)
	if err != nil {
		return nil, errf("to_binary", piv.KindInval, err)
	}

	w := wire.NewWriter()
	w.U8(1)
	w.Bytes(b.GUID[:])
	w.U8(byte(b.Slot))
	w.Bytes(ephBlob)
	w.Bytes(targetBlob)
	w.CString(b.Cipher)
	w.CString(b.KDF)
	w.Bytes(b.IV)
	w.Bytes(b.Ciphertext)
	return w.Buf(), nil
}

// FromBinary parses the ToBinary wire format. Any short read, invalid
// version, wrong GUID length, or malformed embedded SSH key yields
// EINVAL, except a version mismatch which yields NOTSUP.
func FromBinary(data []byte) (*Box, error) {
	r := wire.NewReader(data)

	version, err := r.U8()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}
	if version != wireVersion {
		return nil, errf("from_binary", piv.KindNotSup, fmt.Errorf("unsupported box version %d", version))
	}

	guid, err := r.Bytes()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}
	if len(guid) != 16 {
		return nil, errf("from_binary", piv.KindInval, fmt.Errorf("guid length %d != 16", len(guid)))
	}

	slotByte, err := r.U8()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}

	ephBlob, err := r.Bytes()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}
	ephPub, err := unmarshalECDSAPub(ephBlob)
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}

	targetBlob, err := r.Bytes()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}
	targetPub, err := unmarshalECDSAPub(targetBlob)
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}

	cipher, err := r.CString()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}
	kdf, err := r.CString()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}
	iv, err := r.Bytes()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}
	ct, err := r.Bytes()
	if err != nil {
		return nil, errf("from_binary", piv.KindInval, err)
	}

	box := &Box{
		Version:      version,
		Slot:         piv.SlotID(slotByte),
		EphemeralPub: ephPub,
		TargetPub:    targetPub,
		Cipher:       cipher,
		KDF:          kdf,
		IV:           iv,
		Ciphertext:   ct,
	}
	copy(box.GUID[:], guid)
	box.HasGUID = true
	return box, nil
}
