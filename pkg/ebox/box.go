// Package ebox implements an ECDH sealed-envelope format: an
// ephemeral-static Diffie-Hellman key agreement against a token's (or
// a bare private key's) P-256 public key, followed by an AEAD-encrypted
// payload. It depends on pkg/piv for the "seal"/"open"
// forms that talk to a live card, and on pkg/cryptoprov for every
// cryptographic primitive, the same collaborator split pkg/piv itself
// uses.
package ebox

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	"github.com/arekinath/humboldt-go/pkg/cryptoprov"
	"github.com/arekinath/humboldt-go/pkg/piv"
)

// defaultCipher and defaultKDF are the ciphers used when the caller
// leaves cipherName/kdfName empty.
const (
	defaultCipher = "chacha20-poly1305"
	defaultKDF    = "sha512"
)

// Box is a sealed envelope: an ephemeral P-256 public key, the
// recipient's static public key, and an AEAD ciphertext recoverable by
// whoever holds the recipient's private key.
type Box struct {
	Version      byte
	GUID         [16]byte
	HasGUID      bool
	Slot         piv.SlotID
	EphemeralPub *ecdsa.PublicKey
	TargetPub    *ecdsa.PublicKey
	Cipher       string
	KDF          string
	IV           []byte
	Ciphertext   []byte // ciphertext + AEAD tag
}

func errf(op string, kind piv.Kind, err error) *piv.Error {
	return &piv.Error{Op: op, Kind: kind, Err: err}
}

func deriveKey(shared []byte, kdfName string, keyLen int) ([]byte, error) {
	kdf, ok := cryptoprov.Hashes[kdfName]
	if !ok {
		return nil, errf("ebox_kdf", piv.KindNotSup, fmt.Errorf("unknown kdf %q", kdfName))
	}
	sum := kdf.Sum(shared)
	if keyLen > len(sum) {
		return nil, errf("ebox_kdf", piv.KindNotSup, fmt.Errorf("kdf %q too short for cipher key length %d", kdfName, keyLen))
	}
	return sum[:keyLen], nil
}

// padPlaintext pads data to a multiple of blockSize with bytes 1,2,3,...
// wrapped mod 256, wiping the caller's original buffer once the padded
// copy exists.
func padPlaintext(data []byte, blockSize int) []byte {
	if blockSize <= 1 {
		out := append([]byte{}, data...)
		cryptoprov.Wipe(data)
		return out
	}
	padLen := blockSize - (len(data) % blockSize)
	if padLen == blockSize {
		padLen = 0
	}
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := 0; i < padLen; i++ {
		out[len(data)+i] = byte((i + 1) % 256)
	}
	cryptoprov.Wipe(data)
	return out
}

// SealOffline generates a fresh ephemeral P-256 keypair, agrees a
// shared secret with targetPub, and
// AEAD-encrypts plaintext under a key derived from that secret.
// plaintext is wiped before return regardless of outcome.
func SealOffline(targetPub *ecdsa.PublicKey, plaintext []byte, cipherName, kdfName string) (*Box, error) {
	if cipherName == "" {
		cipherName = defaultCipher
	}
	if kdfName == "" {
		kdfName = defaultKDF
	}
	spec, ok := cryptoprov.Ciphers[cipherName]
	if !ok {
		cryptoprov.Wipe(plaintext)
		return nil, errf("seal_offline", piv.KindNotSup, fmt.Errorf("unknown cipher %q", cipherName))
	}

	ephPriv, err := cryptoprov.GenerateP256()
	if err != nil {
		cryptoprov.Wipe(plaintext)
		return nil, errf("seal_offline", piv.KindIO, err)
	}

	shared, err := cryptoprov.ECDHP256(ephPriv, targetPub)
	if err != nil {
		cryptoprov.Wipe(plaintext)
		return nil, errf("seal_offline", piv.KindInval, err)
	}
	defer cryptoprov.Wipe(shared)

	key, err := deriveKey(shared, kdfName, spec.KeyLen)
	if err != nil {
		cryptoprov.Wipe(plaintext)
		return nil, err
	}
	defer cryptoprov.Wipe(key)

	iv := make([]byte, spec.IVLen)
	if _, err := rand.Read(iv); err != nil {
		cryptoprov.Wipe(plaintext)
		return nil, errf("seal_offline", piv.KindIO, err)
	}

	padded := padPlaintext(plaintext, spec.BlockSize)
	defer cryptoprov.Wipe(padded)

	ct, err := spec.Seal(key, iv, padded)
	if err != nil {
		return nil, errf("seal_offline", piv.KindInval, err)
	}

	return &Box{
		Version:      1,
		TargetPub:    targetPub,
		EphemeralPub: &ephPriv.PublicKey,
		Cipher:       cipherName,
		KDF:          kdfName,
		IV:           iv,
		Ciphertext:   ct,
	}, nil
}

// Seal calls SealOffline against the slot's cached public key, then
// stamps the box with the token's identity.
func Seal(t *piv.Token, slot *piv.Slot, plaintext []byte, cipherName, kdfName string) (*Box, error) {
	pub, ok := slot.Cert.PublicKey.(*ecdsa.PublicKey)
	if !ok {
		cryptoprov.Wipe(plaintext)
		return nil, errf("seal", piv.KindNotSup, fmt.Errorf("slot %02X key is not ECDSA", byte(slot.ID)))
	}

	box, err := SealOffline(pub, plaintext, cipherName, kdfName)
	if err != nil {
		return nil, err
	}
	box.GUID = t.GUID
	box.HasGUID = t.HasGUID
	box.Slot = slot.ID
	return box, nil
}

// Open requires an authenticated transaction (the caller has already
// run AuthAdmin/VerifyPIN as the slot's policy requires) and recovers
// the shared secret via the token's own ECDH operation rather than a
// local private key.
func Open(t *piv.Token, box *Box) ([]byte, error) {
	shared, err := piv.ECDH(t, box.Slot, box.EphemeralPub)
	if err != nil {
		return nil, err
	}
	defer cryptoprov.Wipe(shared)
	return decrypt(box, shared)
}

// OpenOffline computes the shared secret locally from a supplied EC
// private key rather than a live card. Like Open, it performs no
// padding verification — the caller is responsible for stripping any
// trailing pad bytes itself.
func OpenOffline(priv *ecdsa.PrivateKey, box *Box) ([]byte, error) {
	shared, err := cryptoprov.ECDHP256(priv, box.EphemeralPub)
	if err != nil {
		return nil, errf("open_offline", piv.KindInval, err)
	}
	defer cryptoprov.Wipe(shared)
	return decrypt(box, shared)
}

func decrypt(box *Box, shared []byte) ([]byte, error) {
	spec, ok := cryptoprov.Ciphers[box.Cipher]
	if !ok {
		return nil, errf("open", piv.KindNotSup, fmt.Errorf("unknown cipher %q", box.Cipher))
	}

	key, err := deriveKey(shared, box.KDF, spec.KeyLen)
	if err != nil {
		return nil, err
	}
	defer cryptoprov.Wipe(key)

	pt, err := spec.Open(key, box.IV, box.Ciphertext)
	if err != nil {
		return nil, errf("open", piv.KindBadMsg, err)
	}
	return pt, nil
}
