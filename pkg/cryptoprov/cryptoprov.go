// Package cryptoprov supplies the primitive-crypto provider collaborator:
// block ciphers, AEAD, hashes, ECDH point multiplication and P-256
// keypair generation. The PIV and ebox packages take their AEAD
// ciphers, KDF hashes, P-256 ECDH and the 3DES admin response from
// here; they still import standard-library crypto packages (ecdsa,
// x509, rand, the hash packages) directly.
package cryptoprov

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherSpec describes one AEAD construction nameable in an ebox:
// its key/IV/tag sizes and its seal/open functions. No associated
// data is ever used.
type CipherSpec struct {
	Name      string
	KeyLen    int
	IVLen     int
	AuthLen   int
	BlockSize int

	Seal func(key, iv, plaintext []byte) ([]byte, error)
	Open func(key, iv, ciphertext []byte) ([]byte, error)
}

// ErrAuth is returned by an Open implementation when the AEAD tag does
// not verify.
var ErrAuth = fmt.Errorf("cryptoprov: authentication failed")

func chacha20poly1305Spec() CipherSpec {
	return CipherSpec{
		Name:      "chacha20-poly1305",
		KeyLen:    chacha20poly1305.KeySize,
		IVLen:     chacha20poly1305.NonceSize,
		AuthLen:   chacha20poly1305.Overhead,
		BlockSize: 1,
		Seal: func(key, iv, plaintext []byte) ([]byte, error) {
			aead, err := chacha20poly1305.New(key)
			if err != nil {
				return nil, err
			}
			return aead.Seal(nil, iv, plaintext, nil), nil
		},
		Open: func(key, iv, ciphertext []byte) ([]byte, error) {
			aead, err := chacha20poly1305.New(key)
			if err != nil {
				return nil, err
			}
			pt, err := aead.Open(nil, iv, ciphertext, nil)
			if err != nil {
				return nil, ErrAuth
			}
			return pt, nil
		},
	}
}

func aes256gcmSpec() CipherSpec {
	return CipherSpec{
		Name:      "aes256-gcm",
		KeyLen:    32,
		IVLen:     12,
		AuthLen:   16,
		BlockSize: aes.BlockSize,
		Seal: func(key, iv, plaintext []byte) ([]byte, error) {
			block, err := aes.NewCipher(key)
			if err != nil {
				return nil, err
			}
			aead, err := cipher.NewGCM(block)
			if err != nil {
				return nil, err
			}
			return aead.Seal(nil, iv, plaintext, nil), nil
		},
		Open: func(key, iv, ciphertext []byte) ([]byte, error) {
			block, err := aes.NewCipher(key)
			if err != nil {
				return nil, err
			}
			aead, err := cipher.NewGCM(block)
			if err != nil {
				return nil, err
			}
			pt, err := aead.Open(nil, iv, ciphertext, nil)
			if err != nil {
				return nil, ErrAuth
			}
			return pt, nil
		},
	}
}

// Ciphers holds every AEAD construction an ebox can name.
var Ciphers = map[string]CipherSpec{
	"chacha20-poly1305": chacha20poly1305Spec(),
	"aes256-gcm":         aes256gcmSpec(),
}

// HashSpec names a KDF hash usable by an ebox.
type HashSpec struct {
	Name   string
	Size   int
	Sum    func([]byte) []byte
}

// Hashes holds every KDF hash an ebox can name.
var Hashes = map[string]HashSpec{
	"sha256": {
		Name: "sha256",
		Size: sha256.Size,
		Sum: func(b []byte) []byte {
			sum := sha256.Sum256(b)
			return sum[:]
		},
	},
	"sha512": {
		Name: "sha512",
		Size: sha512.Size,
		Sum: func(b []byte) []byte {
			sum := sha512.Sum512(b)
			return sum[:]
		},
	},
}

// GenerateP256 creates a fresh ephemeral P-256 keypair for ECDH.
func GenerateP256() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// ECDHP256 computes the raw X-coordinate shared secret between priv and
// pub, matching what a PIV card's GEN AUTH/ECDH operation returns. The
// caller is responsible for wiping the result after use.
func ECDHP256(priv *ecdsa.PrivateKey, pub *ecdsa.PublicKey) ([]byte, error) {
	curve := ecdh.P256()

	privBytes := priv.D.FillBytes(make([]byte, 32))
	ecdhPriv, err := curve.NewPrivateKey(privBytes)
	for i := range privBytes {
		privBytes[i] = 0
	}
	if err != nil {
		return nil, fmt.Errorf("cryptoprov: invalid ECDH private key: %w", err)
	}

	pubBytes := elliptic.Marshal(elliptic.P256(), pub.X, pub.Y)
	ecdhPub, err := curve.NewPublicKey(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("cryptoprov: invalid peer public key: %w", err)
	}

	shared, err := ecdhPriv.ECDH(ecdhPub)
	if err != nil {
		return nil, fmt.Errorf("cryptoprov: ECDH failed: %w", err)
	}
	return shared, nil
}

// Wipe overwrites b with zeros. It is used on every sensitive buffer
// (PINs, admin keys, shared secrets, plaintexts) before it is released,
// on every exit path including error paths.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// TripleDESChallengeResponse encrypts an 8-byte challenge under a 24-byte
// 3DES key with a zero IV and no padding, as required by the PIV
// card-admin challenge/response authentication step. The key and
// challenge are not modified; the caller wipes both after use.
func TripleDESChallengeResponse(key [24]byte, challenge [8]byte) ([8]byte, error) {
	block, err := des.NewTripleDESCipher(key[:])
	if err != nil {
		return [8]byte{}, err
	}
	iv := make([]byte, des.BlockSize)
	enc := cipher.NewCBCEncrypter(block, iv)
	var out [8]byte
	enc.CryptBlocks(out[:], challenge[:])
	return out, nil
}
