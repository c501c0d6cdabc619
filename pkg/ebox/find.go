package ebox

import (
	"bytes"
	"crypto/ecdsa"

	"github.com/arekinath/humboldt-go/pkg/piv"
)

// fallbackSlot is the key-management slot FindToken scans across every
// token when a box names no specific slot. Only the sentinel values 0
// and 0xFF trigger the fallback, nothing else.
const fallbackSlot = piv.SlotKeyManagement

func isFallbackSlot(slot piv.SlotID) bool {
	return slot == 0x00 || slot == 0xFF
}

// FindToken locates the token and slot a box was sealed against, among
// the tokens owned by the caller. A GUID match takes priority and
// reads the cert on demand if it is not yet cached; on a GUID miss,
// and only when the box names the sentinel slot 0 or 0xFF, every
// token's key-management slot (9D) already cached is checked for a
// matching public key. No card traffic is issued against any token
// that does not end up the match.
func FindToken(tokens []*piv.Token, box *Box) (*piv.Token, *piv.Slot, error) {
	if box.HasGUID {
		for _, t := range tokens {
			if !t.HasGUID || !bytes.Equal(t.GUID[:], box.GUID[:]) {
				continue
			}
			return resolveSlot(t, box.Slot)
		}
	}

	if isFallbackSlot(box.Slot) {
		for _, t := range tokens {
			slot := t.GetSlot(fallbackSlot)
			if slot == nil || slot.Cert == nil {
				continue
			}
			pub, ok := slot.Cert.PublicKey.(*ecdsa.PublicKey)
			if !ok || !pubKeysEqual(pub, box.TargetPub) {
				continue
			}
			return t, slot, nil
		}
	}

	return nil, nil, errf("find_token", piv.KindNoEnt, nil)
}

func resolveSlot(t *piv.Token, id piv.SlotID) (*piv.Token, *piv.Slot, error) {
	if slot := t.GetSlot(id); slot != nil {
		return t, slot, nil
	}

	if err := piv.TxnBegin(t); err != nil {
		return nil, nil, err
	}
	readErr := piv.ReadCert(t, id)
	endErr := piv.TxnEnd(t)
	if readErr != nil {
		return nil, nil, readErr
	}
	if endErr != nil {
		return nil, nil, endErr
	}

	slot := t.GetSlot(id)
	if slot == nil {
		return nil, nil, errf("find_token", piv.KindNoEnt, nil)
	}
	return t, slot, nil
}

func pubKeysEqual(a, b *ecdsa.PublicKey) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Curve == b.Curve && a.X.Cmp(b.X) == 0 && a.Y.Cmp(b.Y) == 0
}
