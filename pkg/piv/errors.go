package piv

import "fmt"

// Kind enumerates the error kinds surfaced by the PIV core. Callers
// branch on Kind via errors.Is/errors.As rather than comparing strings
// or raw status words.
type Kind int

const (
	// KindIO is a transport failure talking to the reader or card.
	KindIO Kind = iota
	// KindNoEnt is "no such object/slot/file" (e.g. 6A82/6A86/6A81).
	KindNoEnt
	// KindNotSup is a card capability gap or an unsupported wire format
	// (e.g. a compressed or gzip certificate, an unrecognized mandatory
	// tag).
	KindNotSup
	// KindInval is malformed input or an unexpected status word.
	KindInval
	// KindPerm is "security status not satisfied" (6982): PIN or admin
	// auth has not been presented.
	KindPerm
	// KindAccess is a bad PIN or bad admin key (63CX).
	KindAccess
	// KindAgain is "too few PIN retries remain to safely attempt".
	KindAgain
	// KindNoMem is card storage exhaustion (6A84).
	KindNoMem
	// KindBadMsg is an AEAD authentication failure.
	KindBadMsg
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IO"
	case KindNoEnt:
		return "NOENT"
	case KindNotSup:
		return "NOTSUP"
	case KindInval:
		return "EINVAL"
	case KindPerm:
		return "EPERM"
	case KindAccess:
		return "EACCES"
	case KindAgain:
		return "EAGAIN"
	case KindNoMem:
		return "ENOMEM"
	case KindBadMsg:
		return "EBADMSG"
	default:
		return "UNKNOWN"
	}
}

// Error is the error type every public PIV operation returns on
// failure. It wraps an underlying cause (a transport error, a TLV
// parse error, or nil), exposed through Unwrap the same way
// tlv.Unmarshal wraps with %w, while still letting callers branch on
// Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("piv: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("piv: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, piv.KindNoEnt) style checks against a bare
// Kind value.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

func (k Kind) Error() string { return k.String() }

func newErr(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// swToErr maps a card status word to an Error, given the operation
// name and a disambiguation hint for 6A80 (EACCES for admin
// operations, EINVAL elsewhere).
func swToErr(op string, sw uint16, adminContext bool) *Error {
	switch sw {
	case 0x9000:
		return nil
	case 0x6A80:
		if adminContext {
			return newErr(op, KindAccess, fmt.Errorf("sw=%04X", sw))
		}
		return newErr(op, KindInval, fmt.Errorf("sw=%04X", sw))
	case 0x6A81:
		return newErr(op, KindNoEnt, fmt.Errorf("sw=%04X", sw))
	case 0x6A82:
		return newErr(op, KindNoEnt, fmt.Errorf("sw=%04X", sw))
	case 0x6A84:
		return newErr(op, KindNoMem, fmt.Errorf("sw=%04X", sw))
	case 0x6A86:
		return newErr(op, KindNoEnt, fmt.Errorf("sw=%04X", sw))
	case 0x6982:
		return newErr(op, KindPerm, fmt.Errorf("sw=%04X", sw))
	default:
		return newErr(op, KindInval, fmt.Errorf("sw=%04X", sw))
	}
}
