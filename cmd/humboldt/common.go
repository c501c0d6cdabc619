package main

import (
	"fmt"
	"strings"

	"github.com/arekinath/humboldt-go/pkg/pcsc"
	"github.com/arekinath/humboldt-go/pkg/piv"
)

// openTokens establishes a PC/SC context and enumerates every PIV token
// present. The caller must release the returned tokens and context.
func openTokens() (pcsc.Context, []*piv.Token, error) {
	ctx, err := pcsc.Establish()
	if err != nil {
		return nil, nil, fmt.Errorf("establishing PC/SC context: %w", err)
	}
	tokens, err := piv.Enumerate(ctx)
	if err != nil {
		ctx.Release()
		return nil, nil, fmt.Errorf("enumerating tokens: %w", err)
	}
	return ctx, tokens, nil
}

// pickToken selects the first token whose reader name contains substr,
// or the first token overall if substr is empty.
func pickToken(tokens []*piv.Token, substr string) (*piv.Token, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no PIV tokens found")
	}
	if substr == "" {
		return tokens[0], nil
	}
	for _, t := range tokens {
		if strings.Contains(t.ReaderName, substr) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no token matched reader filter %q", substr)
}

func slotByName(name string) (piv.SlotID, error) {
	switch strings.ToUpper(name) {
	case "9A", "AUTHENTICATION", "AUTH":
		return piv.SlotAuthentication, nil
	case "9C", "SIGNATURE", "SIGN":
		return piv.SlotSignature, nil
	case "9D", "KEYMGMT", "KEY-MANAGEMENT":
		return piv.SlotKeyManagement, nil
	case "9E", "CARDAUTH", "CARD-AUTH":
		return piv.SlotCardAuth, nil
	default:
		return 0, fmt.Errorf("unknown slot %q (want 9A/9C/9D/9E)", name)
	}
}
