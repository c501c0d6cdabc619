package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arekinath/humboldt-go/pkg/ebox"
	"github.com/arekinath/humboldt-go/pkg/piv"
)

var (
	sealSlot   string
	sealCipher string
	sealKDF    string
	sealOut    string
)

var sealCmd = &cobra.Command{
	Use:   "seal",
	Short: "Seal stdin against a token's key-management slot, writing a base64 box to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		slotID, err := slotByName(sealSlot)
		if err != nil {
			return err
		}

		ctx, tokens, err := openTokens()
		if err != nil {
			return err
		}
		defer ctx.Release()
		defer piv.Release(tokens)

		tok, err := pickToken(tokens, readerFlag)
		if err != nil {
			return err
		}

		if err := piv.TxnBegin(tok); err != nil {
			return err
		}
		readErr := piv.ReadCert(tok, slotID)
		endErr := piv.TxnEnd(tok)
		if readErr != nil {
			return fmt.Errorf("reading slot %02X: %w", byte(slotID), readErr)
		}
		if endErr != nil {
			return endErr
		}

		slot := tok.GetSlot(slotID)
		plaintext, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading plaintext from stdin: %w", err)
		}

		box, err := ebox.Seal(tok, slot, plaintext, sealCipher, sealKDF)
		if err != nil {
			return err
		}

		raw, err := box.ToBinary()
		if err != nil {
			return err
		}

		out := os.Stdout
		if sealOut != "" {
			f, err := os.Create(sealOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		fmt.Fprintln(out, base64.StdEncoding.EncodeToString(raw))
		return nil
	},
}

func init() {
	sealCmd.Flags().StringVar(&sealSlot, "slot", "9D", "target slot (9A/9C/9D/9E)")
	sealCmd.Flags().StringVar(&sealCipher, "cipher", "", "AEAD cipher (default chacha20-poly1305)")
	sealCmd.Flags().StringVar(&sealKDF, "kdf", "", "KDF hash (default sha512)")
	sealCmd.Flags().StringVar(&sealOut, "out", "", "output file (default stdout)")
	rootCmd.AddCommand(sealCmd)
}
