package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arekinath/humboldt-go/pkg/ebox"
	"github.com/arekinath/humboldt-go/pkg/piv"
)

var openIn string

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a base64 box (from stdin or --in) against whichever connected token matches it",
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if openIn != "" {
			raw, err = os.ReadFile(openIn)
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("reading box: %w", err)
		}

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return fmt.Errorf("decoding base64 box: %w", err)
		}

		box, err := ebox.FromBinary(decoded)
		if err != nil {
			return err
		}

		ctx, tokens, err := openTokens()
		if err != nil {
			return err
		}
		defer ctx.Release()
		defer piv.Release(tokens)

		tok, slot, err := ebox.FindToken(tokens, box)
		if err != nil {
			return err
		}
		_ = slot

		if err := piv.TxnBegin(tok); err != nil {
			return err
		}

		if pinFlag != "" {
			if verr := piv.VerifyPIN(tok, pinFlag, nil); verr != nil {
				piv.TxnEnd(tok)
				return verr
			}
		}

		plaintext, openErr := ebox.Open(tok, box)
		endErr := piv.TxnEnd(tok)
		if openErr != nil {
			return openErr
		}
		if endErr != nil {
			return endErr
		}

		_, err = os.Stdout.Write(plaintext)
		return err
	},
}

func init() {
	openCmd.Flags().StringVar(&openIn, "in", "", "box file to read (default stdin)")
	rootCmd.AddCommand(openCmd)
}
