package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arekinath/humboldt-go/pkg/piv"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Select a token, read its CHUID and every cert slot, and print a full report",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		readErr := piv.ReadAllCerts(tok)
		endErr := piv.TxnEnd(tok)
		if readErr != nil {
			return readErr
		}
		if endErr != nil {
			return endErr
		}

		fmt.Print(piv.DescribeToken(tok))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
