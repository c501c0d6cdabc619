package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/arekinath/humboldt-go/pkg/piv"
)

var enumerateCmd = &cobra.Command{
	Use:   "enumerate",
	Short: "List every PIV token currently connected",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, tokens, err := openTokens()
		if err != nil {
			return err
		}
		defer ctx.Release()
		defer piv.Release(tokens)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Reader", "GUID", "Yubico", "Version", "Algorithms"})

		for _, tok := range tokens {
			guid := "(none)"
			if tok.HasGUID {
				guid = hex.EncodeToString(tok.GUID[:])
			}
			ver := "-"
			if tok.Yubico {
				ver = fmt.Sprintf("%d.%d.%d", tok.YubicoVer[0], tok.YubicoVer[1], tok.YubicoVer[2])
			}
			t.AppendRow(table.Row{tok.ReaderName, guid, tok.Yubico, ver, algList(tok.Algorithms)})
		}
		t.Render()
		return nil
	},
}

func algList(algs []piv.Algorithm) string {
	out := ""
	for i, a := range algs {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%02X", byte(a))
	}
	if out == "" {
		return "-"
	}
	return out
}

func init() {
	rootCmd.AddCommand(enumerateCmd)
}
