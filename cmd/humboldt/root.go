// Command humboldt is a PC/SC PIV client: it enumerates tokens, dumps
// slot/certificate metadata, and seals/opens ECDH envelopes against a
// card's key-management key. Flags follow the same cobra/pflag idiom
// the sibling sim_reader tool uses for its own reader/PIN/ADM flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	readerFlag string
	pinFlag    string
	jsonFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "humboldt",
	Short: "PIV smart-card client",
	Long: `humboldt talks to a PIV-applet smart card over PC/SC: it can
enumerate connected tokens, describe their CHUID and certificate slots,
and seal/open ECDH sealed-envelope boxes against a token's key
management key.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&readerFlag, "reader", "r", "",
		"reader name substring to select a token (default: first token found)")
	rootCmd.PersistentFlags().StringVarP(&pinFlag, "pin", "p", "",
		"PIV application PIN, if an operation requires it")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false,
		"reserved for machine-readable output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
