package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/sqrity/sqrity/internal/generator"
)

// newGenerateCmd prints one secret without touching storage.
func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var length int
	var noUpper, noLower, noDigits, noSym bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random secret",
		Long: `Prints a secret drawn uniformly from the enabled character classes.
Lengths outside 4..128 fall back to 12; without --length the configured
default (14) is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(cmd)
			if err != nil {
				return err
			}

			n := cfg.GeneratorLength
			if cmd.Flags().Changed("length") {
				n = generator.ParseLength(strconv.Itoa(length))
			}
			cs := generator.Charset{Upper: !noUpper, Lower: !noLower, Digits: !noDigits, Symbols: !noSym}

			secret, err := generator.Generate(n, cs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&length, "length", "n", 0, "secret length")
	f.BoolVar(&noUpper, "no-upper", false, "exclude A-Z")
	f.BoolVar(&noLower, "no-lower", false, "exclude a-z")
	f.BoolVar(&noDigits, "no-digits", false, "exclude 0-9")
	f.BoolVar(&noSym, "no-symbols", false, "exclude symbols")

	return cmd
}
