// Command decbin reads a binary word stream and writes the equivalent
// hex text listing.
package main

import (
	"fmt"
	"os"

	"github.com/arminbiere/reticode/reti"
	"github.com/arminbiere/reticode/reti/codec"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:          "decbin [input] [output]",
		Short:        "Convert a binary word stream into hex text",
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath, outPath := "", ""
			if len(args) > 0 {
				inPath = args[0]
			}
			if len(args) > 1 {
				outPath = args[1]
			}
			return run(inPath, outPath)
		},
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	in := os.Stdin
	if inPath != "" && inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if outPath != "" && outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	words, err := reti.DecodeWords(in, true)
	if err != nil {
		return err
	}
	return codec.EncodeHex(out, words)
}
