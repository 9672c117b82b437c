// Command enchex reads a hex text listing and writes the equivalent
// binary word stream, filling any skipped address with a zero word.
package main

import (
	"fmt"
	"os"

	"github.com/arminbiere/reticode/reti"
	"github.com/arminbiere/reticode/reti/codec"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	cmd := &cobra.Command{
		Use:          "enchex [input] [output]",
		Short:        "Convert a hex text listing into a binary word stream",
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
	} else if term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("refusing to write binary output to a terminal; redirect output")
	}

	words, err := codec.DecodeHex(in)
	if err != nil {
		return err
	}
	return reti.EncodeWords(out, words)
}
