// Command asreti assembles ReTI assembly text into a binary code image.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/arminbiere/reticode/reti"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	var inPath, outPath string

	cmd := &cobra.Command{
		Use:   "asreti [input] [output]",
		Short: "Assemble ReTI source into a binary code image",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				inPath = args[0]
			}
			if len(args) > 1 {
				outPath = args[1]
			}
			return run(inPath, outPath)
		},
		SilenceUsage: true,
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

	var out io.Writer = os.Stdout
	name := "<stdin>"
	if inPath != "" && inPath != "-" {
		name = inPath
	}

	if outPath != "" && outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	} else if term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("refusing to write binary code to a terminal; redirect output")
	}

	return reti.Assemble(in, out, name)
}
