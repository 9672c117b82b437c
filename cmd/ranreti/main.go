// Command ranreti generates a random, bitwise-legal, loop-free ReTI
// program of a given length from a given seed.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/arminbiere/reticode/reti"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	var count int
	var seed int64

	cmd := &cobra.Command{
		Use:          "ranreti [output]",
		Short:        "Generate a random legal ReTI program",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath := ""
			if len(args) > 0 {
				outPath = args[0]
			}
			return run(outPath, count, seed)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 16, "number of instructions to generate")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 1, "random seed")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outPath string, count int, seed int64) error {
	if count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", count)
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

	words := reti.GenerateProgram(rand.New(rand.NewSource(seed)), count)
	return reti.EncodeWords(out, words)
}
