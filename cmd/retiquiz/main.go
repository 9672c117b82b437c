// Command retiquiz is an interactive terminal drill over ReTI
// instruction encoding: it shows an encoded word and asks for its
// disassembly. It does not ask for the encoding of a mnemonic.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/arminbiere/reticode/reti"
	"github.com/spf13/cobra"
)

func main() {
	var count int
	var seed int64

	cmd := &cobra.Command{
		Use:          "retiquiz",
		Short:        "Drill ReTI instruction encoding interactively",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(os.Stdin, os.Stdout, count, seed)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of questions")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed (0 picks a fresh seed per run)")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in *os.File, out *os.File, count int, seed int64) error {
	if seed == 0 {
		seed = int64(os.Getpid())
	}
	r := rand.New(rand.NewSource(seed))
	reader := bufio.NewScanner(in)

	correct := 0
	for i := 0; i < count; i++ {
		word := reti.GenerateInstruction(r)
		want := reti.Disassemble(word)

		fmt.Fprintf(out, "[%d/%d] word 0x%08x — disassemble it: ", i+1, count, word)
		if !reader.Scan() {
			fmt.Fprintln(out, "\nno more input, stopping early")
			break
		}
		got := strings.TrimSpace(reader.Text())

		if got == want {
			fmt.Fprintln(out, "correct")
			correct++
		} else {
			fmt.Fprintf(out, "wrong: expected %q\n", want)
		}
	}

	fmt.Fprintf(out, "score: %d/%d\n", correct, count)
	return nil
}
