// Command emreti loads a ReTI code (and optional data) image and runs
// it to completion, printing the live data words at halt.
package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/arminbiere/reticode/reti"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	var dataPath string
	var maxSteps uint64
	var readMode string
	var trace bool

	cmd := &cobra.Command{
		Use:          "emreti [code-image] [output]",
		Short:        "Run a ReTI code image to completion",
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			codePath, outPath := "", ""
			if len(args) > 0 {
				codePath = args[0]
			}
			if len(args) > 1 {
				outPath = args[1]
			}

			policy, err := parseReadMode(readMode)
			if err != nil {
				return err
			}

			return run(codePath, dataPath, outPath, reti.Options{
				MaxSteps: maxSteps,
				Read:     policy,
				Trace:    trace,
			})
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "optional data image file")
	cmd.Flags().Uint64VarP(&maxSteps, "steps", "n", 0, "maximum step count (0 = unlimited)")
	cmd.Flags().StringVarP(&readMode, "read", "r", "default", "uninitialized read policy: strict|default|quiet")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "print a per-step trace")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseReadMode(s string) (reti.ReadPolicy, error) {
	switch s {
	case "strict":
		return reti.ReadStrict, nil
	case "default":
		return reti.ReadDefault, nil
	case "quiet":
		return reti.ReadQuiet, nil
	default:
		return 0, fmt.Errorf("invalid --read value %q: want strict, default, or quiet", s)
	}
}

func readImage(path string) ([]uint32, error) {
	if path == "" || path == "-" {
		return reti.DecodeWords(os.Stdin, false)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return reti.DecodeWords(f, false)
}

func run(codePath, dataPath, outPath string, opts reti.Options) error {
	code, err := readImage(codePath)
	if err != nil {
		return err
	}

	var data []uint32
	if dataPath != "" {
		data, err = readImage(dataPath)
		if err != nil {
			return err
		}
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
		return fmt.Errorf("refusing to write output to a terminal; redirect output")
	}

	bw := bufio.NewWriter(out)
	defer bw.Flush()

	// Each step builds a StepTrace with short-lived strings; a GC pass
	// mid-run only costs cycles, so it's held off until Run returns.
	gcPercent := debug.SetGCPercent(-1)
	defer debug.SetGCPercent(gcPercent)

	emu := reti.NewEmulator(code, data, opts, os.Stderr)
	if err := emu.Run(func(t reti.StepTrace) {
		fmt.Fprintln(bw, t.FormatRow())
	}); err != nil {
		return err
	}

	emu.Data.ValidWords(func(addr, word uint32) {
		fmt.Fprintf(bw, "%08x %08x\n", addr, word)
	})
	return nil
}
