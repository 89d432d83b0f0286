package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// usage:
//   //go:generate gemini gen
//   gemini gen ./...
//   gemini check .
//   gemini explain fetch.go
//   go build -tags gemini_sync ./...

func main() {
	err := newRootCommand(os.Stdout, os.Stderr).Execute()
	if err != nil {
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(os.Stderr, "%v\n", e)
		}
		os.Exit(1)
	}
}

func newRootCommand(stdout io.Writer, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "gemini",
		Short: "Derive blocking variants of //gemini:maybe functions",
		Long: `gemini generates, for every function annotated with //gemini:maybe,
a blocking variant next to the hand-written suspending one.

The suspending variant builds by default; go build -tags gemini_sync
builds the blocking variant instead.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newGenCommand(stdout, stderr, false),
		newGenCommand(stdout, stderr, true),
		newExplainCommand(stdout),
		newVersionCommand(stdout),
	)
	return root
}
