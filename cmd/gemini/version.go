package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const VERSION = "0.1.0"
const REVISION = "dev"
const NUMBER = 1

func getRevision() string {
	return fmt.Sprintf("%s %s BUILD_%d", VERSION, REVISION, NUMBER)
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	var revision bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if revision {
				fmt.Fprintln(stdout, getRevision())
				return
			}
			fmt.Fprintln(stdout, VERSION)
		},
	}
	cmd.Flags().BoolVar(&revision, "revision", false, "print revision and build number")
	return cmd
}
