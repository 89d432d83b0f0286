package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xhd2015/gemini/explain"
)

func newExplainCommand(stdout io.Writer) *cobra.Command {
	o := newOptions()
	var fn string
	cmd := &cobra.Command{
		Use:   "explain <file>",
		Short: "Show where annotated functions suspend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.resolve()
			if err != nil {
				return err
			}
			tree, err := explain.File(args[0], explain.Options{
				AsyncPkg: cfg.AsyncPkg,
				Func:     fn,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, tree)
			return nil
		},
	}
	cmd.Flags().StringVar(&fn, "func", "", "only explain this function, Name or Type.Name")
	o.bind(cmd, false)
	return cmd
}
