package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newInstructionsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "instructions",
		Short: "List the known mnemonics and compare conditions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := root.table()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "mnemonics:")
			for _, m := range table.Mnemonics() {
				if conds := table.ConditionsFor(m); len(conds) > 0 {
					fmt.Fprintf(out, "  %s/{%s}\n", m, strings.Join(conds, ","))
					continue
				}
				fmt.Fprintf(out, "  %s\n", m)
			}
			fmt.Fprintln(out, "conditions:")
			fmt.Fprintf(out, "  %s\n", strings.Join(table.Conditions(), " "))
			return nil
		},
	}
}
