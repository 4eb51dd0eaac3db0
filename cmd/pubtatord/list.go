package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesse-lima-gilead/pubtator-benchiling-sub000/internal/metadata"
)

func listCMD() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "list <dir>",
		Short: "List article numbers found in a directory of PMC XML files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := metadata.ListArticleNumbers(args[0])
			if err != nil {
				return err
			}
			for _, n := range numbers {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d articles\n", len(numbers))
			return nil
		},
	}
	return cmd
}
