package main

import (
	"fmt"
	"strings"

	"github.com/cp25sy5-modjot/subscription-parser/internal/adapters/parser"
	"github.com/spf13/cobra"
)

func categoryCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "category <merchant>...",
		Short: "Infer the category of merchant names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, parser.InferCategory(strings.TrimSpace(name)))
			}
			return nil
		},
	}
}
