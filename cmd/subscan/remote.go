package main

import (
	"fmt"

	"github.com/cp25sy5-modjot/subscription-parser/internal/adapters/grpc"
	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
	"github.com/spf13/cobra"
)

func remoteCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Call a running subscription parser server",
	}
	cmd.PersistentFlags().StringVar(&addr, "addr", "", "server address (default grpc.addr)")

	dial := func() (*grpc.Client, error) {
		if addr == "" {
			addr = a.cfg.GRPC.Addr
		}
		return grpc.Dial(addr)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse emails on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := readSources(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			c, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()

			emails := make([]domain.Email, len(sources))
			for i, s := range sources {
				emails[i] = s.Email
			}
			results, err := c.ParseBatch(cmd.Context(), emails)
			if err != nil {
				return fmt.Errorf("remote parse: %w", err)
			}
			if len(results) != len(sources) {
				return fmt.Errorf("remote parse: got %d results for %d emails", len(results), len(sources))
			}
			out := make([]parseOutput, len(results))
			for i, r := range results {
				out[i] = parseOutput{Source: sources[i].Source, Result: r}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "category <merchant>...",
		Short: "Infer categories on the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dial()
			if err != nil {
				return err
			}
			defer c.Close()
			for _, name := range args {
				cat, err := c.InferCategory(cmd.Context(), name)
				if err != nil {
					return fmt.Errorf("remote category: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, cat)
			}
			return nil
		},
	})
	return cmd
}
