package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cp25sy5-modjot/subscription-parser/internal/config"
	"github.com/cp25sy5-modjot/subscription-parser/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

// app holds what PersistentPreRunE loads for the subcommands.
type app struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config
	log      zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "subscan",
		Short: "Detect subscription charges in emails",
		Long: `subscan reads decoded emails, recognises recurring-payment receipts and
prints merchant, amount, currency, billing cycle and trial details as JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			level := cfg.Log.Level
			if cmd.Flags().Changed("log-level") {
				level = a.logLevel
			}
			// stdout carries results, so logs go to stderr
			a.log = logger.NewTo(cmd.ErrOrStderr(), level, cfg.Log.Format)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.config/subscan/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(parseCmd(a))
	root.AddCommand(categoryCmd(a))
	root.AddCommand(remoteCmd(a))
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
