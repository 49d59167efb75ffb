package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the flows and the run history over a local HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := a.start(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			server := c.NewServer()
			a.logger.Info("Lodging automation API ready",
				zap.String("address", server.Address()),
				zap.Bool("dry_run", a.dryRun))
			return server.Start(ctx)
		},
	}

	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "drive a simulated session and leave workbooks untouched")
	return cmd
}
