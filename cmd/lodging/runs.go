package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/garyjia/lodging-sap/internal/notification"
)

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect the run history",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.start(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			runs, err := c.RunService().List(limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tFLOW\tSTATUS\tROWS\tOK\tFAILED\tSTARTED")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					run.RunID, run.Flow, run.Status, run.Total, run.Succeeded, run.Failed,
					run.StartedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with its rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.start(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			run, err := c.RunService().Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), notification.FormatRun(run))
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
