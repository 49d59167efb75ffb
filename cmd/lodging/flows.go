package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/garyjia/lodging-sap/internal/application/service"
	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/notification"
)

var flowUsage = map[entity.Flow]string{
	entity.FlowRequisition:  "Create one purchase requisition covering every row",
	entity.FlowOrder:        "Create a purchase order per row and attach its invoice",
	entity.FlowServiceEntry: "Create a service entry sheet per row",
	entity.FlowDocuments:    "Register a payment document per row with its PDFs",
}

func newFlowCmds(a *app) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(entity.Flows))
	for _, flow := range entity.Flows {
		cmds = append(cmds, newFlowCmd(a, flow))
	}
	return cmds
}

func newFlowCmd(a *app, flow entity.Flow) *cobra.Command {
	var req service.RunRequest

	cmd := &cobra.Command{
		Use:   flow.String(),
		Short: flowUsage[flow],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Flow = flow
			applyWorkbookDefaults(&req, a)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return a.runFlow(ctx, cmd, req)
		},
	}

	cmd.Flags().StringVarP(&req.WorkbookPath, "workbook", "w", "", "control workbook (.xlsx)")
	cmd.Flags().StringVar(&req.User, "user", "", "SAP user; defaults to the user saved next to the workbook")
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "drive a simulated session and leave the workbook untouched")
	switch flow {
	case entity.FlowOrder:
		cmd.Flags().StringVar(&req.InvoiceDir, "invoice-dir", "", "folder with the NF <invoice>.pdf files")
	case entity.FlowDocuments:
		cmd.Flags().StringVar(&req.InvoiceDir, "invoice-dir", "", "folder with the NF <invoice>.pdf files")
		cmd.Flags().StringVar(&req.ServiceSheetDir, "service-sheet-dir", "", "folder with the FRS <invoice>.pdf files")
	}

	return cmd
}

// applyWorkbookDefaults fills unset paths from the configuration
func applyWorkbookDefaults(req *service.RunRequest, a *app) {
	if req.WorkbookPath == "" {
		req.WorkbookPath = a.cfg.Workbook.Path
	}
	if req.InvoiceDir == "" {
		req.InvoiceDir = a.cfg.Workbook.InvoiceDir
	}
	if req.ServiceSheetDir == "" {
		req.ServiceSheetDir = a.cfg.Workbook.ServiceSheetDir
	}
}

func (a *app) runFlow(ctx context.Context, cmd *cobra.Command, req service.RunRequest) error {
	c, err := a.start(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	run, err := c.RunService().Run(ctx, req)
	if run != nil {
		fmt.Fprintln(cmd.OutOrStdout(), notification.FormatRun(run))
	}
	return err
}
