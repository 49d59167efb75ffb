package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/config"
	"github.com/garyjia/lodging-sap/internal/container"
	"github.com/garyjia/lodging-sap/pkg/utils"
)

// app holds what every subcommand shares once flags are parsed
type app struct {
	cfgFile string
	verbose bool
	dryRun  bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lodging",
		Short: "Post lodging invoices into SAP from the control workbook",
		Long: `lodging reads hotel invoice rows from the control workbook, keys them into
SAP through the scripting bridge and writes the generated document numbers
back into the workbook.

Flows, in the order they are usually run:
  lodging requisition    one purchase requisition (ME51N) for every row
  lodging order          one purchase order per row (ME21N), invoice attached
  lodging service-entry  one service entry sheet per row (ML81N)
  lodging documents      one payment document per row (MLGD), PDFs attached`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "path to the YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every field the flows touch")

	for _, cmd := range newFlowCmds(a) {
		root.AddCommand(cmd)
	}
	root.AddCommand(newPasswordCmd(a))
	root.AddCommand(newUserCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newRunsCmd(a))

	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Logger.Level = "debug"
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:       cfg.Logger.Level,
		OutputPath:  cfg.Logger.OutputPath,
		Format:      cfg.Logger.Format,
		OperatorLog: cfg.Logger.OperatorLog,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// start builds and starts the container; callers close it
func (a *app) start(ctx context.Context) (*container.Container, error) {
	c, err := container.NewContainer(a.cfg, a.logger, container.Options{DryRun: a.dryRun})
	if err != nil {
		return nil, err
	}
	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
