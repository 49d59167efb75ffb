// Package container wires configuration into the run service and its collaborators.
package container

import (
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/application/port"
	"github.com/garyjia/lodging-sap/internal/application/service"
	"github.com/garyjia/lodging-sap/internal/attachment"
	"github.com/garyjia/lodging-sap/internal/automation"
	"github.com/garyjia/lodging-sap/internal/config"
	"github.com/garyjia/lodging-sap/internal/domain/entity"
	"github.com/garyjia/lodging-sap/internal/host"
	"github.com/garyjia/lodging-sap/internal/host/bridge"
	"github.com/garyjia/lodging-sap/internal/host/scripted"
	"github.com/garyjia/lodging-sap/internal/lark"
	"github.com/garyjia/lodging-sap/internal/notification"
	"github.com/garyjia/lodging-sap/internal/repository"
	"github.com/garyjia/lodging-sap/internal/statusline"
	"github.com/garyjia/lodging-sap/internal/workbook"
	"github.com/garyjia/lodging-sap/pkg/database"
)

// ProvideDatabase opens the run ledger and applies its schema
func ProvideDatabase(cfg config.DatabaseConfig, logger *zap.Logger) (*database.DB, error) {
	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := repository.Migrate(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ProvideRegistry returns the default locators with the optional YAML overrides applied
func ProvideRegistry(locatorsPath string, logger *zap.Logger) (*host.Registry, error) {
	registry := host.NewRegistry()
	if locatorsPath == "" {
		return registry, nil
	}
	if err := registry.LoadOverrides(locatorsPath); err != nil {
		return nil, err
	}
	logger.Info("Locator overrides loaded", zap.String("path", locatorsPath))
	return registry, nil
}

// ProvideConnector returns the bridge to the real client, or a scripted
// session that accepts every action when dryRun is set
func ProvideConnector(cfg config.SAPConfig, dryRun bool, logger *zap.Logger) host.Connector {
	if dryRun {
		var next atomic.Int64
		session := scripted.NewSession().Fallback(func() string {
			return statusline.Simulated(next.Add(1))
		})
		return &scripted.Connector{Session: session, Open: true}
	}
	return bridge.NewClient(cfg.BridgeURL, &http.Client{Timeout: cfg.Timeout}, logger)
}

// ProvideAttachmentChecker returns nil when attachment checks are disabled
func ProvideAttachmentChecker(cfg config.AutomationConfig, logger *zap.Logger) automation.AttachmentChecker {
	if !cfg.CheckAttachments {
		return nil
	}
	return attachment.NewChecker(logger)
}

// ProvideNotifier returns nil when Lark notifications are disabled
func ProvideNotifier(cfg config.LarkConfig, logger *zap.Logger) port.RunNotifier {
	if !cfg.Enabled {
		return nil
	}
	client := lark.NewClient(lark.Config{
		AppID:     cfg.AppID,
		AppSecret: cfg.AppSecret,
		Timeout:   cfg.APITimeout,
	}, logger)
	return notification.NewRunNotifier(lark.NewMessageAPI(client, logger), cfg.ReceiveIDType, cfg.ReceiveID, logger)
}

// ProvideWorkbooks opens workbooks from disk. Dry runs never save them.
func ProvideWorkbooks(dryRun bool, logger *zap.Logger) port.WorkbookOpener {
	files := service.WorkbookFiles{Logger: logger}
	if dryRun {
		return dryRunWorkbooks{files: files, logger: logger}
	}
	return files
}

type dryRunWorkbooks struct {
	files  service.WorkbookFiles
	logger *zap.Logger
}

func (d dryRunWorkbooks) Open(path string) (port.Workbook, error) {
	wb, err := d.files.Open(path)
	if err != nil {
		return nil, err
	}
	return readOnlyWorkbook{Workbook: wb, logger: d.logger}, nil
}

// readOnlyWorkbook logs write-backs instead of saving them
type readOnlyWorkbook struct {
	port.Workbook
	logger *zap.Logger
}

func (w readOnlyWorkbook) WriteBack(records []entity.DocumentCaptureRecord, cols workbook.Columns) error {
	for _, r := range records {
		w.logger.Info("Dry run: write-back skipped",
			zap.Int("sheet_row", r.SheetRow),
			zap.String("column", cols.Number),
			zap.Int64("document_number", r.DocumentNumber))
	}
	return nil
}
