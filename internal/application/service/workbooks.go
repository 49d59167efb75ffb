package service

import (
	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/application/port"
	"github.com/garyjia/lodging-sap/internal/workbook"
)

// WorkbookFiles opens workbooks from the local file system
type WorkbookFiles struct {
	Logger *zap.Logger
}

// Open implements port.WorkbookOpener
func (w WorkbookFiles) Open(path string) (port.Workbook, error) {
	wb, err := workbook.Open(path, w.Logger)
	if err != nil {
		return nil, err
	}
	return wb, nil
}
