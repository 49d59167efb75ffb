package container

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/lodging-sap/internal/application/service"
	"github.com/garyjia/lodging-sap/internal/config"
	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		SAP:        config.SAPConfig{Environment: "F04 - SAP Scripting Produção", System: "F04"},
		Automation: config.AutomationConfig{SettleDelay: 0, CheckAttachments: false},
		Database:   config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "ledger.db")},
		Server:     config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		Logger:     config.LoggerConfig{Format: "console"},
	}
}

func writeWorkbook(t *testing.T, codes ...string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(entity.RequiredHeaders))
	for i, h := range entity.RequiredHeaders {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))

	for i, code := range codes {
		row := []interface{}{
			"12345678000190", "15/03/2024", "10012345", "10", "1234567", "MARIA SILVA",
			"10/03/2024", "12/03/2024", "RV-778", "", 4521 + i, code, 350.75,
			"4500001111", "HOTEL CENTRAL LTDA", "SP 3550308", "1000123456", "SST-1",
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "hospedagem.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop(), Options{})
	assert.Error(t, err)

	_, err = NewContainer(testConfig(t), nil, Options{})
	assert.Error(t, err)

	cfg := testConfig(t)
	cfg.SAP.System = ""
	_, err = NewContainer(cfg, zap.NewNop(), Options{})
	assert.Error(t, err)
}

func TestContainer_DryRun(t *testing.T) {
	tests := []struct {
		flow  entity.Flow
		codes []string
	}{
		{entity.FlowRequisition, []string{"1234567", "100000123456A0010", "PRJ-0042"}},
		{entity.FlowOrder, []string{"1234567", "1234567"}},
		{entity.FlowServiceEntry, []string{"1234567"}},
		{entity.FlowDocuments, []string{"1234567"}},
	}

	for _, tt := range tests {
		t.Run(tt.flow.String(), func(t *testing.T) {
			c, err := NewContainer(testConfig(t), zap.NewNop(), Options{DryRun: true})
			require.NoError(t, err)
			require.NoError(t, c.Start(context.Background()))
			t.Cleanup(func() { c.Close() })
			assert.True(t, c.Ready())

			path := writeWorkbook(t, tt.codes...)
			run, err := c.RunService().Run(context.Background(), service.RunRequest{
				Flow:            tt.flow,
				WorkbookPath:    path,
				InvoiceDir:      t.TempDir(),
				ServiceSheetDir: t.TempDir(),
			})
			require.NoError(t, err)
			assert.Equal(t, entity.RunStatusCompleted, run.Status)
			assert.Equal(t, len(tt.codes), run.Succeeded)

			stored, err := c.RunService().Get(run.RunID)
			require.NoError(t, err)
			assert.Len(t, stored.Rows, len(tt.codes))

			// dry runs leave the workbook untouched
			f, err := excelize.OpenFile(path)
			require.NoError(t, err)
			defer f.Close()
			for _, col := range []string{"AT", "AY", "BB", "BF"} {
				v, err := f.GetCellValue("Sheet1", col+"2")
				require.NoError(t, err)
				assert.Empty(t, v, col)
			}
		})
	}
}

func TestContainer_StartTwiceAndClose(t *testing.T) {
	c, err := NewContainer(testConfig(t), zap.NewNop(), Options{DryRun: true})
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	assert.Error(t, c.Start(context.Background()))

	require.NoError(t, c.Close())
	assert.Error(t, c.Close())
	assert.Error(t, c.Start(context.Background()))
}
