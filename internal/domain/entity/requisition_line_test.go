package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lodgingRow(index int, code string) DataRow {
	return DataRow{
		Index:          index,
		SheetRow:       index + 2,
		InvoiceNumber:  "4521",
		CostObjectCode: code,
		NetAmount:      "350,75",
	}
}

func TestBuildLine_FixedFields(t *testing.T) {
	line, err := BuildLine(lodgingRow(0, "1002000"), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, line.ItemNumber)
	assert.Equal(t, "F85", line.PurchasingGroup)
	assert.Equal(t, "HOSPEDAGEM NF 4521", line.ShortText)
	assert.Equal(t, line.ShortText, line.ServiceText)
	assert.Equal(t, "4521", line.TrackingNumber)
	assert.Equal(t, "D", line.ItemCategory)
	assert.Equal(t, "1", line.Quantity)
	assert.Equal(t, "UN", line.Unit)
	assert.Equal(t, "350,75", line.UnitPrice)
	assert.Equal(t, "8.8", line.TaxCode)
	assert.Equal(t, "094300", line.MaterialGroup)
}

func TestBuildLine_Categories(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		wantCategory string
		wantTarget   CostObject
	}{
		{
			name:         "cost center",
			code:         "1002000",
			wantCategory: "K",
			wantTarget:   CostObject{Category: CategoryCostCenter, Code: "1002000", CostCenter: "1002000"},
		},
		{
			name:         "order and operation",
			code:         "1500000123ABCD",
			wantCategory: "N",
			wantTarget: CostObject{
				Category:  CategoryOrderOperation,
				Code:      "1500000123ABCD",
				OrderID:   "1500000123",
				Operation: "ABCD",
			},
		},
		{
			name:         "project",
			code:         "PROJ-99",
			wantCategory: "P",
			wantTarget:   CostObject{Category: CategoryProject, Code: "PROJ-99", PositionID: "PROJ-99"},
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := BuildLine(lodgingRow(i, tt.code), i+1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, line.AccountCategory)
			assert.Equal(t, tt.wantTarget, line.Assignment)
			assert.Equal(t, i+1, line.ItemNumber)
		})
	}
}

func TestBuildLine_Deterministic(t *testing.T) {
	row := lodgingRow(2, "1500000123ABCD")

	first, err := BuildLine(row, 3)
	require.NoError(t, err)
	second, err := BuildLine(row, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildLine_Invalid(t *testing.T) {
	t.Run("malformed order code", func(t *testing.T) {
		_, err := BuildLine(lodgingRow(5, "123456789"), 1)
		require.Error(t, err)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, 5, ve.RowIndex)
		assert.Equal(t, "123456789", ve.Code)
	})

	t.Run("zero line id", func(t *testing.T) {
		_, err := BuildLine(lodgingRow(0, "1002000"), 0)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}
