package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sjperalta/lumina-api/internal/models"
)

func TestExportService_CSV(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Expense.Create(ctx, ExpenseInput{Description: "Fuel, diesel", Amount: 80.5, Category: models.CategoryTravel, Date: "01-03-2025"})
	require.NoError(t, err)

	file, err := svcs.Export.Export(ctx, models.CollectionExpenses, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "expenses_2025-03-15.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Description", records[0][2])
	assert.Equal(t, "Fuel, diesel", records[1][2])
	assert.Equal(t, "80.50", records[1][4])
}

func TestExportService_XLSX(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")

	file, err := svcs.Export.Export(ctx, models.CollectionInvoices, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "invoices_2025-03-15.xlsx", file.Filename)

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(models.CollectionInvoices)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Invoice No", rows[0][1])
	assert.Equal(t, inv.InvoiceNo, rows[1][1])
	assert.Equal(t, "1000", rows[1][6])
}

func TestExportService_EveryCollection(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	for _, collection := range models.Collections() {
		file, err := svcs.Export.Export(ctx, collection, FormatCSV)
		require.NoError(t, err, collection)

		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 1, "header only for an empty %s", collection)
	}
}

func TestExportService_Rejects(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Export.Export(ctx, "users", FormatCSV)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svcs.Export.Export(ctx, models.CollectionPayments, "pdf")
	assert.ErrorIs(t, err, ErrValidation)
}
