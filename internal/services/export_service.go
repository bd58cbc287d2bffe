package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportFile is a rendered export ready to download
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// ExportService writes collections out as spreadsheets
type ExportService struct {
	repos *repository.Repositories
	now   func() time.Time
}

// NewExportService creates a new export service
func NewExportService(repos *repository.Repositories) *ExportService {
	return &ExportService{repos: repos, now: time.Now}
}

// Export renders one collection in the requested format
func (s *ExportService) Export(ctx context.Context, collection, format string) (*ExportFile, error) {
	header, rows, err := s.table(ctx, collection)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%s_%s", collection, s.now().Format("2006-01-02"))
	switch format {
	case FormatCSV, "":
		data, err := writeCSV(header, rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Data: data, Filename: base + ".csv", ContentType: "text/csv"}, nil
	case FormatXLSX:
		data, err := writeXLSX(collection, header, rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Data:        data,
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil
	}
	return nil, fieldError("format", "expected csv or xlsx")
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// table flattens a collection into a header and string rows
func (s *ExportService) table(ctx context.Context, collection string) ([]string, [][]string, error) {
	var rows [][]string

	switch collection {
	case models.CollectionEmployees:
		all, err := s.repos.Employee.All(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, e := range all {
			rows = append(rows, []string{e.ID, e.Name, e.Role, money(e.DailyWage), money(e.MonthlyEstimate()), e.Phone, e.CreatedAt})
		}
		return []string{"ID", "Name", "Role", "Daily Wage", "Monthly Estimate", "Phone", "Created At"}, rows, nil

	case models.CollectionExpenses:
		all, err := s.repos.Expense.All(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, e := range all {
			rows = append(rows, []string{e.ID, e.Date, e.Description, e.Category, money(e.Amount), e.Notes, e.CreatedAt})
		}
		return []string{"ID", "Date", "Description", "Category", "Amount", "Notes", "Created At"}, rows, nil

	case models.CollectionQuotations:
		all, err := s.repos.Quotation.All(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, q := range all {
			rows = append(rows, []string{q.ID, q.QuotationNo, q.Date, q.Client, q.Project, strconv.Itoa(len(q.Items)),
				money(q.Subtotal), money(q.VATAmount), money(q.GrandTotal), q.AmountInWords, q.CreatedAt})
		}
		return []string{"ID", "Quotation No", "Date", "Client", "Project", "Items", "Subtotal", "VAT", "Grand Total", "Amount in Words", "Created At"}, rows, nil

	case models.CollectionInvoices:
		all, err := s.repos.Invoice.All(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, inv := range all {
			rows = append(rows, []string{inv.ID, inv.InvoiceNo, inv.Date, inv.DueDate, inv.Client, inv.Project,
				money(inv.GrandTotal), money(inv.PaidAmount), money(inv.BalanceAmount), inv.PaymentStatus, inv.CreatedAt})
		}
		return []string{"ID", "Invoice No", "Date", "Due Date", "Client", "Project", "Grand Total", "Paid", "Balance", "Status", "Created At"}, rows, nil

	case models.CollectionPayments:
		all, err := s.repos.Payment.All(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range all {
			rows = append(rows, []string{p.ID, p.InvoiceID, p.InvoiceNo, p.PaymentDate, p.Method, money(p.Amount), p.Notes, p.CreatedAt})
		}
		return []string{"ID", "Invoice ID", "Invoice No", "Payment Date", "Method", "Amount", "Notes", "Created At"}, rows, nil

	case models.CollectionAttendance:
		all, err := s.repos.Attendance.All(ctx)
		if err != nil {
			return nil, nil, err
		}
		for _, a := range all {
			rows = append(rows, []string{a.ID, a.EmployeeID, a.EmployeeName, a.Month, a.MonthDisplay,
				strconv.Itoa(a.DaysWorked), money(a.DailyWage), money(a.MonthlyWage), a.CreatedAt})
		}
		return []string{"ID", "Employee ID", "Employee", "Month", "Month Display", "Days Worked", "Daily Wage", "Monthly Wage", "Created At"}, rows, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown collection %q", ErrNotFound, collection)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if n, err := strconv.ParseFloat(v, 64); err == nil && isNumericColumn(header[c]) {
				_ = f.SetCellValue(sheet, cell, n)
				continue
			}
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func isNumericColumn(name string) bool {
	switch name {
	case "Daily Wage", "Monthly Estimate", "Amount", "Subtotal", "VAT", "Grand Total",
		"Paid", "Balance", "Days Worked", "Monthly Wage", "Items":
		return true
	}
	return false
}
