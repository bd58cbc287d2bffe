package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/jung-kurt/gofpdf"

	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
)

//go:embed templates/*.html
var templateFS embed.FS

var printTemplates = template.Must(template.New("print").Funcs(template.FuncMap{
	"currency": ledger.FormatCurrency,
	"upper":    strings.ToUpper,
	"percent": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
}).ParseFS(templateFS, "templates/*.html"))

// printDocument is the view of a quotation or invoice used by the templates
type printDocument struct {
	Title         string
	Company       string
	Number        string
	Date          string
	DueDate       string
	Client        string
	Contact       string
	Project       string
	Location      string
	TRN           string
	Status        string
	Items         []models.QuotationItem
	Subtotal      float64
	VATPercentage float64
	VATAmount     float64
	GrandTotal    float64
	ShowBalance   bool
	PaidAmount    float64
	BalanceAmount float64
	AmountInWords string
}

// PrintService renders printable documents
type PrintService struct {
	repos         *repository.Repositories
	attendanceSvc *AttendanceService
	company       string
}

// NewPrintService creates a new print service
func NewPrintService(repos *repository.Repositories, attendanceSvc *AttendanceService, company string) *PrintService {
	return &PrintService{repos: repos, attendanceSvc: attendanceSvc, company: company}
}

// InvoiceHTML renders a complete HTML page for an invoice
func (s *PrintService) InvoiceHTML(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.invoiceDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return render("document", doc)
}

// QuotationHTML renders a complete HTML page for a quotation
func (s *PrintService) QuotationHTML(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.quotationDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return render("document", doc)
}

// ReceiptHTML renders a payment receipt. The invoice section is left out when the
// invoice no longer exists.
func (s *PrintService) ReceiptHTML(ctx context.Context, paymentID string) ([]byte, error) {
	payment, found, err := s.repos.Payment.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	invoice, _, err := s.repos.Invoice.FindByID(ctx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	words, err := ledger.AmountInWords(payment.Amount)
	if err != nil {
		words = ledger.FormatCurrency(payment.Amount)
	}

	return render("receipt", struct {
		Company       string
		Payment       *models.Payment
		Invoice       *models.Invoice
		AmountInWords string
	}{s.company, payment, invoice, words})
}

// AttendanceHTML renders the attendance report for one employee or everyone
func (s *PrintService) AttendanceHTML(ctx context.Context, employeeID string) ([]byte, error) {
	report, err := s.attendanceSvc.Report(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return render("attendance", struct {
		*AttendanceReport
		Company string
	}{report, s.company})
}

// RenderPDF converts an HTML page with wkhtmltopdf. The binary must be on PATH.
func (s *PrintService) RenderPDF(html []byte) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}
	return pdfg.Bytes(), nil
}

// InvoicePDF draws an invoice natively, without external binaries
func (s *PrintService) InvoicePDF(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.invoiceDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return drawPDF(doc)
}

// QuotationPDF draws a quotation natively, without external binaries
func (s *PrintService) QuotationPDF(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.quotationDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return drawPDF(doc)
}

func (s *PrintService) invoiceDocument(ctx context.Context, id string) (*printDocument, error) {
	inv, found, err := s.repos.Invoice.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &printDocument{
		Title:         "Invoice",
		Company:       s.company,
		Number:        inv.InvoiceNo,
		Date:          inv.Date,
		DueDate:       inv.DueDate,
		Client:        inv.Client,
		Contact:       inv.Contact,
		Project:       inv.Project,
		Location:      inv.Location,
		TRN:           inv.TRN,
		Status:        inv.PaymentStatus,
		Items:         inv.Items,
		Subtotal:      inv.Subtotal,
		VATPercentage: inv.VATPercentage,
		VATAmount:     inv.VATAmount,
		GrandTotal:    inv.GrandTotal,
		ShowBalance:   true,
		PaidAmount:    inv.PaidAmount,
		BalanceAmount: inv.BalanceAmount,
		AmountInWords: inv.AmountInWords,
	}, nil
}

func (s *PrintService) quotationDocument(ctx context.Context, id string) (*printDocument, error) {
	q, found, err := s.repos.Quotation.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &printDocument{
		Title:         "Quotation",
		Company:       s.company,
		Number:        q.QuotationNo,
		Date:          q.Date,
		Client:        q.Client,
		Contact:       q.Contact,
		Project:       q.Project,
		Location:      q.Location,
		TRN:           q.TRN,
		Items:         q.Items,
		Subtotal:      q.Subtotal,
		VATPercentage: q.VATPercentage,
		VATAmount:     q.VATAmount,
		GrandTotal:    q.GrandTotal,
		AmountInWords: q.AmountInWords,
	}, nil
}

func render(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := printTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// pdfAmount avoids the riyal sign, which the core PDF fonts cannot encode
func pdfAmount(v float64) string {
	return "SAR " + ledger.FormatAmount(v)
}

func drawPDF(doc *printDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, strings.ToUpper(doc.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, tr(doc.Company), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	info := [][2]string{
		{doc.Title + " No:", doc.Number},
		{"Date:", doc.Date},
	}
	if doc.DueDate != "" {
		info = append(info, [2]string{"Due Date:", doc.DueDate})
	}
	info = append(info,
		[2]string{"Client:", doc.Client},
		[2]string{"Contact:", doc.Contact},
		[2]string{"Project:", doc.Project},
		[2]string{"Location:", doc.Location},
		[2]string{"TRN:", doc.TRN},
	)
	if doc.Status != "" {
		info = append(info, [2]string{"Status:", strings.ToUpper(doc.Status)})
	}
	for _, row := range info {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(35, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{90, 25, 30, 45}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(248, 249, 250)
	for i, h := range []string{"Description", "Qty", "Rate", "Amount"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range doc.Items {
		pdf.CellFormat(widths[0], 7, tr(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, item.Qty, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, item.Rate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, pdfAmount(item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	totals := [][2]string{
		{"Subtotal:", pdfAmount(doc.Subtotal)},
		{fmt.Sprintf("VAT (%s%%):", strconv.FormatFloat(doc.VATPercentage, 'f', -1, 64)), pdfAmount(doc.VATAmount)},
		{"Grand Total:", pdfAmount(doc.GrandTotal)},
	}
	if doc.ShowBalance {
		totals = append(totals,
			[2]string{"Paid Amount:", pdfAmount(doc.PaidAmount)},
			[2]string{"Balance:", pdfAmount(doc.BalanceAmount)},
		)
	}
	pdf.SetFont("Arial", "B", 10)
	for _, row := range totals {
		pdf.CellFormat(145, 7, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.MultiCell(0, 6, "Amount in Words: "+tr(doc.AmountInWords), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}
	return buf.Bytes(), nil
}
