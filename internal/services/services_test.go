package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/config"
	"github.com/sjperalta/lumina-api/internal/kvstore"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/internal/storage"
)

var fixedNow = time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Environment:          "test",
		StoreDriver:          config.StoreMemory,
		JWTSecret:            "test-secret",
		JWTExpirationHours:   1,
		AdminPassword:        "letmein",
		CompanyName:          "Lumina Test Co",
		DefaultVATPercentage: 15,
		PaymentTermDays:      30,
		PhoneRegion:          "SA",
	}
}

// newTestServices wires every service over an in-memory store with a fixed clock
func newTestServices(t *testing.T) (*Services, *repository.Repositories) {
	t.Helper()

	repos := repository.NewRepositories(kvstore.NewMemoryStore(), kvstore.NewMutexLocker())
	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svcs, err := NewServices(repos, nil, archive, testConfig())
	require.NoError(t, err)

	clock := func() time.Time { return fixedNow }
	svcs.Employee.now = clock
	svcs.Expense.now = clock
	svcs.Quotation.now = clock
	svcs.Invoice.now = clock
	svcs.Payment.now = clock
	svcs.Attendance.now = clock
	svcs.Dashboard.now = clock
	svcs.Export.now = clock
	svcs.Backup.now = clock
	return svcs, repos
}

func vat(v float64) *float64 { return &v }

// createInvoice stores an invoice with a single line worth total and no VAT
func createInvoice(t *testing.T, svcs *Services, total string) *models.Invoice {
	t.Helper()
	inv, err := svcs.Invoice.Create(context.Background(), InvoiceInput{
		DocumentInput: DocumentInput{
			Date:          "01-03-2025",
			Client:        "Acme Trading",
			VATPercentage: vat(0),
			Items:         []models.QuotationItem{{Description: "Works", Qty: "1", Rate: total}},
		},
	})
	require.NoError(t, err)
	return inv
}
