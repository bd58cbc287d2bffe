package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
)

// Invoice events
const (
	EventReceivePartial = "receive_partial"
	EventSettle         = "settle"
	EventMarkPending    = "mark_pending"
	EventMarkPartial    = "mark_partial"
	EventMarkPaid       = "mark_paid"
)

var allStatuses = []string{
	models.InvoiceStatusPending,
	models.InvoiceStatusPartial,
	models.InvoiceStatusPaid,
}

// InvoiceFSM wraps an invoice with its payment status machine
type InvoiceFSM struct {
	invoice *models.Invoice
	fsm     *fsm.FSM
}

// NewInvoiceFSM creates a state machine positioned at the invoice's current status
func NewInvoiceFSM(invoice *models.Invoice) *InvoiceFSM {
	ifsm := &InvoiceFSM{
		invoice: invoice,
	}

	initial := invoice.PaymentStatus
	if !models.IsInvoiceStatus(initial) {
		initial = models.InvoiceStatusPending
	}

	ifsm.fsm = fsm.NewFSM(
		initial,
		fsm.Events{
			// money received, balance still open. A paid invoice with an open balance
			// drops back to partial.
			{Name: EventReceivePartial, Src: allStatuses, Dst: models.InvoiceStatusPartial},

			// balance reached zero; overpayment keeps it paid
			{Name: EventSettle, Src: allStatuses, Dst: models.InvoiceStatusPaid},

			// manual overrides from the edit form
			{Name: EventMarkPending, Src: allStatuses, Dst: models.InvoiceStatusPending},
			{Name: EventMarkPartial, Src: allStatuses, Dst: models.InvoiceStatusPartial},
			{Name: EventMarkPaid, Src: allStatuses, Dst: models.InvoiceStatusPaid},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// RecordPayment applies amount to the invoice and moves it to the derived status
func (f *InvoiceFSM) RecordPayment(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("payment amount must be positive, got %.2f", amount)
	}

	s := ledger.Settle(f.invoice.GrandTotal, f.invoice.PaidAmount, amount)
	return f.apply(ctx, s, false)
}

// Reconcile sets the invoice to an absolute paid amount, e.g. the sum of its payments.
// Unlike RecordPayment it may move a paid invoice back to partial or pending.
func (f *InvoiceFSM) Reconcile(ctx context.Context, paidAmount float64) error {
	s := ledger.SettleTotal(f.invoice.GrandTotal, paidAmount)
	return f.apply(ctx, s, true)
}

func (f *InvoiceFSM) apply(ctx context.Context, s ledger.Settlement, manual bool) error {
	var event string
	switch s.Status {
	case models.InvoiceStatusPaid:
		event = EventSettle
	case models.InvoiceStatusPartial:
		event = EventReceivePartial
		if manual {
			event = EventMarkPartial
		}
	default:
		event = EventMarkPending
	}

	if err := f.fire(ctx, event); err != nil {
		return err
	}

	f.invoice.PaidAmount = s.PaidAmount
	f.invoice.BalanceAmount = s.BalanceAmount
	f.invoice.PaymentStatus = f.fsm.Current()
	return nil
}

// Override applies a manually chosen status. Paid forces the paid amount to the grand
// total; other statuses keep the paid amount and re-derive the balance.
func (f *InvoiceFSM) Override(ctx context.Context, status string) error {
	var event string
	switch status {
	case models.InvoiceStatusPaid:
		event = EventMarkPaid
	case models.InvoiceStatusPartial:
		event = EventMarkPartial
	case models.InvoiceStatusPending:
		event = EventMarkPending
	default:
		return fmt.Errorf("unknown invoice status: %s", status)
	}

	if err := f.fire(ctx, event); err != nil {
		return err
	}

	if status == models.InvoiceStatusPaid {
		f.invoice.PaidAmount = f.invoice.GrandTotal
		f.invoice.BalanceAmount = 0
	} else {
		s := ledger.SettleTotal(f.invoice.GrandTotal, f.invoice.PaidAmount)
		f.invoice.BalanceAmount = s.BalanceAmount
	}
	f.invoice.PaymentStatus = f.fsm.Current()
	return nil
}

// fire runs an event, treating a transition onto the same state as success
func (f *InvoiceFSM) fire(ctx context.Context, event string) error {
	err := f.fsm.Event(ctx, event)
	if err == nil {
		return nil
	}
	var same fsm.NoTransitionError
	if errors.As(err, &same) {
		return nil
	}
	return fmt.Errorf("invoice %s cannot %s from %s: %w", f.invoice.InvoiceNo, event, f.fsm.Current(), err)
}

// Current returns the current state
func (f *InvoiceFSM) Current() string {
	return f.fsm.Current()
}

// Can checks if a transition is possible
func (f *InvoiceFSM) Can(event string) bool {
	return f.fsm.Can(event)
}
