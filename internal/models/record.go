package models

import "time"

// Record is implemented by every entity stored in a collection
type Record interface {
	RecordID() string
	RecordCreatedAt() string
}

// Collection keys. Each one holds a JSON array of its records.
const (
	CollectionEmployees  = "employees"
	CollectionExpenses   = "expenses"
	CollectionQuotations = "quotations"
	CollectionInvoices   = "invoices"
	CollectionPayments   = "payments"
	CollectionAttendance = "attendance"
)

// SessionKey holds the currently authenticated user object
const SessionKey = "user"

// Collections lists every collection key in display order
func Collections() []string {
	return []string{
		CollectionEmployees,
		CollectionExpenses,
		CollectionQuotations,
		CollectionInvoices,
		CollectionPayments,
		CollectionAttendance,
	}
}

// IsCollection reports whether name is a known collection key
func IsCollection(name string) bool {
	for _, c := range Collections() {
		if c == name {
			return true
		}
	}
	return false
}

// Timestamp formats creation times the way they are persisted
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp is the inverse of Timestamp. Unparseable values give the zero time.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
