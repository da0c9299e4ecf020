package enum

import "database/sql/driver"

// InvoiceStatus represents the collection state of an invoice.
// LATE and CANCELLED are representable but are never assigned by the
// ledger recompute rule; they exist for manual bookkeeping and future rules.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusLate      InvoiceStatus = "LATE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid reports whether the status is one of the known values
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusLate, InvoiceStatusCancelled:
		return true
	}
	return false
}

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = InvoiceStatus(v)
	case []byte:
		*s = InvoiceStatus(v)
	}
	return nil
}
