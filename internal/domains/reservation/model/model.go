package model

import (
	"time"

	"github.com/lib/pq"

	ledgerModel "tavola/internal/domains/ledger/model"
	gModel "tavola/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"
)

const (
	FieldID          = "id"
	FieldNumber      = "number"
	FieldCustomerID  = "customer_id"
	FieldBookingDate = "booking_date"
	FieldSlot        = "slot"
	FieldStatus      = "status"
)

const (
	MinGuests = 1
	MaxGuests = 20

	// UserCancelLeadTime is how long before the seating a customer can still
	// cancel on their own. Staff cancellations have no lead time.
	UserCancelLeadTime = 2 * time.Hour
)

type Reservation struct {
	ID             string        `db:"id"              json:"id"`
	Number         string        `db:"number"          json:"number"`
	CustomerID     string        `db:"customer_id"     json:"customer_id"`
	CustomerName   string        `db:"customer_name"   json:"customer_name"`
	CustomerPhone  string        `db:"customer_phone"  json:"customer_phone"`
	Guests         int           `db:"guests"          json:"guests"`
	BookingDate    time.Time     `db:"booking_date"    json:"booking_date"`
	Slot           int           `db:"slot"            json:"slot"`
	Tables         pq.Int64Array `db:"tables"          json:"tables"`
	Status         Status        `db:"status"          json:"status"`
	SpecialRequest string        `db:"special_request" json:"special_request"`
	Notes          string        `db:"notes"           json:"notes"`
	gModel.Metadata
}

// HeldSpan returns the ledger slots this reservation occupies.
func (r *Reservation) HeldSpan() []int64 {
	return ledgerModel.ServiceSpan(r.Slot)
}

// StartTime is the instant the seating begins in the application timezone.
func (r *Reservation) StartTime() time.Time {
	return ledgerModel.SlotStart(r.BookingDate, r.Slot)
}

// TableNumbers converts the held table set for ledger calls.
func (r *Reservation) TableNumbers() []int {
	numbers := make([]int, len(r.Tables))
	for i, table := range r.Tables {
		numbers[i] = int(table)
	}

	return numbers
}
