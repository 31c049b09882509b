package model

import (
	"time"

	"github.com/lib/pq"

	gModel "tavola/shared/model"
)

const (
	TableName  = "booking_entries"
	EntityName = "booking_entry"
)

const (
	FieldTableNumber = "table_number"
	FieldBookingDate = "booking_date"
)

// BookingEntry is the occupancy record for one table on one calendar day.
// Slots is kept sorted and duplicate free; two entries for the same
// (table, day) pair cannot exist.
type BookingEntry struct {
	TableNumber int           `db:"table_number" json:"table_number"`
	BookingDate time.Time     `db:"booking_date" json:"booking_date"`
	Slots       pq.Int64Array `db:"slots"        json:"slots"`
	gModel.Metadata
}
