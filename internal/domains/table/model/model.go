package model

import "tavola/shared/model"

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldTableNumber = "table_number"
	FieldCapacity    = "capacity"
	FieldActive      = "active"
	FieldNotes       = "notes"
)

// Registry bounds. Table numbers are fixed at provisioning time and never
// reused, so the range doubles as an identity check.
const (
	MinTableNumber = 1
	MaxTableNumber = 22

	MinCapacity = 1
	MaxCapacity = 12

	DefaultCapacity = 4
)

type Table struct {
	TableNumber int    `db:"table_number"`
	Capacity    int    `db:"capacity"`
	Active      bool   `db:"active"`
	Notes       string `db:"notes"`
	model.Metadata
}

// Seats reports whether this table alone can host a party of the given size.
// A single table may be short by at most one seat (the spare-seat rule).
func (t *Table) Seats(guests int) bool {
	return t.Capacity+1 >= guests
}

// ValidTableNumber reports whether n falls inside the provisioned range.
func ValidTableNumber(n int) bool {
	return n >= MinTableNumber && n <= MaxTableNumber
}
