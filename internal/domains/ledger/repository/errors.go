package repository

import (
	"errors"
	"fmt"
	"time"

	"tavola/shared/constant"
)

// ErrSlotConflict is the sentinel wrapped by SlotConflictError so callers
// can branch with errors.Is without caring which table collided.
var ErrSlotConflict = errors.New("slot conflict")

// SlotConflictError is returned when a hold could not be placed because one
// of the requested slots is already occupied on the given day.
type SlotConflictError struct {
	TableNumber int
	BookingDate time.Time
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("table %d already booked on %s", e.TableNumber, e.BookingDate.Format(constant.DayFormat))
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}
