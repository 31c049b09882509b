package model

import (
	"fmt"
	"slices"
	"time"

	"tavola/shared/timezone"
)

// Service runs in numbered half hour slots. Slot 1 opens at 11:00 and the
// last slot of the day is 15, ending service at 18:30.
const (
	MinSlot = 1
	MaxSlot = 15

	ServiceSpanSlots = 3

	OpeningHour = 11
	SlotMinutes = 30
)

func ValidSlot(slot int) bool {
	return slot >= MinSlot && slot <= MaxSlot
}

// ServiceSpan expands a starting slot into the consecutive slots a seating
// occupies. Spans never extend past the last slot of the day.
func ServiceSpan(start int) []int64 {
	if !ValidSlot(start) {
		return nil
	}

	span := make([]int64, 0, ServiceSpanSlots)
	for slot := start; slot < start+ServiceSpanSlots && slot <= MaxSlot; slot++ {
		span = append(span, int64(slot))
	}

	return span
}

// SlotClock returns the wall clock hour and minute a slot begins at.
func SlotClock(slot int) (hour, minute int) {
	offset := (slot - MinSlot) * SlotMinutes

	return OpeningHour + offset/60, offset % 60
}

// SlotLabel renders a slot's start time as HHMM, e.g. slot 2 is "1130".
func SlotLabel(slot int) string {
	hour, minute := SlotClock(slot)

	return fmt.Sprintf("%02d%02d", hour, minute)
}

// SlotStart anchors a slot to a concrete instant on the given day in the
// application timezone.
func SlotStart(date time.Time, slot int) time.Time {
	hour, minute := SlotClock(slot)

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, timezone.GetLocation())
}

// Overlaps reports whether two slot sets share any slot.
func Overlaps(a, b []int64) bool {
	for _, slot := range a {
		if slices.Contains(b, slot) {
			return true
		}
	}

	return false
}
