package model

import "time"

const (
	// ReservationTopic delivers lifecycle changes for downstream consumers
	// such as notification and reporting services.
	ReservationTopic = "reservations.lifecycle"

	EventReservationCreated       = "reservation.created"
	EventReservationUpdated       = "reservation.updated"
	EventReservationStatusChanged = "reservation.status.changed"
)

// Event is the payload published to ReservationTopic.
type Event struct {
	EventType      string    `json:"event_type"`
	ReservationID  string    `json:"reservation_id"`
	Number         string    `json:"number"`
	CustomerID     string    `json:"customer_id"`
	Tables         []int64   `json:"tables"`
	BookingDate    string    `json:"booking_date"`
	Slot           int       `json:"slot"`
	Guests         int       `json:"guests"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
