package dto

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	ledgerModel "tavola/internal/domains/ledger/model"
	"tavola/internal/domains/reservation/model"
	tableModel "tavola/internal/domains/table/model"
	"tavola/shared"
	"tavola/shared/constant"
	gDto "tavola/shared/dto"
	gModel "tavola/shared/model"
	"tavola/shared/timezone"
)

type CreateReservationRequest struct {
	CustomerName   string `json:"customer_name"   validate:"required,max=100"`
	CustomerPhone  string `json:"customer_phone"  validate:"required,e164"`
	Guests         int    `json:"guests"          validate:"required,min=1,max=20"`
	BookingDate    string `json:"booking_date"    validate:"required"`
	Slot           int    `json:"slot"            validate:"required,min=1,max=15"`
	Tables         []int  `json:"tables"          validate:"required,min=1,max=22,dive,min=1,max=22"`
	SpecialRequest string `json:"special_request" validate:"omitempty,max=500"`
	Notes          string `json:"notes"           validate:"omitempty,max=500"`
}

// SortedTables returns the requested table numbers sorted ascending with
// duplicates removed, which is also the order holds are acquired in.
func (c *CreateReservationRequest) SortedTables() []int64 {
	tables := make([]int64, 0, len(c.Tables))

	for _, table := range c.Tables {
		if !slices.Contains(tables, int64(table)) {
			tables = append(tables, int64(table))
		}
	}

	slices.Sort(tables)

	return tables
}

// ToModel builds a confirmed reservation once the resolver has accepted the
// requested tables.
func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	bookingDate, err := timezone.Parse(constant.DayFormat, c.BookingDate)
	if err != nil {
		return model.Reservation{}, err
	}

	tables := c.SortedTables()

	return model.Reservation{
		ID:             uuid.NewString(),
		Number:         model.Number(bookingDate, c.Slot, tables),
		CustomerID:     user,
		CustomerName:   c.CustomerName,
		CustomerPhone:  c.CustomerPhone,
		Guests:         c.Guests,
		BookingDate:    bookingDate,
		Slot:           c.Slot,
		Tables:         pq.Int64Array(tables),
		Status:         model.StatusConfirmed,
		SpecialRequest: c.SpecialRequest,
		Notes:          c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateReservationRequest struct {
	CustomerName   *string `db:"customer_name"   json:"customer_name"   validate:"omitempty,max=100"`
	CustomerPhone  *string `db:"customer_phone"  json:"customer_phone"  validate:"omitempty,e164"`
	SpecialRequest *string `db:"special_request" json:"special_request" validate:"omitempty,max=500"`
	Notes          *string `db:"notes"           json:"notes"           validate:"omitempty,max=500"`
	Guests         *int    `json:"guests"       validate:"omitempty,min=1,max=20"`
	BookingDate    *string `json:"booking_date" validate:"omitempty"`
	Slot           *int    `json:"slot"         validate:"omitempty,min=1,max=15"`
	Tables         []int   `json:"tables"       validate:"omitempty,min=1,max=22,dive,min=1,max=22"`
}

// Reseats reports whether the update touches anything that changes which
// slots or tables the reservation holds.
func (u *UpdateReservationRequest) Reseats() bool {
	return u.Guests != nil || u.BookingDate != nil || u.Slot != nil || len(u.Tables) > 0
}

// SortedTables mirrors CreateReservationRequest.SortedTables for the
// requested replacement table set.
func (u *UpdateReservationRequest) SortedTables() []int64 {
	tables := make([]int64, 0, len(u.Tables))

	for _, table := range u.Tables {
		if !slices.Contains(tables, int64(table)) {
			tables = append(tables, int64(table))
		}
	}

	slices.Sort(tables)

	return tables
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=seated completed cancelled no_show"`
}

type ReservationResponse struct {
	ID             string  `json:"id"`
	Number         string  `json:"number"`
	CustomerID     string  `json:"customer_id"`
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	Guests         int     `json:"guests"`
	BookingDate    string  `json:"booking_date"`
	Slot           int     `json:"slot"`
	StartTime      string  `json:"start_time"`
	Tables         []int64 `json:"tables"`
	Status         string  `json:"status"`
	SpecialRequest string  `json:"special_request"`
	Notes          string  `json:"notes"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.Number = model.Number
	r.CustomerID = model.CustomerID
	r.CustomerName = model.CustomerName
	r.CustomerPhone = model.CustomerPhone
	r.Guests = model.Guests
	r.BookingDate = model.BookingDate.Format(constant.DayFormat)
	r.Slot = model.Slot
	r.StartTime = model.StartTime().Format("15:04")
	r.Tables = model.Tables
	r.Status = string(model.Status)
	r.SpecialRequest = model.SpecialRequest
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type AvailabilityRequest struct {
	Date   string `json:"date"   validate:"required"`
	Slot   int    `json:"slot"   validate:"required,min=1,max=15"`
	Guests int    `json:"guests" validate:"required,min=1,max=20"`
}

type AvailabilityTable struct {
	TableNumber int  `json:"table_number"`
	Capacity    int  `json:"capacity"`
	Active      bool `json:"active"`
}

// AvailabilityResponse partitions the registry for one date and slot:
// tables free for the full service span, tables whose span is taken, and
// tables that cannot seat the party at all.
type AvailabilityResponse struct {
	Date        string              `json:"date"`
	Slot        int                 `json:"slot"`
	StartTime   string              `json:"start_time"`
	Guests      int                 `json:"guests"`
	Available   []AvailabilityTable `json:"available"`
	Occupied    []AvailabilityTable `json:"occupied"`
	NotEligible []AvailabilityTable `json:"not_eligible"`
}

func (r *AvailabilityResponse) FromModels(date time.Time, slot, guests int, tables []tableModel.Table, entries []ledgerModel.BookingEntry) {
	r.Date = date.Format(constant.DayFormat)
	r.Slot = slot
	r.StartTime = ledgerModel.SlotStart(date, slot).Format("15:04")
	r.Guests = guests
	r.Available = []AvailabilityTable{}
	r.Occupied = []AvailabilityTable{}
	r.NotEligible = []AvailabilityTable{}

	span := ledgerModel.ServiceSpan(slot)

	occupied := map[int][]int64{}
	for _, entry := range entries {
		occupied[entry.TableNumber] = entry.Slots
	}

	for _, table := range tables {
		view := AvailabilityTable{
			TableNumber: table.TableNumber,
			Capacity:    table.Capacity,
			Active:      table.Active,
		}

		switch {
		case !table.Active || !table.Seats(guests):
			r.NotEligible = append(r.NotEligible, view)
		case ledgerModel.Overlaps(span, occupied[table.TableNumber]):
			r.Occupied = append(r.Occupied, view)
		default:
			r.Available = append(r.Available, view)
		}
	}
}
