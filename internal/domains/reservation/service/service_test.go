package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tavola/config"
	kafkaMocks "tavola/infras/kafka/mocks"
	"tavola/infras/otel/mocks"
	ledgerMocks "tavola/internal/domains/ledger/mocks"
	ledgerModel "tavola/internal/domains/ledger/model"
	ledgerRepo "tavola/internal/domains/ledger/repository"
	reservationMocks "tavola/internal/domains/reservation/mocks"
	"tavola/internal/domains/reservation/model"
	"tavola/internal/domains/reservation/model/dto"
	"tavola/internal/domains/reservation/service"
	tableMocks "tavola/internal/domains/table/mocks"
	tableModel "tavola/internal/domains/table/model"
	cacheMocks "tavola/shared/cache/mocks"
	"tavola/shared/constant"
	"tavola/shared/failure"
	gModel "tavola/shared/model"
	"tavola/shared/timezone"
)

type fixture struct {
	repo   *reservationMocks.MockReservation
	tables *tableMocks.MockTable
	ledger *ledgerMocks.MockLedger
	cache  *cacheMocks.MockRedisCache
	broker *kafkaMocks.MockClient
	svc    service.Reservation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:   reservationMocks.NewMockReservation(ctrl),
		tables: tableMocks.NewMockTable(ctrl),
		ledger: ledgerMocks.NewMockLedger(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		broker: kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.tables, f.ledger, cfg, f.cache, mocks.NewOtel(), f.broker)

	// Cache invalidation and event publication are fire and forget.
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.broker.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func customerCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func staffCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func activeTable(number, capacity int) tableModel.Table {
	return tableModel.Table{
		TableNumber: number,
		Capacity:    capacity,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func confirmedReservation(id string, tables []int64, slot int) model.Reservation {
	bookingDate := timezone.Now().AddDate(0, 0, 2)

	return model.Reservation{
		ID:          id,
		Number:      model.Number(bookingDate, slot, tables),
		CustomerID:  "customer-1",
		Guests:      3,
		BookingDate: bookingDate,
		Slot:        slot,
		Tables:      pq.Int64Array(tables),
		Status:      model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "customer-1",
			ModifiedBy: "customer-1",
		},
	}
}

func TestReservationService_Create(t *testing.T) {
	today := timezone.Now().Format(constant.DayFormat)

	tests := []struct {
		name       string
		req        dto.CreateReservationRequest
		setupMock  func(f *fixture)
		wantErr    bool
		wantReason string
	}{
		{
			name: "successful creation",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       3,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{5},
			},
			setupMock: func(f *fixture) {
				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(5, 4), nil)

				f.ledger.EXPECT().
					OccupiedSlots(gomock.Any(), 5, gomock.Any()).
					Return([]int64{}, nil)

				f.ledger.EXPECT().
					HoldSpan(gomock.Any(), []int{5}, gomock.Any(), []int64{5, 6, 7}, gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "date in the past",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       3,
				BookingDate:  "2000-01-01",
				Slot:         5,
				Tables:       []int{5},
			},
			setupMock:  func(f *fixture) {},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name: "malformed date",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       3,
				BookingDate:  "01/05/2026",
				Slot:         5,
				Tables:       []int{5},
			},
			setupMock:  func(f *fixture) {},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name: "unknown table",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       3,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{7},
			},
			setupMock: func(f *fixture) {
				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tableModel.Table{}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonTableInvalid,
		},
		{
			name: "table number out of range",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       3,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{23},
			},
			setupMock:  func(f *fixture) {},
			wantErr:    true,
			wantReason: failure.ReasonTableInvalid,
		},
		{
			name: "inactive table",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       3,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{7},
			},
			setupMock: func(f *fixture) {
				table := activeTable(7, 4)
				table.Active = false

				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(table, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonTableInvalid,
		},
		{
			name: "party larger than the spare seat allowance",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       6,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{5},
			},
			setupMock: func(f *fixture) {
				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(5, 4), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonCapacityExceeded,
		},
		{
			name: "party of capacity plus one is seated",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       5,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{5},
			},
			setupMock: func(f *fixture) {
				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(5, 4), nil)

				f.ledger.EXPECT().
					OccupiedSlots(gomock.Any(), 5, gomock.Any()).
					Return([]int64{}, nil)

				f.ledger.EXPECT().
					HoldSpan(gomock.Any(), []int{5}, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "two small tables seat a large party together",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       7,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{2, 3},
			},
			setupMock: func(f *fixture) {
				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(2, 4), nil)

				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(3, 4), nil)

				f.ledger.EXPECT().
					OccupiedSlots(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]int64{}, nil).
					Times(2)

				f.ledger.EXPECT().
					HoldSpan(gomock.Any(), []int{2, 3}, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "overlapping span is rejected",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       2,
				BookingDate:  today,
				Slot:         11,
				Tables:       []int{5},
			},
			setupMock: func(f *fixture) {
				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(5, 4), nil)

				f.ledger.EXPECT().
					OccupiedSlots(gomock.Any(), 5, gomock.Any()).
					Return([]int64{12}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonSlotConflict,
		},
		{
			name: "conflict detected at hold time",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       3,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{5},
			},
			setupMock: func(f *fixture) {
				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(5, 4), nil)

				f.ledger.EXPECT().
					OccupiedSlots(gomock.Any(), 5, gomock.Any()).
					Return([]int64{}, nil)

				f.ledger.EXPECT().
					HoldSpan(gomock.Any(), []int{5}, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&ledgerRepo.SlotConflictError{TableNumber: 5, BookingDate: timezone.Now()})
			},
			wantErr:    true,
			wantReason: failure.ReasonSlotConflict,
		},
		{
			name: "insert failure releases the hold",
			req: dto.CreateReservationRequest{
				CustomerName: "Ada",
				Guests:       3,
				BookingDate:  today,
				Slot:         5,
				Tables:       []int{5},
			},
			setupMock: func(f *fixture) {
				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(5, 4), nil)

				f.ledger.EXPECT().
					OccupiedSlots(gomock.Any(), 5, gomock.Any()).
					Return([]int64{}, nil)

				f.ledger.EXPECT().
					HoldSpan(gomock.Any(), []int{5}, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))

				f.ledger.EXPECT().
					ReleaseSpan(gomock.Any(), []int{5}, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Create(customerCtx("customer-1"), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantReason != "" {
					assert.Equal(t, tt.wantReason, failure.GetReason(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, string(model.StatusConfirmed), result.Status)
				assert.NotEmpty(t, result.Number)
			}
		})
	}
}

func TestReservationService_Update(t *testing.T) {
	tomorrowPlus := timezone.Now().AddDate(0, 0, 3).Format(constant.DayFormat)

	tests := []struct {
		name       string
		ctx        context.Context
		req        dto.UpdateReservationRequest
		setupMock  func(f *fixture)
		wantErr    bool
		wantReason string
		wantTables []int64
	}{
		{
			name: "moving to another table releases the old hold and takes the new one",
			ctx:  customerCtx("customer-1"),
			req:  dto.UpdateReservationRequest{Tables: []int{3}},
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1, 2}, 5)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				f.ledger.EXPECT().
					ReleaseSpan(gomock.Any(), []int{1, 2}, gomock.Any(), []int64{5, 6, 7}, gomock.Any()).
					Return(nil)

				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(3, 4), nil)

				f.ledger.EXPECT().
					HoldSpan(gomock.Any(), []int{3}, gomock.Any(), []int64{5, 6, 7}, gomock.Any()).
					Return(nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantTables: []int64{3},
		},
		{
			name: "rejected reseat restores the original hold",
			ctx:  customerCtx("customer-1"),
			req:  dto.UpdateReservationRequest{Tables: []int{3}},
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1, 2}, 5)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				f.ledger.EXPECT().
					ReleaseSpan(gomock.Any(), []int{1, 2}, gomock.Any(), []int64{5, 6, 7}, gomock.Any()).
					Return(nil)

				f.tables.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeTable(3, 4), nil)

				f.ledger.EXPECT().
					HoldSpan(gomock.Any(), []int{3}, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&ledgerRepo.SlotConflictError{TableNumber: 3, BookingDate: timezone.Now()})

				f.ledger.EXPECT().
					HoldSpan(gomock.Any(), []int{1, 2}, gomock.Any(), []int64{5, 6, 7}, gomock.Any()).
					Return(nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonSlotConflict,
		},
		{
			name: "contact update does not touch the ledger",
			ctx:  customerCtx("customer-1"),
			req: dto.UpdateReservationRequest{
				CustomerName: strPtr("Ada Lovelace"),
			},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1}, 5), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantTables: []int64{1},
		},
		{
			name: "moving the date revalidates it",
			ctx:  customerCtx("customer-1"),
			req:  dto.UpdateReservationRequest{BookingDate: strPtr("2000-01-01")},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1}, 5), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name: "another customer's reservation is off limits",
			ctx:  customerCtx("customer-2"),
			req:  dto.UpdateReservationRequest{Tables: []int{3}},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1}, 5), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonForbidden,
		},
		{
			name: "cancelled reservations cannot be changed",
			ctx:  customerCtx("customer-1"),
			req:  dto.UpdateReservationRequest{Tables: []int{3}},
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1}, 5)
				reservation.Status = model.StatusCancelled

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonInvalidTransition,
		},
		{
			name: "empty update",
			ctx:  customerCtx("customer-1"),
			req:  dto.UpdateReservationRequest{},
			setupMock: func(f *fixture) {
			},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name: "unknown reservation",
			ctx:  customerCtx("customer-1"),
			req:  dto.UpdateReservationRequest{BookingDate: &tomorrowPlus},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Update(tt.ctx, tt.req, "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantReason != "" {
					assert.Equal(t, tt.wantReason, failure.GetReason(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTables, result.Tables)
			}
		})
	}
}

func TestReservationService_Get(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		setupMock  func(f *fixture)
		wantErr    bool
		wantReason string
	}{
		{
			name: "owner reads their own reservation",
			ctx:  customerCtx("customer-1"),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1}, 5), nil)
			},
		},
		{
			name: "staff reads any reservation",
			ctx:  staffCtx("admin-1"),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1}, 5), nil)
			},
		},
		{
			name: "non-owner cannot read",
			ctx:  customerCtx("customer-2"),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1}, 5), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonForbidden,
		},
		{
			name: "cached copy is owner gated too",
			ctx:  customerCtx("customer-2"),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						res, ok := value.(*dto.ReservationResponse)
						if ok {
							res.FromModel(confirmedReservation("res-1", []int64{1}, 5))
						}

						return nil
					})
			},
			wantErr:    true,
			wantReason: failure.ReasonForbidden,
		},
		{
			name: "unknown reservation",
			ctx:  customerCtx("customer-1"),
			setupMock: func(f *fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Get(tt.ctx, "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantReason != "" {
					assert.Equal(t, tt.wantReason, failure.GetReason(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "res-1", result.ID)
			}
		})
	}
}

func TestReservationService_Cancel(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		setupMock  func(f *fixture)
		wantErr    bool
		wantReason string
	}{
		{
			name: "owner cancels well before the seating",
			ctx:  customerCtx("customer-1"),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1, 2}, 5), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.ledger.EXPECT().
					ReleaseSpan(gomock.Any(), []int{1, 2}, gomock.Any(), []int64{5, 6, 7}, gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "owner cannot cancel at the last minute",
			ctx:  customerCtx("customer-1"),
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1}, 5)
				reservation.BookingDate = timezone.Now().AddDate(0, 0, -1)

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name: "staff cancel has no lead time",
			ctx:  staffCtx("admin-1"),
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1}, 5)
				reservation.BookingDate = timezone.Now()

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.ledger.EXPECT().
					ReleaseSpan(gomock.Any(), []int{1}, gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "non-owner cannot cancel",
			ctx:  customerCtx("customer-2"),
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1}, 5), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonForbidden,
		},
		{
			name: "already cancelled",
			ctx:  staffCtx("admin-1"),
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1}, 5)
				reservation.Status = model.StatusCancelled

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Cancel(tt.ctx, "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantReason != "" {
					assert.Equal(t, tt.wantReason, failure.GetReason(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, string(model.StatusCancelled), result.Status)
			}
		})
	}
}

func TestReservationService_Transition(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		target     string
		setupMock  func(f *fixture)
		wantErr    bool
		wantReason string
	}{
		{
			name:   "seating on the booking date",
			ctx:    staffCtx("admin-1"),
			target: "seated",
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1}, 5)
				reservation.BookingDate = timezone.Now()

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:   "seating ahead of the booking date",
			ctx:    staffCtx("admin-1"),
			target: "seated",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1}, 5), nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonInvalidTransition,
		},
		{
			name:   "marking a no-show frees the slots",
			ctx:    staffCtx("admin-1"),
			target: "no_show",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedReservation("res-1", []int64{1, 2}, 5), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.ledger.EXPECT().
					ReleaseSpan(gomock.Any(), []int{1, 2}, gomock.Any(), []int64{5, 6, 7}, gomock.Any()).
					Return(nil)
			},
		},
		{
			name:   "a no-show cannot be seated afterwards",
			ctx:    staffCtx("admin-1"),
			target: "seated",
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1}, 5)
				reservation.Status = model.StatusNoShow
				reservation.BookingDate = timezone.Now()

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonInvalidTransition,
		},
		{
			name:   "completing a seated reservation keeps the slots",
			ctx:    staffCtx("admin-1"),
			target: "completed",
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1}, 5)
				reservation.Status = model.StatusSeated

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:   "customers cannot seat reservations",
			ctx:    customerCtx("customer-1"),
			target: "seated",
			setupMock: func(f *fixture) {
				reservation := confirmedReservation("res-1", []int64{1}, 5)
				reservation.BookingDate = timezone.Now()

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			result, err := f.svc.Transition(tt.ctx, dto.TransitionRequest{Status: tt.target}, "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantReason != "" {
					assert.Equal(t, tt.wantReason, failure.GetReason(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.target, result.Status)
			}
		})
	}
}

func TestReservationService_Availability(t *testing.T) {
	today := timezone.Now().Format(constant.DayFormat)

	t.Run("partitions the registry", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		inactive := activeTable(4, 6)
		inactive.Active = false

		f.tables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{
				activeTable(1, 4),
				activeTable(2, 4),
				activeTable(3, 1),
				inactive,
			}, nil)

		f.ledger.EXPECT().
			EntriesForDate(gomock.Any(), gomock.Any()).
			Return([]ledgerModel.BookingEntry{
				{TableNumber: 2, Slots: pq.Int64Array{5, 6, 7}},
			}, nil)

		res, err := f.svc.Availability(customerCtx("customer-1"), dto.AvailabilityRequest{
			Date:   today,
			Slot:   5,
			Guests: 3,
		})

		assert.NoError(t, err)
		assert.Equal(t, []dto.AvailabilityTable{{TableNumber: 1, Capacity: 4, Active: true}}, res.Available)
		assert.Equal(t, []dto.AvailabilityTable{{TableNumber: 2, Capacity: 4, Active: true}}, res.Occupied)
		assert.Len(t, res.NotEligible, 2)
	})

	t.Run("adjacent span stays available", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.tables.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]tableModel.Table{activeTable(5, 4)}, nil)

		f.ledger.EXPECT().
			EntriesForDate(gomock.Any(), gomock.Any()).
			Return([]ledgerModel.BookingEntry{
				{TableNumber: 5, Slots: pq.Int64Array{10, 11, 12}},
			}, nil)

		res, err := f.svc.Availability(customerCtx("customer-1"), dto.AvailabilityRequest{
			Date:   today,
			Slot:   13,
			Guests: 2,
		})

		assert.NoError(t, err)
		assert.Len(t, res.Available, 1)
		assert.Empty(t, res.Occupied)
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Availability(customerCtx("customer-1"), dto.AvailabilityRequest{
			Date:   "not-a-date",
			Slot:   5,
			Guests: 2,
		})

		assert.Error(t, err)
		assert.Equal(t, failure.ReasonValidation, failure.GetReason(err))
	})

	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := f.svc.Availability(customerCtx("customer-1"), dto.AvailabilityRequest{
			Date:   today,
			Slot:   5,
			Guests: 2,
		})

		assert.NoError(t, err)
	})
}

func strPtr(s string) *string {
	return &s
}
