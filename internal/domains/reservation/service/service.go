package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"tavola/config"
	"tavola/infras/kafka"
	"tavola/infras/otel"
	ledgerModel "tavola/internal/domains/ledger/model"
	ledgerRepo "tavola/internal/domains/ledger/repository"
	"tavola/internal/domains/reservation/model"
	"tavola/internal/domains/reservation/model/dto"
	"tavola/internal/domains/reservation/repository"
	tableModel "tavola/internal/domains/table/model"
	tableRepo "tavola/internal/domains/table/repository"
	tableService "tavola/internal/domains/table/service"
	"tavola/shared"
	"tavola/shared/cache"
	"tavola/shared/constant"
	gDto "tavola/shared/dto"
	"tavola/shared/failure"
	"tavola/shared/timezone"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
	cacheAvailability      = "reservation:availability"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
	Transition(ctx context.Context, req dto.TransitionRequest, id string) (dto.ReservationResponse, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo   repository.Reservation
	tables tableRepo.Table
	ledger ledgerRepo.Ledger
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	broker kafka.Client
}

func New(repo repository.Reservation, tables tableRepo.Table, ledger ledgerRepo.Ledger, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, broker kafka.Client) Reservation {
	return &serviceImpl{
		repo:   repo,
		tables: tables,
		ledger: ledger,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		broker: broker,
	}
}

func filterByID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

// beforeToday compares at day granularity in the application timezone.
func beforeToday(date time.Time) bool {
	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.GetLocation())

	return date.Before(today)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// actorFor maps the authenticated role onto the lifecycle actor.
func actorFor(role string) string {
	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		return model.ActorStaff
	}

	return model.ActorCustomer
}

func toInts(tables []int64) []int {
	numbers := make([]int, len(tables))
	for i, table := range tables {
		numbers[i] = int(table)
	}

	return numbers
}

// resolveTables checks every requested table against the registry and the
// capacity policy. A single table may be one seat short of the party, any
// combination of tables must seat it outright.
func (s *serviceImpl) resolveTables(ctx context.Context, tables []int64, guests int) error {
	totalCapacity := 0

	for _, tableNumber := range tables {
		if !tableModel.ValidTableNumber(int(tableNumber)) {
			return failure.TableInvalid(fmt.Sprintf("table %d does not exist", tableNumber)) // nolint:wrapcheck
		}

		table, err := s.tables.Get(ctx, tableService.FilterByTableNumber(int(tableNumber)))
		if err != nil {
			log.Error().Err(err).Msg("failed to get table")

			return fmt.Errorf("failed to get table: %w", err)
		}

		if table.TableNumber == 0 {
			return failure.TableInvalid(fmt.Sprintf("table %d does not exist", tableNumber)) // nolint:wrapcheck
		}

		if !table.Active {
			return failure.TableInvalid(fmt.Sprintf("table %d is not in service", tableNumber)) // nolint:wrapcheck
		}

		if len(tables) == 1 && !table.Seats(guests) {
			return failure.CapacityExceeded(fmt.Sprintf("table %d seats %d and cannot take a party of %d", tableNumber, table.Capacity, guests)) // nolint:wrapcheck
		}

		totalCapacity += table.Capacity
	}

	if len(tables) > 1 && totalCapacity < guests {
		return failure.CapacityExceeded(fmt.Sprintf("tables seat %d combined and cannot take a party of %d", totalCapacity, guests)) // nolint:wrapcheck
	}

	return nil
}

// holdTables places the span on every table, translating ledger conflicts
// into the stable rejection the caller branches on.
func (s *serviceImpl) holdTables(ctx context.Context, tables []int64, date time.Time, span []int64, user string) error {
	err := s.ledger.HoldSpan(ctx, toInts(tables), date, span, user)

	var conflict *ledgerRepo.SlotConflictError
	if errors.As(err, &conflict) {
		return failure.SlotConflict(fmt.Sprintf("table %d is already booked for the requested time", conflict.TableNumber)) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to hold slots")

		return fmt.Errorf("failed to hold slots: %w", err)
	}

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, reservation model.Reservation, previous model.Status) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := model.Event{
			EventType:     eventType,
			ReservationID: reservation.ID,
			Number:        reservation.Number,
			CustomerID:    reservation.CustomerID,
			Tables:        reservation.Tables,
			BookingDate:   reservation.BookingDate.Format(constant.DayFormat),
			Slot:          reservation.Slot,
			Guests:        reservation.Guests,
			Status:        string(reservation.Status),
			OccurredAt:    timezone.Now(),
		}
		if previous != "" {
			event.PreviousStatus = string(previous)
		}

		if err := s.broker.SendMessages(c, model.ReservationTopic, kafka.Message{Key: reservation.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("eventType", eventType).Msg("failed to publish reservation event")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string, dates ...time.Time) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != "" {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete reservation from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)

		for _, date := range dates {
			shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheAvailability, date.Format(constant.DayFormat)))
		}
	}()
}

// Create runs the full admission path for a reservation request: date and
// party bounds, registry and capacity checks, then an atomic hold of the
// service span before the record is persisted.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	bookingDate, err := timezone.Parse(constant.DayFormat, req.BookingDate)
	if err != nil {
		return res, failure.BadRequestFromString("booking date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	if beforeToday(bookingDate) {
		return res, failure.BadRequestFromString("booking date cannot be in the past") // nolint:wrapcheck
	}

	tables := req.SortedTables()

	if err = s.resolveTables(ctx, tables, req.Guests); err != nil {
		return res, err
	}

	span := ledgerModel.ServiceSpan(req.Slot)

	for _, tableNumber := range tables {
		occupied, err := s.ledger.OccupiedSlots(ctx, int(tableNumber), bookingDate)
		if err != nil {
			log.Error().Err(err).Msg("failed to check table availability")

			return res, fmt.Errorf("failed to check table availability: %w", err)
		}

		if ledgerModel.Overlaps(span, occupied) {
			return res, failure.SlotConflict(fmt.Sprintf("table %d is already booked for the requested time", tableNumber)) // nolint:wrapcheck
		}
	}

	if err = s.holdTables(ctx, tables, bookingDate, span, user); err != nil {
		return res, err
	}

	reservation, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString("booking date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to insert reservation, releasing held slots")

		if relErr := s.ledger.ReleaseSpan(ctx, toInts(tables), bookingDate, span, user); relErr != nil {
			log.Error().Err(relErr).Msg("failed to release slots after insert failure")
		}

		return res, fmt.Errorf("failed to insert reservation: %w", err)
	}

	res.FromModel(reservation)

	s.invalidate(ctx, "", bookingDate)
	s.publish(ctx, model.EventReservationCreated, reservation, "")

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		if actorFor(role) == model.ActorCustomer && res.CustomerID != user {
			return dto.ReservationResponse{}, failure.Forbidden("reservation belongs to another customer") // nolint:wrapcheck
		}

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if actorFor(role) == model.ActorCustomer && reservation.CustomerID != user {
		return res, failure.Forbidden("reservation belongs to another customer") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// Update re-admits the reservation against the new date, slot, guests, and
// tables. The old hold is released first and restored unchanged when the
// new assignment is rejected, so the ledger never holds both or neither.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if req.CustomerName == nil && req.CustomerPhone == nil && req.SpecialRequest == nil && req.Notes == nil && !req.Reseats() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	reservation, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if actorFor(role) == model.ActorCustomer && reservation.CustomerID != user {
		return res, failure.Forbidden("reservation belongs to another customer") // nolint:wrapcheck
	}

	if reservation.Status != model.StatusConfirmed {
		return res, failure.InvalidTransition(fmt.Sprintf("a %s reservation cannot be changed", reservation.Status)) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Reseats() {
		newDate := reservation.BookingDate
		if req.BookingDate != nil {
			newDate, err = timezone.Parse(constant.DayFormat, *req.BookingDate)
			if err != nil {
				return res, failure.BadRequestFromString("booking date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
			}

			if beforeToday(newDate) {
				return res, failure.BadRequestFromString("booking date cannot be in the past") // nolint:wrapcheck
			}
		}

		newSlot := reservation.Slot
		if req.Slot != nil {
			newSlot = *req.Slot
		}

		newGuests := reservation.Guests
		if req.Guests != nil {
			newGuests = *req.Guests
		}

		newTables := []int64(reservation.Tables)
		if len(req.Tables) > 0 {
			newTables = req.SortedTables()
		}

		oldSpan := reservation.HeldSpan()
		newSpan := ledgerModel.ServiceSpan(newSlot)

		// Free the current hold so the reservation does not conflict with
		// itself when only the slot or guest count moves.
		if err = s.ledger.ReleaseSpan(ctx, reservation.TableNumbers(), reservation.BookingDate, oldSpan, user); err != nil {
			log.Error().Err(err).Msg("failed to release current hold")

			return res, fmt.Errorf("failed to release current hold: %w", err)
		}

		err = s.resolveTables(ctx, newTables, newGuests)
		if err == nil {
			err = s.holdTables(ctx, newTables, newDate, newSpan, user)
		}

		if err != nil {
			if restoreErr := s.ledger.HoldSpan(ctx, reservation.TableNumbers(), reservation.BookingDate, oldSpan, user); restoreErr != nil {
				log.Error().Err(restoreErr).Str("reservationID", reservation.ID).Msg("failed to restore original hold after rejected update")
			}

			return res, err
		}

		updatedFields["booking_date"] = newDate
		updatedFields["slot"] = newSlot
		updatedFields["guests"] = newGuests
		updatedFields["tables"] = pq.Int64Array(newTables)
		updatedFields["number"] = model.Number(newDate, newSlot, newTables)

		if err = s.repo.Update(ctx, updatedFields, filterByID(id)); err != nil {
			log.Error().Err(err).Msg("failed to update reservation, restoring original hold")

			if relErr := s.ledger.ReleaseSpan(ctx, toInts(newTables), newDate, newSpan, user); relErr != nil {
				log.Error().Err(relErr).Msg("failed to release new hold after update failure")
			}

			if restoreErr := s.ledger.HoldSpan(ctx, reservation.TableNumbers(), reservation.BookingDate, oldSpan, user); restoreErr != nil {
				log.Error().Err(restoreErr).Str("reservationID", reservation.ID).Msg("failed to restore original hold after update failure")
			}

			return res, fmt.Errorf("failed to update reservation: %w", err)
		}

		previousDate := reservation.BookingDate

		reservation.BookingDate = newDate
		reservation.Slot = newSlot
		reservation.Guests = newGuests
		reservation.Tables = pq.Int64Array(newTables)
		reservation.Number = model.Number(newDate, newSlot, newTables)

		s.invalidate(ctx, id, previousDate, newDate)
	} else {
		if err = s.repo.Update(ctx, updatedFields, filterByID(id)); err != nil {
			log.Error().Err(err).Msg("failed to update reservation")

			return res, fmt.Errorf("failed to update reservation: %w", err)
		}

		s.invalidate(ctx, id)
	}

	if req.CustomerName != nil {
		reservation.CustomerName = *req.CustomerName
	}

	if req.CustomerPhone != nil {
		reservation.CustomerPhone = *req.CustomerPhone
	}

	if req.SpecialRequest != nil {
		reservation.SpecialRequest = *req.SpecialRequest
	}

	if req.Notes != nil {
		reservation.Notes = *req.Notes
	}

	res.FromModel(reservation)

	s.publish(ctx, model.EventReservationUpdated, reservation, "")

	return res, nil
}

// Cancel is the customer facing releasing transition. Customers may only
// cancel their own reservations and only up to the lead time before the
// seating; staff cancel without restriction.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	actor := actorFor(role)

	reservation, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if actor == model.ActorCustomer {
		if reservation.CustomerID != user {
			return res, failure.Forbidden("reservation belongs to another customer") // nolint:wrapcheck
		}

		if timezone.Now().After(reservation.StartTime().Add(-model.UserCancelLeadTime)) {
			return res, failure.BadRequestFromString("too close to the seating time to cancel, please contact the restaurant") // nolint:wrapcheck
		}
	}

	return s.applyTransition(ctx, reservation, model.StatusCancelled, actor, user)
}

// Transition is the staff lifecycle endpoint. Seating is gated to the
// reservation's booking date.
func (s *serviceImpl) Transition(ctx context.Context, req dto.TransitionRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	reservation, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	target := model.Status(req.Status)

	if target == model.StatusSeated && !sameDay(timezone.Now(), reservation.BookingDate) {
		return res, failure.InvalidTransition("reservations can only be seated on their booking date") // nolint:wrapcheck
	}

	return s.applyTransition(ctx, reservation, target, actorFor(role), user)
}

func (s *serviceImpl) applyTransition(ctx context.Context, reservation model.Reservation, target model.Status, actor, user string) (res dto.ReservationResponse, err error) {
	if err = model.CanTransition(reservation.Status, target, actor); err != nil {
		return res, failure.InvalidTransition(err.Error()) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		"status":                 target,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filterByID(reservation.ID)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return res, fmt.Errorf("failed to update reservation status: %w", err)
	}

	if model.ReleasesHolds(target) {
		if err = s.ledger.ReleaseSpan(ctx, reservation.TableNumbers(), reservation.BookingDate, reservation.HeldSpan(), user); err != nil {
			log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to release slots on transition")

			return res, fmt.Errorf("failed to release slots: %w", err)
		}
	}

	previous := reservation.Status
	reservation.Status = target

	res.FromModel(reservation)

	s.invalidate(ctx, reservation.ID, reservation.BookingDate)
	s.publish(ctx, model.EventReservationStatusChanged, reservation, previous)

	return res, nil
}

// Availability partitions the registry for a date, slot, and party size.
func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := timezone.Parse(constant.DayFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability, req.Date, strconv.Itoa(req.Slot), strconv.Itoa(req.Guests))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	tables, err := s.tables.GetAll(ctx, gDto.QueryParams{SortBy: "table_number", SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	entries, err := s.ledger.EntriesForDate(ctx, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking entries")

		return res, fmt.Errorf("failed to get booking entries: %w", err)
	}

	res.FromModels(date, req.Slot, req.Guests, tables, entries)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}
