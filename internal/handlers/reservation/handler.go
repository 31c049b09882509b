package reservation

import (
	"net/http"
	"strconv"

	"tavola/infras/otel"
	"tavola/internal/domains/reservation/model"
	"tavola/internal/domains/reservation/model/dto"
	"tavola/internal/domains/reservation/service"
	"tavola/shared/constant"
	gDto "tavola/shared/dto"
	"tavola/shared/failure"
	"tavola/shared/validator"
	"tavola/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/myreservations", handler.GetMyReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}", handler.UpdateReservation)
		routerGroup.Post("/{id}/cancel", handler.CancelReservation)
		routerGroup.Post("/{id}/status", handler.TransitionReservation)
	})

	router.Get("/availability", handler.GetAvailability)
}

// CreateReservation books one or more tables for a service span.
// @Summary Create a reservation
// @Description Hold the requested tables for the slot's service span and record the booking.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation details"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Created reservation"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	var req dto.CreateReservationRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation " + reservation.Number + " created")

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservations retrieves all reservations for staff.
// @Summary Get reservations
// @Description Retrieve all reservations with optional filtering. Staff only.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param date query string false "Filter by booking date (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.ReservationResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if date := r.URL.Query().Get(constant.RequestParamDate); date != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetMyReservations retrieves the reservations of the authenticated customer.
// @Summary Get my reservations
// @Description Retrieve the currently authenticated user's reservations with optional filtering and pagination.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param date query string false "Filter by booking date (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.ReservationResponse] "List of the user's reservations"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/myreservations [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		scope.TraceError(nil)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCustomerID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	if date := r.URL.Query().Get(constant.RequestParamDate); date != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a single reservation.
// @Summary Get a reservation
// @Description Retrieve a reservation by its identifier.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation updates contact details or reseats a confirmed booking.
// @Summary Update a reservation
// @Description Update contact details, or move a confirmed reservation to new tables, date, slot, or party size.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Fields to update"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Updated reservation"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateReservationRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation " + reservation.Number + " updated")

	response.WithJSON(w, http.StatusOK, reservation)
}

// CancelReservation cancels a confirmed reservation and frees its tables.
// @Summary Cancel a reservation
// @Description Cancel a confirmed reservation. Customers must cancel ahead of the cutoff before their slot.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Cancelled reservation"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation " + reservation.Number + " cancelled")

	response.WithJSON(w, http.StatusOK, reservation)
}

// TransitionReservation moves a reservation through its lifecycle.
// @Summary Transition a reservation
// @Description Move a reservation to seated, completed, cancelled, or no_show.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.TransitionRequest true "Target status"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Updated reservation"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/status [post]
// @Security BearerAuth
func (handler *Handler) TransitionReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.TransitionRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Transition(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to transition reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation " + reservation.Number + " moved to " + reservation.Status)

	response.WithJSON(w, http.StatusOK, reservation)
}

// GetAvailability partitions the table registry for a date, slot, and party size.
// @Summary Get table availability
// @Description List tables that are available, occupied, or too small for the requested slot and party size.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param date query string true "Booking date (YYYY-MM-DD)"
// @Param slot query integer true "Slot number"
// @Param guests query integer true "Party size"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability partition"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{
		Date: r.URL.Query().Get(constant.RequestParamDate),
	}
	req.Slot, _ = strconv.Atoi(r.URL.Query().Get(constant.RequestParamSlot))
	req.Guests, _ = strconv.Atoi(r.URL.Query().Get(constant.RequestParamGuests))

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	availability, err := handler.service.Availability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}
