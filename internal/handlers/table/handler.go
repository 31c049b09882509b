package table

import (
	"net/http"
	"strconv"

	"tavola/infras/otel"
	"tavola/internal/domains/table/model"
	"tavola/internal/domains/table/model/dto"
	"tavola/internal/domains/table/service"
	"tavola/shared"
	"tavola/shared/constant"
	gDto "tavola/shared/dto"
	"tavola/shared/failure"
	"tavola/shared/validator"
	"tavola/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Table
	otel    otel.Otel
}

func New(service service.Table, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTables)
		routerGroup.Post("/initialize", handler.InitializeTables)
		routerGroup.Get("/{tableNumber}", handler.GetTableByNumber)
		routerGroup.Patch("/{tableNumber}", handler.UpdateTable)
	})
}

func tableNumberParam(r *http.Request) (int, error) {
	tableNumber, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamTableNumber))
	if err != nil {
		return 0, failure.BadRequestFromString("table number must be an integer") // nolint:wrapcheck
	}

	return tableNumber, nil
}

// InitializeTables provisions the fixed table registry.
// @Summary Initialize the table registry
// @Description Populate the fixed table set. A no-op when any table already exists.
// @Tags Table
// @Accept json
// @Produce json
// @Param request body dto.InitializeTablesRequest true "Registry plan"
// @Success 201 {object} response.Message "Tables initialized successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/initialize [post]
// @Security BearerAuth
func (handler *Handler) InitializeTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InitializeTables")
	defer scope.End()

	var req dto.InitializeTablesRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Initialize(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to initialize tables")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Table registry initialized by user " + user)

	response.WithMessage(w, http.StatusCreated, "Tables initialized successfully")
}

// GetTables retrieves the table registry.
// @Summary Get all tables
// @Description Retrieve all tables with optional filtering and pagination.
// @Tags Table
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.TableResponse] "List of tables"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables [get]
func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get("active")); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	tables, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tables retrieved successfully")

	response.WithJSON(w, http.StatusOK, tables)
}

// GetTableByNumber retrieves a single table.
// @Summary Get a table
// @Description Retrieve a table by its number.
// @Tags Table
// @Accept json
// @Produce json
// @Param tableNumber path integer true "Table number"
// @Success 200 {object} response.Data[dto.TableResponse] "Table details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{tableNumber} [get]
func (handler *Handler) GetTableByNumber(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTableByNumber")
	defer scope.End()

	tableNumber, err := tableNumberParam(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	table, err := handler.service.Get(ctx, tableNumber)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table retrieved successfully")

	response.WithJSON(w, http.StatusOK, table)
}

// UpdateTable updates a table's capacity, active flag, or notes.
// @Summary Update a table
// @Description Update the mutable attributes of a table.
// @Tags Table
// @Accept json
// @Produce json
// @Param tableNumber path integer true "Table number"
// @Param request body dto.UpdateTableRequest true "Fields to update"
// @Success 200 {object} response.Message "Table updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tables/{tableNumber} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTable")
	defer scope.End()

	tableNumber, err := tableNumberParam(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req dto.UpdateTableRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, tableNumber); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table updated successfully")

	response.WithMessage(w, http.StatusOK, "Table updated successfully")
}
