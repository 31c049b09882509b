package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lib/pq"

	"tavola/infras/otel"
	"tavola/infras/postgres"
	"tavola/internal/domains/ledger/model"
	"tavola/shared/constant"
	gDto "tavola/shared/dto"
	"tavola/shared/logger"
	gRepo "tavola/shared/repository"
	"tavola/shared/timezone"
)

type Ledger interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingEntry, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingEntry, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	OccupiedSlots(ctx context.Context, tableNumber int, date time.Time) ([]int64, error)
	EntriesForDate(ctx context.Context, date time.Time) ([]model.BookingEntry, error)
	HoldSpan(ctx context.Context, tableNumbers []int, date time.Time, slots []int64, user string) error
	ReleaseSpan(ctx context.Context, tableNumbers []int, date time.Time, slots []int64, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BookingEntry]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Ledger {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BookingEntry](model.EntityName, model.TableName, model.FieldTableNumber, db, otel),
		db:         db,
		otel:       otel,
	}
}

// holdQuery inserts a fresh occupancy row or folds new slots into an
// existing one. The WHERE guard on the upsert makes the overlap check and
// the write a single atomic statement: when any requested slot is already
// held the update matches no row and zero rows are affected.
const holdQuery = `
	INSERT INTO booking_entries (table_number, booking_date, slots, created_at, created_by, modified_at, modified_by)
	VALUES (:table_number, :booking_date, :slots, :modified_at, :modified_by, :modified_at, :modified_by)
	ON CONFLICT (table_number, booking_date) DO UPDATE
	SET slots = ARRAY(SELECT DISTINCT s FROM unnest(booking_entries.slots || EXCLUDED.slots) AS s ORDER BY s),
		modified_at = EXCLUDED.modified_at,
		modified_by = EXCLUDED.modified_by
	WHERE NOT booking_entries.slots && EXCLUDED.slots`

const releaseQuery = `
	UPDATE booking_entries
	SET slots = ARRAY(SELECT s FROM unnest(slots) AS s WHERE s <> ALL(CAST(:released AS bigint[])) ORDER BY s),
		modified_at = :modified_at,
		modified_by = :modified_by
	WHERE table_number = :table_number AND booking_date = :booking_date`

const pruneQuery = `
	DELETE FROM booking_entries
	WHERE booking_date = :booking_date AND cardinality(slots) = 0`

func (repo *repositoryImpl) OccupiedSlots(ctx context.Context, tableNumber int, date time.Time) ([]int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".OccupiedSlots")
	defer scope.End()

	query := "SELECT slots FROM booking_entries WHERE table_number = $1 AND booking_date = $2"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var slots pq.Int64Array

	err := repo.db.Read.GetContext(ctx, &slots, query, tableNumber, date.Format(constant.DayFormat))
	if errors.Is(err, sql.ErrNoRows) {
		return []int64{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get occupied slots (%s): %w", model.EntityName, err)
	}

	return slots, nil
}

func (repo *repositoryImpl) EntriesForDate(ctx context.Context, date time.Time) ([]model.BookingEntry, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".EntriesForDate")
	defer scope.End()

	query := "SELECT * FROM booking_entries WHERE booking_date = $1 ORDER BY table_number"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	entries := []model.BookingEntry{}

	err := repo.db.Read.SelectContext(ctx, &entries, query, date.Format(constant.DayFormat))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get entries for date (%s): %w", model.EntityName, err)
	}

	return entries, nil
}

// HoldSpan places the same slot span on every requested table inside one
// transaction. Tables are processed in ascending order so concurrent holds
// acquire row locks in a stable order. Any conflict rolls the whole hold
// back.
func (repo *repositoryImpl) HoldSpan(ctx context.Context, tableNumbers []int, date time.Time, slots []int64, user string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".HoldSpan")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, holdQuery)

	ordered := slices.Clone(tableNumbers)
	slices.Sort(ordered)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin hold transaction (%s): %w", model.EntityName, err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := timezone.Now()

	for _, tableNumber := range ordered {
		res, err := tx.NamedExecContext(ctx, holdQuery, map[string]any{
			"table_number": tableNumber,
			"booking_date": date.Format(constant.DayFormat),
			"slots":        pq.Int64Array(slots),
			"modified_at":  now,
			"modified_by":  user,
		})
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to hold slots (%s): %w", model.EntityName, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to read hold result (%s): %w", model.EntityName, err)
		}

		if affected == 0 {
			return &SlotConflictError{TableNumber: tableNumber, BookingDate: date}
		}
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit hold transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

// ReleaseSpan removes the slot span from every requested table. Releasing
// slots that are not held is a no-op, so the call is safe to retry. Rows
// left without any slot are pruned.
func (repo *repositoryImpl) ReleaseSpan(ctx context.Context, tableNumbers []int, date time.Time, slots []int64, user string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ReleaseSpan")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, releaseQuery)

	ordered := slices.Clone(tableNumbers)
	slices.Sort(ordered)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin release transaction (%s): %w", model.EntityName, err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := timezone.Now()

	for _, tableNumber := range ordered {
		_, err := tx.NamedExecContext(ctx, releaseQuery, map[string]any{
			"table_number": tableNumber,
			"booking_date": date.Format(constant.DayFormat),
			"released":     pq.Int64Array(slots),
			"modified_at":  now,
			"modified_by":  user,
		})
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to release slots (%s): %w", model.EntityName, err)
		}
	}

	if _, err := tx.NamedExecContext(ctx, pruneQuery, map[string]any{
		"booking_date": date.Format(constant.DayFormat),
	}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prune empty entries (%s): %w", model.EntityName, err)
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit release transaction (%s): %w", model.EntityName, err)
	}

	return nil
}
