// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/rank-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/rank-tracker-api/internal/domain"
)

const (
	positionRecordsTable   = "position_records"
	positionSnapshotsTable = "position_snapshots"

	positionConflictTarget = "(user_id, keyword, filtered_domain, device, location)"
)

var positionColumns = []string{
	"id",
	"user_id",
	"keyword",
	"filtered_domain",
	"device",
	"location",
	"current_position",
	"previous_position",
	"previous_position_at",
	"resolved_domain",
	"rating",
	"review_count",
	"search_engine",
	"created_at",
	"updated_at",
}

type PositionRepository interface {
	GetByKey(ctx context.Context, key domain.PositionKey) (*domain.PositionRecord, error)
	// Save grava o registro e o snapshot na mesma transação. expectedUpdatedAt é o
	// updated_at lido antes da gravação (nil para registro novo); divergência retorna ErrConcurrentUpdate.
	Save(ctx context.Context, record *domain.PositionRecord, expectedUpdatedAt *time.Time) (*domain.PositionRecord, error)
	FindSnapshotAtOrBefore(ctx context.Context, query domain.CompareQuery, at time.Time) (*domain.PositionSnapshot, error)
	CountTrackedKeywords(ctx context.Context, userID int) (int, error)
	CountTrackedByDevice(ctx context.Context) (map[domain.Device]int, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.PositionRecord, error)
	DistinctKeywords(ctx context.Context, userID int) ([]string, error)
	DistinctDomains(ctx context.Context, userID int) ([]string, error)
	ListTrackedCombinations(ctx context.Context) ([]*domain.TrackedCombination, error)
	PruneSnapshots(ctx context.Context, before time.Time) (int64, error)
}

type positionRepository struct {
	conn *postgres.Connection
}

func NewPositionRepository(conn *postgres.Connection) PositionRepository {
	return &positionRepository{
		conn: conn,
	}
}

func (r *positionRepository) GetByKey(ctx context.Context, key domain.PositionKey) (*domain.PositionRecord, error) {
	query := squirrel.
		Select(positionColumns...).
		From(positionRecordsTable).
		Where(squirrel.Eq{
			"user_id":         key.UserID,
			"keyword":         key.Keyword,
			"filtered_domain": key.FilteredDomain,
			"device":          string(key.Device),
			"location":        key.LocationValue(),
		}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	record, err := scanPositionRecord(r.conn.QueryRowContext(ctx, sqlQuery, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar registro de posição: %w", err)
	}

	return record, nil
}

func (r *positionRepository) Save(ctx context.Context, record *domain.PositionRecord, expectedUpdatedAt *time.Time) (*domain.PositionRecord, error) {
	saved := *record

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		upsert := squirrel.
			Insert(positionRecordsTable).
			Columns(
				"user_id", "keyword", "filtered_domain", "device", "location",
				"current_position", "previous_position", "previous_position_at",
				"resolved_domain", "rating", "review_count", "search_engine",
				"created_at", "updated_at",
			).
			Values(
				record.UserID, record.Keyword, record.FilteredDomain, string(record.Device), locationValue(record.Location),
				record.CurrentPosition, record.PreviousPosition, record.PreviousPositionAt,
				record.ResolvedDomain, record.Rating, record.ReviewCount, record.SearchEngineLabel,
				record.CreatedAt, record.UpdatedAt,
			).
			Suffix(`ON CONFLICT `+positionConflictTarget+` DO UPDATE SET
				current_position = EXCLUDED.current_position,
				previous_position = EXCLUDED.previous_position,
				previous_position_at = EXCLUDED.previous_position_at,
				resolved_domain = EXCLUDED.resolved_domain,
				rating = EXCLUDED.rating,
				review_count = EXCLUDED.review_count,
				search_engine = EXCLUDED.search_engine,
				updated_at = EXCLUDED.updated_at
			WHERE position_records.updated_at = ?
			RETURNING id, created_at`, expectedUpdatedAt).
			PlaceholderFormat(squirrel.Dollar)

		upsertSQL, upsertArgs, err := upsert.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir upsert: %w", err)
		}

		err = tx.QueryRowContext(ctx, upsertSQL, upsertArgs...).Scan(&saved.ID, &saved.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrConcurrentUpdate
		}
		if err != nil {
			return fmt.Errorf("erro ao gravar registro de posição: %w", err)
		}

		snapshot := squirrel.
			Insert(positionSnapshotsTable).
			Columns("user_id", "keyword", "filtered_domain", "device", "location", "position", "recorded_at").
			Values(record.UserID, record.Keyword, record.FilteredDomain, string(record.Device), locationValue(record.Location), record.CurrentPosition, record.UpdatedAt).
			PlaceholderFormat(squirrel.Dollar)

		snapshotSQL, snapshotArgs, err := snapshot.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir snapshot: %w", err)
		}

		if _, err := tx.ExecContext(ctx, snapshotSQL, snapshotArgs...); err != nil {
			return fmt.Errorf("erro ao gravar snapshot de posição: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *positionRepository) FindSnapshotAtOrBefore(ctx context.Context, query domain.CompareQuery, at time.Time) (*domain.PositionSnapshot, error) {
	filters := squirrel.Eq{
		"user_id":         query.UserID,
		"keyword":         query.Keyword,
		"filtered_domain": query.Domain,
	}
	if query.Device != nil {
		filters["device"] = string(*query.Device)
	}
	if query.Location != nil {
		filters["location"] = *query.Location
	}

	builder := squirrel.
		Select("position", "recorded_at").
		From(positionSnapshotsTable).
		Where(filters).
		Where(squirrel.LtOrEq{"recorded_at": at}).
		OrderBy("recorded_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var snapshot domain.PositionSnapshot
	err = r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&snapshot.Position, &snapshot.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshot de posição: %w", err)
	}

	return &snapshot, nil
}

func (r *positionRepository) CountTrackedKeywords(ctx context.Context, userID int) (int, error) {
	sqlQuery, args, err := squirrel.
		Select("COUNT(*)").
		From(positionRecordsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar palavras-chave acompanhadas: %w", err)
	}

	return count, nil
}

func (r *positionRepository) CountTrackedByDevice(ctx context.Context) (map[domain.Device]int, error) {
	sqlQuery, args, err := squirrel.
		Select("device", "COUNT(*)").
		From(positionRecordsTable).
		GroupBy("device").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao contar registros por dispositivo: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Device]int)
	for rows.Next() {
		var device string
		var count int
		if err := rows.Scan(&device, &count); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		counts[domain.Device(device)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return counts, nil
}

func (r *positionRepository) ListByUser(ctx context.Context, userID int) ([]*domain.PositionRecord, error) {
	sqlQuery, args, err := squirrel.
		Select(positionColumns...).
		From(positionRecordsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "keyword ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar registros de posição: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.PositionRecord, 0)
	for rows.Next() {
		record, err := scanPositionRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return records, nil
}

func (r *positionRepository) DistinctKeywords(ctx context.Context, userID int) ([]string, error) {
	return r.distinct(ctx, "keyword", userID)
}

func (r *positionRepository) DistinctDomains(ctx context.Context, userID int) ([]string, error) {
	return r.distinct(ctx, "filtered_domain", userID)
}

func (r *positionRepository) distinct(ctx context.Context, column string, userID int) ([]string, error) {
	sqlQuery, args, err := squirrel.
		Select(column).
		Distinct().
		From(positionRecordsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy(column + " ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar valores distintos de %s: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return values, nil
}

func (r *positionRepository) ListTrackedCombinations(ctx context.Context) ([]*domain.TrackedCombination, error) {
	sqlQuery, args, err := squirrel.
		Select("keyword", "filtered_domain", "device", "location", "array_agg(DISTINCT user_id ORDER BY user_id)").
		From(positionRecordsTable).
		GroupBy("keyword", "filtered_domain", "device", "location").
		OrderBy("keyword ASC", "filtered_domain ASC", "device ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar combinações acompanhadas: %w", err)
	}
	defer rows.Close()

	combinations := make([]*domain.TrackedCombination, 0)
	for rows.Next() {
		var (
			combination domain.TrackedCombination
			device      string
			location    string
			userIDs     pq.Int64Array
		)
		if err := rows.Scan(&combination.Keyword, &combination.FilteredDomain, &device, &location, &userIDs); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}

		combination.Device = domain.Device(device)
		combination.Location = locationPtr(location)
		combination.UserIDs = make([]int, 0, len(userIDs))
		for _, id := range userIDs {
			combination.UserIDs = append(combination.UserIDs, int(id))
		}

		combinations = append(combinations, &combination)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante iteração: %w", err)
	}

	return combinations, nil
}

func (r *positionRepository) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	sqlQuery, args, err := squirrel.
		Delete(positionSnapshotsTable).
		Where(squirrel.Lt{"recorded_at": before}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir consulta: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover snapshots antigos: %w", err)
	}

	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPositionRecord(row rowScanner) (*domain.PositionRecord, error) {
	var (
		record   domain.PositionRecord
		device   string
		location string
	)

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Keyword,
		&record.FilteredDomain,
		&device,
		&location,
		&record.CurrentPosition,
		&record.PreviousPosition,
		&record.PreviousPositionAt,
		&record.ResolvedDomain,
		&record.Rating,
		&record.ReviewCount,
		&record.SearchEngineLabel,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Device = domain.Device(device)
	record.Location = locationPtr(location)

	return &record, nil
}

func locationValue(location *string) string {
	if location == nil {
		return ""
	}
	return *location
}

func locationPtr(location string) *string {
	if location == "" {
		return nil
	}
	return &location
}
