package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"github.com/venue-compass/internal/pkg/errors"
)

type searchLogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSearchLogRepository создает новый экземпляр SearchLogRepository
func NewSearchLogRepository(db *DB) repository.SearchLogRepository {
	return &searchLogRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// InsertEvents сохраняет пачку событий поиска в одной транзакции
func (r *searchLogRepository) InsertEvents(ctx context.Context, events []*domain.SearchEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		INSERT INTO search_events (
			id, mode, categories, radius_km, city,
			result_count, cache_hit, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	for _, event := range events {
		categories := make([]string, 0, len(event.Categories))
		for _, c := range event.Categories {
			categories = append(categories, string(c))
		}

		_, err := tx.ExecContext(ctx, query,
			event.ID, string(event.Mode), pq.Array(categories),
			event.RadiusKm, event.City,
			event.ResultCount, event.CacheHit, event.DurationMs, event.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert search event",
				zap.String("event_id", event.ID.String()),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Debug("Search events inserted", zap.Int("count", len(events)))
	return nil
}

// Aggregate возвращает агрегированную статистику по всему журналу
func (r *searchLogRepository) Aggregate(ctx context.Context) (*domain.SearchStats, error) {
	stats := &domain.SearchStats{
		ByMode:     make(map[string]int),
		ByCategory: make(map[string]int),
	}

	summaryQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE cache_hit),
			COALESCE(AVG(duration_ms), 0),
			COALESCE(AVG(result_count), 0),
			MAX(created_at)
		FROM search_events
	`

	var lastSearchAt sql.NullTime
	err := r.db.QueryRowContext(ctx, summaryQuery).Scan(
		&stats.TotalSearches, &stats.CacheHits,
		&stats.AvgDurationMs, &stats.AvgResults,
		&lastSearchAt,
	)
	if err != nil {
		r.logger.Error("Failed to aggregate search events", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	if lastSearchAt.Valid {
		stats.LastSearchAt = &lastSearchAt.Time
	}

	modeQuery := `
		SELECT mode, COUNT(*)
		FROM search_events
		GROUP BY mode
	`

	rows, err := r.db.QueryContext(ctx, modeQuery)
	if err != nil {
		r.logger.Error("Failed to aggregate by mode", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	for rows.Next() {
		var mode string
		var count int
		if err := rows.Scan(&mode, &count); err != nil {
			return nil, errors.ErrDatabaseError
		}
		stats.ByMode[mode] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	categoryQuery := `
		SELECT category, COUNT(*)
		FROM search_events, unnest(categories) AS category
		GROUP BY category
	`

	catRows, err := r.db.QueryContext(ctx, categoryQuery)
	if err != nil {
		r.logger.Error("Failed to aggregate by category", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer catRows.Close()

	for catRows.Next() {
		var category string
		var count int
		if err := catRows.Scan(&category, &count); err != nil {
			return nil, errors.ErrDatabaseError
		}
		stats.ByCategory[category] = count
	}
	if err := catRows.Err(); err != nil {
		return nil, errors.ErrDatabaseError
	}

	return stats, nil
}
