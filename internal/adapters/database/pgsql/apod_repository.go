package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
	portsrepo "github.com/tanmayd/user_platform_app/internal/core/ports/repositories"
)

type PgxAPODRepository struct {
	db *pgxpool.Pool
}

func NewAPODRepository(db *pgxpool.Pool) *PgxAPODRepository {
	return &PgxAPODRepository{db: db}
}

// Ensure PgxAPODRepository implements portsrepo.APODRepository
var _ portsrepo.APODRepository = (*PgxAPODRepository)(nil)

func (r *PgxAPODRepository) UpsertRecord(ctx context.Context, record domain.APODRecord) error {
	query := `
        INSERT INTO apod_data (date, title, explanation, url, hdurl, media_type, copyright, extracted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (date) DO UPDATE SET
            title = EXCLUDED.title,
            explanation = EXCLUDED.explanation,
            url = EXCLUDED.url,
            hdurl = EXCLUDED.hdurl,
            media_type = EXCLUDED.media_type,
            copyright = EXCLUDED.copyright,
            extracted_at = EXCLUDED.extracted_at;
    `
	_, err := r.db.Exec(ctx, query,
		record.Date,
		record.Title,
		record.Explanation,
		record.URL,
		record.HDURL,
		record.MediaType,
		record.Copyright,
		record.ExtractedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert apod record: %w", err)
	}
	return nil
}

func (r *PgxAPODRepository) CountRecordsByDate(ctx context.Context, date string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM apod_data WHERE date = $1;`, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count apod records: %w", err)
	}
	return count, nil
}
