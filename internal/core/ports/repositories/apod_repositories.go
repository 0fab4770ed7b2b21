package repositories

import (
	"context"

	"github.com/tanmayd/user_platform_app/internal/core/domain"
)

// APODRepository defines the relational sink for the ETL chain.
type APODRepository interface {
	// UpsertRecord inserts the record or overwrites the existing row with the
	// same date.
	UpsertRecord(ctx context.Context, record domain.APODRecord) error

	// CountRecordsByDate reports how many rows exist for a date. Used for the
	// post-load verification log.
	CountRecordsByDate(ctx context.Context, date string) (int, error)
}
