package etl

import (
	"fmt"
	"time"

	"github.com/tanmayd/user_platform_app/internal/core/domain"
	"github.com/tanmayd/user_platform_app/internal/etl/apod"
)

// Field defaults applied when the API omits optional fields.
const (
	defaultFieldValue = "N/A"
	defaultCopyright  = "Public Domain"
)

// Transform normalizes a raw API payload into an APODRecord: it selects the
// fixed field set, supplies defaults for optional fields, and enforces the
// quality checks. Date and title are required; media_type must be a known
// value.
func Transform(raw *apod.Response, extractedAt time.Time) (domain.APODRecord, error) {
	if raw == nil {
		return domain.APODRecord{}, fmt.Errorf("no data received from extraction")
	}
	if raw.Date == "" {
		return domain.APODRecord{}, fmt.Errorf("date field cannot be empty")
	}
	if raw.Title == "" {
		return domain.APODRecord{}, fmt.Errorf("title field cannot be empty")
	}

	record := domain.APODRecord{
		Date:        raw.Date,
		Title:       raw.Title,
		Explanation: orDefault(raw.Explanation, defaultFieldValue),
		URL:         orDefault(raw.URL, defaultFieldValue),
		HDURL:       orDefault(raw.HDURL, defaultFieldValue),
		MediaType:   orDefault(raw.MediaType, domain.MediaTypeImage),
		Copyright:   orDefault(raw.Copyright, defaultCopyright),
		ExtractedAt: extractedAt,
	}

	if record.MediaType != domain.MediaTypeImage && record.MediaType != domain.MediaTypeVideo {
		return domain.APODRecord{}, fmt.Errorf("invalid media type %q", record.MediaType)
	}

	return record, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
