package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tanmayd/user_platform_app/internal/core/domain"
)

// csvHeader is the fixed column order of the flat-file sink.
var csvHeader = []string{"date", "title", "explanation", "url", "hdurl", "media_type", "copyright", "extracted_at"}

// CSVSink writes APOD records to a flat CSV file with at most one row per
// date. Every load rewrites the whole file, so repeated runs for the same
// date are idempotent.
type CSVSink struct {
	Path string
}

// NewCSVSink creates a CSVSink for the given path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path}
}

// Load merges the record into the file: any existing row with the same date
// is dropped, the new row appended, and the result sorted by date descending
// before a full rewrite.
func (s *CSVSink) Load(record domain.APODRecord) error {
	records, err := s.readAll()
	if err != nil {
		return err
	}

	filtered := records[:0]
	for _, existing := range records {
		if existing.Date != record.Date {
			filtered = append(filtered, existing)
		}
	}
	filtered = append(filtered, record)

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Date > filtered[j].Date
	})

	return s.writeAll(filtered)
}

// readAll parses the existing file. A missing file is an empty sink.
func (s *CSVSink) readAll() ([]domain.APODRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open csv sink: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv sink: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]domain.APODRecord, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("malformed csv row: expected %d columns, got %d", len(csvHeader), len(row))
		}
		extractedAt, err := time.Parse(time.RFC3339, row[7])
		if err != nil {
			return nil, fmt.Errorf("malformed extracted_at in csv row: %w", err)
		}
		records = append(records, domain.APODRecord{
			Date:        row[0],
			Title:       row[1],
			Explanation: row[2],
			URL:         row[3],
			HDURL:       row[4],
			MediaType:   row[5],
			Copyright:   row[6],
			ExtractedAt: extractedAt,
		})
	}
	return records, nil
}

func (s *CSVSink) writeAll(records []domain.APODRecord) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create csv sink directory: %w", err)
		}
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create csv sink: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.Date,
			record.Title,
			record.Explanation,
			record.URL,
			record.HDURL,
			record.MediaType,
			record.Copyright,
			record.ExtractedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv sink: %w", err)
	}
	return nil
}
