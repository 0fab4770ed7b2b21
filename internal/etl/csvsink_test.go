package etl

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
)

func testRecord(date, title string) domain.APODRecord {
	return domain.APODRecord{
		Date:        date,
		Title:       title,
		Explanation: "N/A",
		URL:         "N/A",
		HDURL:       "N/A",
		MediaType:   domain.MediaTypeImage,
		Copyright:   "Public Domain",
		ExtractedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVSink_LoadCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "apod_data.csv")
	sink := NewCSVSink(path)

	require.NoError(t, sink.Load(testRecord("2024-06-01", "First")))

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "2024-06-01", rows[1][0])
	assert.Equal(t, "First", rows[1][1])
}

func TestCSVSink_SameDateTwiceKeepsOneRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apod_data.csv")
	sink := NewCSVSink(path)

	require.NoError(t, sink.Load(testRecord("2024-06-01", "First Version")))
	require.NoError(t, sink.Load(testRecord("2024-06-01", "Second Version")))

	rows := readRows(t, path)
	require.Len(t, rows, 2, "reloading the same date must not duplicate the row")
	assert.Equal(t, "Second Version", rows[1][1], "the later load wins")
}

func TestCSVSink_RowsSortedByDateDescending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apod_data.csv")
	sink := NewCSVSink(path)

	require.NoError(t, sink.Load(testRecord("2024-06-01", "Older")))
	require.NoError(t, sink.Load(testRecord("2024-06-03", "Newest")))
	require.NoError(t, sink.Load(testRecord("2024-06-02", "Middle")))

	rows := readRows(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-06-03", rows[1][0])
	assert.Equal(t, "2024-06-02", rows[2][0])
	assert.Equal(t, "2024-06-01", rows[3][0])
}

func TestCSVSink_RoundTripsExtractedAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apod_data.csv")
	sink := NewCSVSink(path)
	record := testRecord("2024-06-01", "First")

	require.NoError(t, sink.Load(record))
	require.NoError(t, sink.Load(testRecord("2024-06-02", "Second")))

	loaded, err := sink.readAll()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.True(t, record.ExtractedAt.Equal(loaded[1].ExtractedAt))
}

func TestCSVSink_MalformedFileFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apod_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,title\n2024-06-01,Broken\n"), 0o644))
	sink := NewCSVSink(path)

	err := sink.Load(testRecord("2024-06-02", "New"))
	assert.Error(t, err)
}
