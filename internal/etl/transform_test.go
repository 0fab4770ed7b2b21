package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
	"github.com/tanmayd/user_platform_app/internal/etl/apod"
)

func TestTransform_FillsDefaults(t *testing.T) {
	now := time.Now()
	raw := &apod.Response{
		Date:  "2024-06-01",
		Title: "A Quiet Nebula",
		// explanation, url, hdurl, media_type, copyright all omitted
	}

	record, err := Transform(raw, now)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", record.Date)
	assert.Equal(t, "A Quiet Nebula", record.Title)
	assert.Equal(t, "N/A", record.Explanation)
	assert.Equal(t, "N/A", record.URL)
	assert.Equal(t, "N/A", record.HDURL)
	assert.Equal(t, domain.MediaTypeImage, record.MediaType)
	assert.Equal(t, "Public Domain", record.Copyright)
	assert.Equal(t, now, record.ExtractedAt)
}

func TestTransform_KeepsProvidedValues(t *testing.T) {
	raw := &apod.Response{
		Date:        "2024-06-02",
		Title:       "Launch Timelapse",
		Explanation: "A rocket launch.",
		URL:         "https://example.com/v.mp4",
		MediaType:   "video",
		Copyright:   "J. Doe",
	}

	record, err := Transform(raw, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "video", record.MediaType)
	assert.Equal(t, "J. Doe", record.Copyright)
	assert.Equal(t, "N/A", record.HDURL, "only omitted fields get defaults")
}

func TestTransform_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		raw  *apod.Response
	}{
		{"nil payload", nil},
		{"missing date", &apod.Response{Title: "No Date"}},
		{"missing title", &apod.Response{Date: "2024-06-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transform(tt.raw, time.Now())
			assert.Error(t, err)
		})
	}
}

func TestTransform_RejectsUnknownMediaType(t *testing.T) {
	raw := &apod.Response{
		Date:      "2024-06-01",
		Title:     "Odd Payload",
		MediaType: "hologram",
	}

	_, err := Transform(raw, time.Now())
	assert.ErrorContains(t, err, "invalid media type")
}
