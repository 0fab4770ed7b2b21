package domain

import "time"

// MediaTypeImage and MediaTypeVideo are the only media types the APOD API
// publishes; anything else fails the transform quality checks.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// APODRecord is one normalized Astronomy Picture of the Day entry.
// Date ("YYYY-MM-DD") is the natural key in both sinks.
type APODRecord struct {
	Date        string    `json:"date"`
	Title       string    `json:"title"`
	Explanation string    `json:"explanation"`
	URL         string    `json:"url"`
	HDURL       string    `json:"hdurl"`
	MediaType   string    `json:"media_type"`
	Copyright   string    `json:"copyright"`
	ExtractedAt time.Time `json:"extracted_at"`
}
