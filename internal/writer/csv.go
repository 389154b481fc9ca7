// Package writer exports extracted trip fields as CSV.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
)

// CSVWriter writes extracted trips to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// Write renders one row per trip. source names where the trips came from,
// typically the uploaded file name.
func (w *CSVWriter) Write(out io.Writer, source string, posts []*models.TripPost) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if err := writer.Write([]string{"Source", "Rate", "Per Mile", "Miles"}); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, post := range posts {
		row := []string{
			source,
			post.Rate.StringFixed(2),
			post.PerMile.StringFixed(2),
			post.Miles.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
