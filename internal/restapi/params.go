package restapi

import (
	"fmt"
	"net/http"
	"strconv"

	"citybus.urbantransit.org/internal/models"
)

// extractIDParam parses a numeric id path segment.
func extractIDParam(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// extractDateParam parses an ISO-8601 calendar date path segment.
func extractDateParam(r *http.Request, name string) (models.Date, error) {
	raw := r.PathValue(name)
	date, err := models.ParseDate(raw)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid %s %q, use YYYY-MM-DD", name, raw)
	}
	return date, nil
}
