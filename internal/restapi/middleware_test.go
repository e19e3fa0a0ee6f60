package restapi

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"citybus.urbantransit.org/internal/logging"
)

func TestRequestLoggingMiddlewareCarriesLoggerOnContext(t *testing.T) {
	api, _ := createTestApi(t)

	var seen *slog.Logger
	handler := api.RequestLoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Same(t, api.Logger, seen)
}
