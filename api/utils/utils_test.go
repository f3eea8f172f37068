package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MerchantReports/internal/model"
)

func TestExtractPagination(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    PaginationParams
		present bool
		wantErr bool
	}{
		{"defaults", "", PaginationParams{Page: 1, Limit: 10}, false, false},
		{"page two", "?page=2&limit=5", PaginationParams{Page: 2, Limit: 5, Offset: 5}, true, false},
		{"limit capped", "?limit=10000", PaginationParams{Page: 1, Limit: maxLimit}, true, false},
		{"bad page", "?page=0", PaginationParams{}, true, true},
		{"bad limit", "?limit=x", PaginationParams{}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/reports"+tt.query, nil)
			got, present, err := ExtractPagination(r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.present, present)
		})
	}
}

func TestPaginationBounds(t *testing.T) {
	p := PaginationParams{Page: 2, Limit: 3, Offset: 3}
	p.SetPaginationStats(7)
	assert.Equal(t, 3, p.TotalPages)

	start, end := p.Bounds(7)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	start, end = PaginationParams{Page: 5, Limit: 3, Offset: 12}.Bounds(7)
	assert.Equal(t, 7, start)
	assert.Equal(t, 7, end)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(model.NewValidationError("bad")))
	assert.Equal(t, http.StatusBadRequest, StatusFor(model.NewParseError("bad", nil)))
	assert.Equal(t, http.StatusBadRequest, StatusFor(model.NewNoDataError("none")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("disk full")))
}

func TestRespondWithDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithDomainError(rec, model.NewNoDataError("No data available. Please upload a file first."), "failed")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No data available. Please upload a file first.", body["error"])

	rec = httptest.NewRecorder()
	RespondWithDomainError(rec, errors.New("open /secret: permission denied"), "Failed to generate report")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to generate report", body["error"])
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestErrorLogLevels(t *testing.T) {
	buf := captureLogs(t)
	RespondWithError(httptest.NewRecorder(), http.StatusBadRequest, "bad input")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.NotContains(t, buf.String(), "level=ERROR")

	buf.Reset()
	RespondWithDomainError(httptest.NewRecorder(), model.NewValidationError("bad date"), "failed")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.NotContains(t, buf.String(), "level=ERROR")

	buf.Reset()
	RespondWithDomainError(httptest.NewRecorder(), errors.New("disk full"), "Failed to write report file")
	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "disk full")
	assert.Equal(t, 1, strings.Count(out, "level="))
}

func TestRespondWithPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithPayload(rec, map[string]interface{}{"merchants": []string{"Acme"}})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []interface{}{"Acme"}, body["merchants"])
}
