package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathParam(t *testing.T) {
	cases := []struct {
		path   string
		prefix string
		suffix string
		want   string
	}{
		{"/api/reports/rp_123/ask", "/api/reports/", "/ask", "rp_123"},
		{"/api/reports/rp_123", "/api/reports/", "", "rp_123"},
		{"/api/reports/rp_123/extra/bits", "/api/reports/", "", "rp_123"},
		{"/api/other/rp_123", "/api/reports/", "", ""},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, tc.path, nil)
		assert.Equal(t, tc.want, PathParam(r, tc.prefix, tc.suffix), "path %s", tc.path)
	}
}

func TestRequireMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/reports", nil)

	ok := RequireMethod(rec, r, http.MethodGet, http.MethodPost)
	assert.False(t, ok)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "bad input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "bad input"}`, rec.Body.String())
}
