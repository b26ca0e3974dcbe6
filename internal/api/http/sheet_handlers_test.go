package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/semester-gpa/internal/grading"
	"github.com/mind-engage/semester-gpa/internal/sheet"
)

func newTestRouter(t *testing.T) (http.Handler, *sheet.Sheet) {
	t.Helper()
	s := sheet.New(nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(s, logger, []string{"http://localhost:3000"}), s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) grading.Report {
	t.Helper()
	var rep grading.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep), rec.Body.String())
	return rep
}

func TestGetSheet(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/sheet", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rep := decodeReport(t, rec)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "-", rep.Rows[0].Display)
	assert.Equal(t, "0.00", rep.SemesterDisplay)
}

func TestEditFlow(t *testing.T) {
	h, s := newTestRouter(t)

	edits := []string{
		`{"field":"name","value":"Analyse"}`,
		`{"field":"coefficient","value":3}`,
		`{"field":"weightExam","value":"60"}`,
		`{"field":"exam","value":"16"}`,
		`{"field":"td","value":12}`,
	}
	var rec *httptest.ResponseRecorder
	for _, e := range edits {
		rec = do(t, h, http.MethodPatch, "/sheet/modules/0", e)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rep := decodeReport(t, rec)
	assert.Equal(t, "14.40", rep.Rows[0].Display)
	assert.Equal(t, grading.Passed, rep.Rows[0].Outcome)
	assert.True(t, rep.Rows[0].Module.WeightTD.Equal(grading.Of(40)))

	rec = do(t, h, http.MethodPost, "/sheet/modules", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	rep = decodeReport(t, rec)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "14.40", rep.SemesterDisplay)

	rec = do(t, h, http.MethodGet, "/sheet/average", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"average":"14.40","outcome":"passed"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/sheet/modules/0/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rep = decodeReport(t, rec)
	assert.Equal(t, "Analyse", rep.Rows[0].Module.Name)
	assert.Equal(t, "0.00", rep.SemesterDisplay)

	assert.Len(t, s.Modules(), 2)
}

func TestEditClampsInsteadOfRejecting(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPatch, "/sheet/modules/0", `{"field":"coefficient","value":"7"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rep := decodeReport(t, rec)
	assert.True(t, rep.Rows[0].Module.Coefficient.Equal(grading.Of(5)))

	rec = do(t, h, http.MethodPatch, "/sheet/modules/0", `{"field":"coefficient","value":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rep = decodeReport(t, rec)
	assert.False(t, rep.Rows[0].Module.Coefficient.IsSet())

	rec = do(t, h, http.MethodPatch, "/sheet/modules/0", `{"field":"weightExam","value":1e2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rep = decodeReport(t, rec)
	assert.True(t, rep.Rows[0].Module.WeightExam.Equal(grading.Of(100)))
}

func TestEditErrors(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"bad json", http.MethodPatch, "/sheet/modules/0", `{`, http.StatusBadRequest},
		{"derived field", http.MethodPatch, "/sheet/modules/0", `{"field":"weightTd","value":"40"}`, http.StatusBadRequest},
		{"unknown field", http.MethodPatch, "/sheet/modules/0", `{"field":"grade","value":"4"}`, http.StatusBadRequest},
		{"object value", http.MethodPatch, "/sheet/modules/0", `{"field":"exam","value":{"x":1}}`, http.StatusBadRequest},
		{"index out of range", http.MethodPatch, "/sheet/modules/4", `{"field":"exam","value":"4"}`, http.StatusNotFound},
		{"index not a number", http.MethodPatch, "/sheet/modules/first", `{"field":"exam","value":"4"}`, http.StatusNotFound},
		{"clear out of range", http.MethodPost, "/sheet/modules/9/clear", "", http.StatusNotFound},
		{"no delete route", http.MethodDelete, "/sheet/modules/0", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCORS(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/sheet/modules/0", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/sheet", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", "").Code)
}

func TestRawValue(t *testing.T) {
	for in, want := range map[string]string{
		``:        "",
		`null`:    "",
		`"12,5"`:  "12,5",
		`14.25`:   "14.25",
		` -3 `:    "-3",
		`1e2`:     "100",
		`"  7  "`: "  7  ",
	} {
		got, err := rawValue(json.RawMessage(in))
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{`true`, `[1]`, `{"a":1}`, `"unterminated`} {
		_, err := rawValue(json.RawMessage(in))
		assert.Error(t, err, in)
	}
}
