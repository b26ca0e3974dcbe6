package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/semester-gpa/internal/grading"
	"github.com/mind-engage/semester-gpa/internal/sheet"
)

type editReq struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"` // string or number, as typed
}

type averageResp struct {
	Average string          `json:"average"`
	Outcome grading.Outcome `json:"outcome"`
}

// MountSheet registers the sheet endpoints on r, typically under /sheet.
func MountSheet(r chi.Router, store sheet.Store) {
	// GET /sheet
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Report())
	})

	// GET /sheet/average
	r.Get("/average", func(w http.ResponseWriter, r *http.Request) {
		rep := store.Report()
		writeJSON(w, http.StatusOK, averageResp{Average: rep.SemesterDisplay, Outcome: rep.SemesterOutcome})
	})

	// POST /sheet/modules
	r.Post("/modules", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, store.Add(r.Context()))
	})

	// PATCH /sheet/modules/{index}  {"field":"exam","value":"16"}
	r.Patch("/modules/{index}", func(w http.ResponseWriter, r *http.Request) {
		idx, ok := moduleIndex(w, r)
		if !ok {
			return
		}
		var req editReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		raw, err := rawValue(req.Value)
		if err != nil {
			http.Error(w, "value must be a string or a number", http.StatusBadRequest)
			return
		}
		rep, err := store.Set(r.Context(), idx, strings.TrimSpace(req.Field), raw)
		if err != nil {
			sheetError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	})

	// POST /sheet/modules/{index}/clear
	r.Post("/modules/{index}/clear", func(w http.ResponseWriter, r *http.Request) {
		idx, ok := moduleIndex(w, r)
		if !ok {
			return
		}
		rep, err := store.Clear(r.Context(), idx)
		if err != nil {
			sheetError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	})
}

func moduleIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "module not found", http.StatusNotFound)
		return 0, false
	}
	return idx, true
}

// rawValue turns the JSON value into the text a user would have typed.
// null and absent become "".
func rawValue(m json.RawMessage) (string, error) {
	m = bytes.TrimSpace(m)
	if len(m) == 0 || string(m) == "null" {
		return "", nil
	}
	switch m[0] {
	case '"':
		var s string
		err := json.Unmarshal(m, &s)
		return s, err
	case '{', '[', 't', 'f':
		return "", errors.New("unsupported value")
	default:
		var f float64
		if err := json.Unmarshal(m, &f); err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
}

func sheetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sheet.ErrNoModule):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, sheet.ErrNotEditable):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "sheet: "+err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
