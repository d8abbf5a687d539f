package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"daytrack/internal/calendar"
	mw "daytrack/internal/middleware"
	"daytrack/internal/store"
)

// inputError is a client mistake; its message is safe to return.
type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &inputError{msg: fmt.Sprintf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return invalid("invalid body")
	}
	return nil
}

// writeError maps domain errors to status codes. Anything unrecognised is
// logged and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var in *inputError
	switch {
	case errors.As(err, &in):
		http.Error(w, in.msg, http.StatusBadRequest)
	case errors.Is(err, calendar.ErrInvalidRange):
		http.Error(w, "end_date must not be before start_date", http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, store.ErrConflict):
		http.Error(w, "already exists", http.StatusConflict)
	default:
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}

func ownerID(r *http.Request) int {
	id, _ := mw.OwnerID(r.Context())
	return id
}

func dateParam(name, raw string) (calendar.Date, error) {
	d, err := calendar.Parse(raw)
	if err != nil {
		return calendar.Date{}, invalid("invalid %s; expected YYYY-MM-DD", name)
	}
	return d, nil
}

// intParam reads an optional integer query parameter bounded to [lo, hi].
func intParam(r *http.Request, name string, fallback, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, invalid("%s must be an integer between %d and %d", name, lo, hi)
	}
	return n, nil
}

func boolParam(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

// rangeParam reads start_date/end_date. A missing end is the reference day
// and a missing start makes the range span days ending at end.
func rangeParam(r *http.Request, ref calendar.Reference, days, maxDays int) (calendar.Range, error) {
	q := r.URL.Query()
	end := ref.Today
	if raw := q.Get("end_date"); raw != "" {
		d, err := dateParam("end_date", raw)
		if err != nil {
			return calendar.Range{}, err
		}
		end = d
	}
	rng := calendar.Trailing(end, days)
	if raw := q.Get("start_date"); raw != "" {
		start, err := dateParam("start_date", raw)
		if err != nil {
			return calendar.Range{}, err
		}
		if rng, err = calendar.NewRange(start, end); err != nil {
			return calendar.Range{}, err
		}
	}
	if rng.Days() > maxDays {
		return calendar.Range{}, invalid("range may span at most %d days", maxDays)
	}
	return rng, nil
}
