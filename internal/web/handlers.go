package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/sheetfetch/internal/core"
	"github.com/JonMunkholm/sheetfetch/internal/logging"
	"github.com/bytedance/sonic"
)

// handleFetch runs the pipeline once and returns the mapping as JSON.
// Any failure is answered with 500 and the error message as plain text,
// except a full fetch limiter, which is answered with 503. Once the request
// context is done nothing is written; chi's Timeout answers 504 itself.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.Acquire(r.Context()); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrTooManyFetches) {
			status = http.StatusServiceUnavailable
			w.Header().Set("Retry-After", "1")
		}
		s.respondError(w, r, err, "", status)
		return
	}
	defer s.limiter.Release()

	res := <-s.runner.Start(r.Context())

	if res.Err != nil {
		s.respondError(w, r, res.Err, res.RunID, http.StatusInternalServerError)
		return
	}

	logging.WithFields(r.Context(), "run_id", res.RunID).Info("fetch completed",
		"source_host", sourceHost(res.Source),
		"rows", res.Rows,
		"keys", res.Mapping.Len(),
		"fetch_ms", res.FetchDuration.Milliseconds(),
		"duration_ms", res.Duration.Milliseconds(),
	)
	writeJSON(w, r, http.StatusOK, res.Mapping)
}

// handleHealth reports that the process is serving. It does not touch the
// source.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// sourceHost keeps only the host of a source URL; the path carries the
// sheet key.
func sourceHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

// writeJSON encodes v with sonic and writes it with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	b, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
