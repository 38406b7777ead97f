package web

import (
	"net/http"

	"github.com/JonMunkholm/sheetfetch/internal/core"
	"github.com/JonMunkholm/sheetfetch/internal/logging"
)

// respondError logs the failure with its support code and answers with the
// error message as a plain-text body. The message is sent verbatim so
// callers see the same text the console tool prints.
//
// When the request context has already ended, the failure is logged but no
// response is written: the client is gone or the Timeout middleware owns
// the response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, runID string, status int) {
	userMsg := core.MapError(err)
	logger := logging.FromContext(r.Context())

	if ctxErr := r.Context().Err(); ctxErr != nil {
		logger.Warn("fetch abandoned",
			"path", r.URL.Path,
			"error", err.Error(),
			"reason", ctxErr.Error(),
			"run_id", runID,
		)
		return
	}

	logger.Error("fetch failed",
		"path", r.URL.Path,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"summary", userMsg.Message,
		"hint", userMsg.Action,
		"run_id", runID,
	)

	writeText(w, status, err.Error())
}
