package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/redact"
)

// Recoverer turns a panic in a handler into a 500 response with the
// INTERNAL_ERROR envelope. It mirrors chi's middleware.Recoverer, including
// re-panicking on http.ErrAbortHandler.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log := logger.FromContext(r.Context())
			log.Error("panic recovered", slog.String("panic", redact.String(fmt.Sprint(rec))))
			log.Debug("panic stack", slog.String("stack", string(debug.Stack())))

			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
