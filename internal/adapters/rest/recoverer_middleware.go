package rest

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
)

// RecovererMiddleware turns a handler panic into the usual JSON 500 body.
// http.ErrAbortHandler is re-raised so net/http can abort the response.
func RecovererMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			contextkeys.LoggerFromContext(r.Context()).Error("Handler panicked", fmt.Errorf("panic: %v", rvr), port.Fields{
				"stack": string(debug.Stack()),
			})
			WriteJSONError(w, http.StatusInternalServerError, "server_error", "Internal server error", nil)
		}()

		next.ServeHTTP(w, r)
	})
}
