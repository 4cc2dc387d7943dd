package rest

import (
	"net/http"
	"strings"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

// AuthMiddleware resolves an optional bearer token into a domain.Requester.
// Requests without an Authorization header continue anonymously; a header
// that does not carry a valid token is rejected with 401.
func AuthMiddleware(validateUC usecases_port.ValidateTokenUseCasePort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"middleware": "AuthMiddleware"})

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				logger.Warn("Malformed Authorization header", nil)
				RespondWithError(w, logger, domain.ErrTokenInvalid)
				return
			}

			claims, err := validateUC.Execute(r.Context(), strings.TrimSpace(token))
			if err != nil {
				RespondWithError(w, logger, err)
				return
			}

			ctx := contextkeys.ContextWithRequester(r.Context(), domain.RequesterFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
