package contextkeys

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
)

type requesterKeyType struct{}

var requesterKey = requesterKeyType{}

// ContextWithRequester stores the identity resolved by the auth middleware.
func ContextWithRequester(ctx context.Context, r domain.Requester) context.Context {
	return context.WithValue(ctx, requesterKey, r)
}

// RequesterFromContext defaults to an anonymous requester.
func RequesterFromContext(ctx context.Context) domain.Requester {
	if r, ok := ctx.Value(requesterKey).(domain.Requester); ok {
		return r
	}
	return domain.Anonymous()
}
