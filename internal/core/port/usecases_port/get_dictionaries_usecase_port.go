package usecases_port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
)

type GetDictionariesUseCasePort interface {
	Execute(ctx context.Context, names []string) (map[string][]domain.DictionaryItem, error)
}
