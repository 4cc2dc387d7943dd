package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const followViewSelect = `SELECT f.id, f.owner_id, f.followed_id, f.created_at, a.username, COALESCE(fp.name, '')
FROM follows f
JOIN accounts a ON a.id = f.owner_id
LEFT JOIN profiles fp ON fp.owner_id = f.followed_id`

// PostgresFollowRepository implements port.FollowRepositoryPort.
type PostgresFollowRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFollowRepository(pool *pgxpool.Pool) (*PostgresFollowRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFollowRepository{pool: pool}, nil
}

func (r *PostgresFollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresFollowRepository",
		"method":      "Create",
		"owner_id":    follow.OwnerID,
		"followed_id": follow.FollowedID,
	})

	query := `INSERT INTO follows (id, owner_id, followed_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, follow.ID, follow.OwnerID, follow.FollowedID, follow.CreatedAt)
	if err != nil {
		if domainErr := translateWriteError(err); domainErr != nil {
			repoLogger.Warn("Follow rejected by constraint.", port.Fields{"error": err.Error()})
			return domainErr
		}
		repoLogger.Error("Failed to create follow", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create follow: %w", err)
	}

	repoLogger.Debug("Follow created.", nil)
	return nil
}

func (r *PostgresFollowRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FollowView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresFollowRepository",
		"method":    "FindByID",
		"follow_id": id,
	})

	query := followViewSelect + ` WHERE f.id = $1`
	view, err := scanFollowView(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find follow", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find follow: %w", err)
	}
	return view, nil
}

func (r *PostgresFollowRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.Page[domain.FollowView], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresFollowRepository",
		"method":    "ListByOwner",
		"owner_id":  ownerID,
		"page":      page.Page,
	})

	countQuery := `SELECT COUNT(*) FROM follows WHERE owner_id = $1`
	dataQuery := followViewSelect + ` WHERE f.owner_id = $1 ORDER BY f.created_at DESC, f.id LIMIT $2 OFFSET $3`
	args := []interface{}{ownerID}
	return paginatedQuery(ctx, r.pool, repoLogger, countQuery, args, dataQuery, args, page, scanFollowView)
}

func (r *PostgresFollowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresFollowRepository",
		"method":    "Delete",
		"follow_id": id,
	})

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM follows WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete follow", err, nil)
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFollowView(row pgx.Row) (*domain.FollowView, error) {
	var v domain.FollowView
	if err := row.Scan(&v.ID, &v.OwnerID, &v.FollowedID, &v.CreatedAt, &v.OwnerUsername, &v.FollowedName); err != nil {
		return nil, err
	}
	return &v, nil
}
