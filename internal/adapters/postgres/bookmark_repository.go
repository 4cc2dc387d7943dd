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

const bookmarkViewSelect = `SELECT b.id, b.owner_id, b.listing_id, b.created_at, a.username
FROM bookmarks b
JOIN accounts a ON a.id = b.owner_id`

// PostgresBookmarkRepository implements port.BookmarkRepositoryPort.
type PostgresBookmarkRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookmarkRepository(pool *pgxpool.Pool) (*PostgresBookmarkRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresBookmarkRepository{pool: pool}, nil
}

// Create maps the (owner, listing) unique violation to domain.ErrDuplicateEdge.
func (r *PostgresBookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresBookmarkRepository",
		"method":     "Create",
		"owner_id":   bookmark.OwnerID,
		"listing_id": bookmark.ListingID,
	})

	query := `INSERT INTO bookmarks (id, owner_id, listing_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, bookmark.ID, bookmark.OwnerID, bookmark.ListingID, bookmark.CreatedAt)
	if err != nil {
		if domainErr := translateWriteError(err); domainErr != nil {
			repoLogger.Warn("Bookmark rejected by constraint.", port.Fields{"error": err.Error()})
			return domainErr
		}
		repoLogger.Error("Failed to create bookmark", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create bookmark: %w", err)
	}

	repoLogger.Debug("Bookmark created.", nil)
	return nil
}

func (r *PostgresBookmarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.BookmarkView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresBookmarkRepository",
		"method":      "FindByID",
		"bookmark_id": id,
	})

	query := bookmarkViewSelect + ` WHERE b.id = $1`
	view, err := scanBookmarkView(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find bookmark", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find bookmark: %w", err)
	}
	return view, nil
}

func (r *PostgresBookmarkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.Page[domain.BookmarkView], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresBookmarkRepository",
		"method":    "ListByOwner",
		"owner_id":  ownerID,
		"page":      page.Page,
	})

	countQuery := `SELECT COUNT(*) FROM bookmarks WHERE owner_id = $1`
	dataQuery := bookmarkViewSelect + ` WHERE b.owner_id = $1 ORDER BY b.created_at DESC, b.id LIMIT $2 OFFSET $3`
	args := []interface{}{ownerID}
	return paginatedQuery(ctx, r.pool, repoLogger, countQuery, args, dataQuery, args, page, scanBookmarkView)
}

func (r *PostgresBookmarkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresBookmarkRepository",
		"method":      "Delete",
		"bookmark_id": id,
	})

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete bookmark", err, nil)
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to remove a bookmark that did not exist.", nil)
		return domain.ErrNotFound
	}
	return nil
}

func scanBookmarkView(row pgx.Row) (*domain.BookmarkView, error) {
	var v domain.BookmarkView
	if err := row.Scan(&v.ID, &v.OwnerID, &v.ListingID, &v.CreatedAt, &v.OwnerUsername); err != nil {
		return nil, err
	}
	return &v, nil
}
