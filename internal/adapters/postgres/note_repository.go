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

const noteViewSelect = `SELECT n.id, n.owner_id, n.listing_id, n.content, n.created_at, n.updated_at, a.username, p.id
FROM notes n
JOIN accounts a ON a.id = n.owner_id
JOIN profiles p ON p.owner_id = n.owner_id`

// PostgresNoteRepository implements port.NoteRepositoryPort.
type PostgresNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresNoteRepository(pool *pgxpool.Pool) (*PostgresNoteRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresNoteRepository{pool: pool}, nil
}

func (r *PostgresNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresNoteRepository",
		"method":     "Create",
		"owner_id":   note.OwnerID,
		"listing_id": note.ListingID,
	})

	query := `INSERT INTO notes (id, owner_id, listing_id, content, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, note.ID, note.OwnerID, note.ListingID, note.Content, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		if domainErr := translateWriteError(err); domainErr != nil {
			repoLogger.Warn("Note rejected by constraint.", port.Fields{"error": err.Error()})
			return domainErr
		}
		repoLogger.Error("Failed to create note", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *PostgresNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.NoteView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresNoteRepository",
		"method":    "FindByID",
		"note_id":   id,
	})

	query := noteViewSelect + ` WHERE n.id = $1`
	view, err := scanNoteView(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find note", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return view, nil
}

// ListByOwner narrows to one listing when listingID is set.
func (r *PostgresNoteRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, listingID *uuid.UUID, page domain.Pagination) (*domain.Page[domain.NoteView], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresNoteRepository",
		"method":    "ListByOwner",
		"owner_id":  ownerID,
		"page":      page.Page,
	})

	qb := newQueryBuilder()
	qb.addCondition("%s = $%d", "n.owner_id", ownerID)
	if listingID != nil {
		qb.addCondition("%s = $%d", "n.listing_id", *listingID)
	}
	whereClause, _ := qb.whereClause()

	countQuery := `SELECT COUNT(*) FROM notes n ` + whereClause
	dataQuery := noteViewSelect + " " + whereClause + " ORDER BY n.created_at DESC, n.id" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", qb.argId, qb.argId+1)
	return paginatedQuery(ctx, r.pool, repoLogger, countQuery, qb.args, dataQuery, qb.args, page, scanNoteView)
}

func (r *PostgresNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresNoteRepository",
		"method":    "Update",
		"note_id":   note.ID,
	})

	cmdTag, err := r.pool.Exec(ctx, `UPDATE notes SET content = $2, updated_at = $3 WHERE id = $1`, note.ID, note.Content, note.UpdatedAt)
	if err != nil {
		repoLogger.Error("Failed to update note", err, nil)
		return fmt.Errorf("failed to update note: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresNoteRepository",
		"method":    "Delete",
		"note_id":   id,
	})

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete note", err, nil)
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanNoteView(row pgx.Row) (*domain.NoteView, error) {
	var v domain.NoteView
	err := row.Scan(&v.ID, &v.OwnerID, &v.ListingID, &v.Content, &v.CreatedAt, &v.UpdatedAt, &v.OwnerUsername, &v.ProfileID)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
