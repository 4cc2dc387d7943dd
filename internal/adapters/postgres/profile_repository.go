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

// profileViewSelect adds counters and the viewer's follow. $1 is the viewer id.
const profileViewSelect = `SELECT p.id, p.owner_id, p.name, p.description, p.email,
	p.telephone_landline, p.telephone_mobile, p.created_at, p.updated_at,
	a.username, a.is_seller,
	(SELECT COUNT(*) FROM listings l WHERE l.owner_id = p.owner_id) AS property_count,
	(SELECT COUNT(*) FROM follows f WHERE f.followed_id = p.owner_id) AS followers_count,
	(SELECT COUNT(*) FROM follows f WHERE f.owner_id = p.owner_id) AS following_count,
	(SELECT f.id FROM follows f WHERE f.followed_id = p.owner_id AND f.owner_id = $1) AS following_id
FROM profiles p
JOIN accounts a ON a.id = p.owner_id`

// ProfileRepository implements port.ProfileRepositoryPort.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ProfileRepository{pool: pool}, nil
}

func (r *ProfileRepository) FindViewByID(ctx context.Context, id, viewerID uuid.UUID) (*domain.ProfileView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "ProfileRepository",
		"method":     "FindViewByID",
		"profile_id": id.String(),
	})

	query := profileViewSelect + ` WHERE p.id = $2`
	view, err := scanProfileView(r.pool.QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find profile", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return view, nil
}

func (r *ProfileRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Profile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ProfileRepository",
		"method":    "FindByOwner",
		"owner_id":  ownerID.String(),
	})

	query := `SELECT id, owner_id, name, description, email, telephone_landline, telephone_mobile, created_at, updated_at
		FROM profiles WHERE owner_id = $1`
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Email,
		&p.TelephoneLandline, &p.TelephoneMobile, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find profile by owner", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find profile by owner: %w", err)
	}
	return &p, nil
}

// ListSellers lists seller profiles only. Non-seller profiles are private.
func (r *ProfileRepository) ListSellers(ctx context.Context, ordering domain.ProfileOrdering, viewerID uuid.UUID, page domain.Pagination) (*domain.Page[domain.ProfileView], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ProfileRepository",
		"method":    "ListSellers",
		"ordering":  string(ordering),
		"page":      page.Page,
		"per_page":  page.PerPage,
	})

	countQuery := `SELECT COUNT(*) FROM profiles p JOIN accounts a ON a.id = p.owner_id WHERE a.is_seller`
	dataQuery := profileViewSelect + ` WHERE a.is_seller ` + profileOrderClause(ordering) + ` LIMIT $2 OFFSET $3`

	return paginatedQuery(ctx, r.pool, repoLogger, countQuery, nil, dataQuery, []interface{}{viewerID}, page, scanProfileView)
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "ProfileRepository",
		"method":     "Update",
		"profile_id": profile.ID.String(),
	})

	query := `UPDATE profiles SET name = $2, description = $3, email = $4, telephone_landline = $5,
		telephone_mobile = $6, updated_at = $7 WHERE id = $1`
	cmdTag, err := r.pool.Exec(ctx, query,
		profile.ID, profile.Name, profile.Description, profile.Email,
		profile.TelephoneLandline, profile.TelephoneMobile, profile.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to update profile", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	repoLogger.Debug("Profile updated.", nil)
	return nil
}

func scanProfileView(row pgx.Row) (*domain.ProfileView, error) {
	var v domain.ProfileView
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.Email,
		&v.TelephoneLandline, &v.TelephoneMobile, &v.CreatedAt, &v.UpdatedAt,
		&v.OwnerUsername, &v.IsSeller,
		&v.PropertyCount, &v.FollowersCount, &v.FollowingCount, &v.FollowingID,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
