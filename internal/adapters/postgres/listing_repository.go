package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingColumns = `l.id, l.owner_id, l.property_name, l.property_number, l.street_name, l.locality,
	l.city, l.postcode, l.description, l.price, l.property_type, l.tenure, l.council_tax_band,
	l.num_bedrooms, l.num_bathrooms, l.has_garden, l.has_parking, l.is_sold_stc,
	l.latitude, l.longitude, l.geohash, l.created_at, l.updated_at`

// listingViewSelect joins owner, profile and bookmark data. $1 is the viewer id.
const listingViewSelect = `SELECT ` + listingColumns + `,
	a.username, p.id, p.name, p.email, p.telephone_landline, p.telephone_mobile,
	(SELECT COUNT(*) FROM bookmarks b WHERE b.listing_id = l.id) AS bookmarks_count,
	(SELECT MAX(b.created_at) FROM bookmarks b WHERE b.listing_id = l.id) AS last_bookmarked_at,
	(SELECT b.id FROM bookmarks b WHERE b.listing_id = l.id AND b.owner_id = %s) AS bookmark_id
FROM listings l
JOIN accounts a ON a.id = l.owner_id
JOIN profiles p ON p.owner_id = l.owner_id`

// PostgresListingRepository implements port.ListingRepositoryPort.
type PostgresListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) (*PostgresListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresListingRepository{pool: pool}, nil
}

func (r *PostgresListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "Create",
		"listing_id": listing.ID,
	})

	query := `INSERT INTO listings (id, owner_id, property_name, property_number, street_name, locality,
		city, postcode, description, price, property_type, tenure, council_tax_band,
		num_bedrooms, num_bathrooms, has_garden, has_parking, is_sold_stc,
		latitude, longitude, geohash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	lat, lon, hash := locationArgs(listing)
	_, err := r.pool.Exec(ctx, query,
		listing.ID, listing.OwnerID, listing.PropertyName, listing.PropertyNumber, listing.StreetName, listing.Locality,
		listing.City, listing.Postcode, listing.Description, listing.Price, string(listing.PropertyType), string(listing.Tenure), string(listing.CouncilTaxBand),
		listing.NumBedrooms, listing.NumBathrooms, listing.HasGarden, listing.HasParking, listing.IsSoldSTC,
		lat, lon, hash, listing.CreatedAt, listing.UpdatedAt,
	)
	if err != nil {
		if domainErr := translateWriteError(err); domainErr != nil {
			repoLogger.Warn("Listing violates a constraint", port.Fields{"error": err.Error()})
			return domainErr
		}
		repoLogger.Error("Failed to create listing", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create listing: %w", err)
	}

	repoLogger.Debug("Listing created.", nil)
	return nil
}

func (r *PostgresListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "Update",
		"listing_id": listing.ID,
	})

	query := `UPDATE listings SET property_name = $2, property_number = $3, street_name = $4, locality = $5,
		city = $6, postcode = $7, description = $8, price = $9, property_type = $10, tenure = $11,
		council_tax_band = $12, num_bedrooms = $13, num_bathrooms = $14, has_garden = $15,
		has_parking = $16, is_sold_stc = $17, latitude = $18, longitude = $19, geohash = $20, updated_at = $21
		WHERE id = $1`

	lat, lon, hash := locationArgs(listing)
	cmdTag, err := r.pool.Exec(ctx, query,
		listing.ID, listing.PropertyName, listing.PropertyNumber, listing.StreetName, listing.Locality,
		listing.City, listing.Postcode, listing.Description, listing.Price, string(listing.PropertyType), string(listing.Tenure),
		string(listing.CouncilTaxBand), listing.NumBedrooms, listing.NumBathrooms, listing.HasGarden,
		listing.HasParking, listing.IsSoldSTC, lat, lon, hash, listing.UpdatedAt,
	)
	if err != nil {
		if domainErr := translateWriteError(err); domainErr != nil {
			repoLogger.Warn("Listing violates a constraint", port.Fields{"error": err.Error()})
			return domainErr
		}
		repoLogger.Error("Failed to update listing", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Listing to update no longer exists.", nil)
		return domain.ErrNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for bookmarks and notes.
func (r *PostgresListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "Delete",
		"listing_id": id,
	})

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete listing", err, nil)
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	repoLogger.Debug("Listing deleted.", nil)
	return nil
}

// FindByID returns (nil, nil) when the listing does not exist.
func (r *PostgresListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "FindByID",
		"listing_id": id,
	})

	query := `SELECT ` + listingColumns + ` FROM listings l WHERE l.id = $1`
	listing, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find listing", err, nil)
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return listing, nil
}

func (r *PostgresListingRepository) FindViewByID(ctx context.Context, id, viewerID uuid.UUID) (*domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "FindViewByID",
		"listing_id": id,
	})

	query := fmt.Sprintf(listingViewSelect, "$1") + ` WHERE l.id = $2`
	view, err := scanListingView(r.pool.QueryRow(ctx, query, viewerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find listing view", err, nil)
		return nil, fmt.Errorf("failed to find listing view: %w", err)
	}
	return view, nil
}

// Search runs the count and the page query in one transaction so that the
// total matches the page.
func (r *PostgresListingRepository) Search(ctx context.Context, query domain.ListingQuery, page domain.Pagination) (*domain.Page[domain.ListingView], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "Search",
		"page":      page.Page,
		"per_page":  page.PerPage,
		"boxed":     query.Box != nil,
	})

	qb := applyListingFilters(query)
	whereClause, whereArgCount := qb.whereClause()
	countArgs := append([]interface{}(nil), qb.args[:whereArgCount]...)

	viewerPlaceholder := qb.addArg(query.ViewerID)
	orderClause := listingOrderClause(qb, query.Ordering, query.Origin)
	limitPlaceholder := qb.addArg(page.PerPage)
	offsetPlaceholder := qb.addArg(page.Offset())

	countQuery := `SELECT COUNT(*) FROM listings l ` + whereClause
	dataQuery := fmt.Sprintf(listingViewSelect, viewerPlaceholder) + " " + whereClause + " " + orderClause +
		" LIMIT " + limitPlaceholder + " OFFSET " + offsetPlaceholder

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, countArgs...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count listings", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	repoLogger.Debug("Total listings matching filters", port.Fields{"total_count": totalCount})

	result := &domain.Page[domain.ListingView]{
		Items:        make([]domain.ListingView, 0, page.PerPage),
		TotalCount:   totalCount,
		CurrentPage:  page.Page,
		ItemsPerPage: page.PerPage,
	}
	if totalCount == 0 {
		return result, nil
	}

	rows, err := tx.Query(ctx, dataQuery, qb.args...)
	if err != nil {
		repoLogger.Error("Failed to query listings", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		view, err := scanListingView(rows)
		if err != nil {
			repoLogger.Error("Failed to scan listing row", err, nil)
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		result.Items = append(result.Items, *view)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during listings iteration", err, nil)
		return nil, fmt.Errorf("error during listings iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Search finished.", port.Fields{"found_on_page": len(result.Items)})
	return result, nil
}

func locationArgs(l *domain.Listing) (lat, lon *float64, hash *string) {
	if l.Location == nil {
		return nil, nil, nil
	}
	latitude, longitude, geohash := l.Location.Latitude, l.Location.Longitude, l.Geohash
	return &latitude, &longitude, &geohash
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	var lat, lon *float64
	var hash *string
	var propertyType, tenure, band string
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.PropertyName, &l.PropertyNumber, &l.StreetName, &l.Locality,
		&l.City, &l.Postcode, &l.Description, &l.Price, &propertyType, &tenure, &band,
		&l.NumBedrooms, &l.NumBathrooms, &l.HasGarden, &l.HasParking, &l.IsSoldSTC,
		&lat, &lon, &hash, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	finishListing(&l, propertyType, tenure, band, lat, lon, hash)
	return &l, nil
}

func scanListingView(row pgx.Row) (*domain.ListingView, error) {
	var v domain.ListingView
	var lat, lon *float64
	var hash *string
	var propertyType, tenure, band string
	var lastBookmarkedAt *time.Time
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.PropertyName, &v.PropertyNumber, &v.StreetName, &v.Locality,
		&v.City, &v.Postcode, &v.Description, &v.Price, &propertyType, &tenure, &band,
		&v.NumBedrooms, &v.NumBathrooms, &v.HasGarden, &v.HasParking, &v.IsSoldSTC,
		&lat, &lon, &hash, &v.CreatedAt, &v.UpdatedAt,
		&v.OwnerUsername, &v.ProfileID, &v.ProfileName, &v.ProfileEmail,
		&v.ProfileTelephoneLandline, &v.ProfileTelephoneMobile,
		&v.BookmarksCount, &lastBookmarkedAt, &v.BookmarkID,
	)
	if err != nil {
		return nil, err
	}
	finishListing(&v.Listing, propertyType, tenure, band, lat, lon, hash)
	return &v, nil
}

func finishListing(l *domain.Listing, propertyType, tenure, band string, lat, lon *float64, hash *string) {
	l.PropertyType = domain.PropertyType(propertyType)
	l.Tenure = domain.Tenure(tenure)
	l.CouncilTaxBand = domain.CouncilTaxBand(band)
	if lat != nil && lon != nil {
		l.Location = &domain.Point{Latitude: *lat, Longitude: *lon}
	}
	if hash != nil {
		l.Geohash = *hash
	}
}
