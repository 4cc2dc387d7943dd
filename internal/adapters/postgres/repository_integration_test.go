package postgres_adapter

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// newTestPool connects to PROPERTY_DIRECT_TEST_DATABASE_URL and applies the
// schema. Tests are skipped when the variable is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("PROPERTY_DIRECT_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PROPERTY_DIRECT_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: url})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := ApplySchema(ctx, pool); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return pool
}

func createTestAccount(t *testing.T, repo *AccountRepository, isSeller bool) (*domain.Account, *domain.Profile) {
	t.Helper()
	account := &domain.Account{
		ID:           uuid.New(),
		Username:     "user-" + uuid.NewString()[:8],
		PasswordHash: "x",
		IsSeller:     isSeller,
		CreatedAt:    time.Now().UTC(),
	}
	profile := domain.NewProfile(account)
	if err := repo.CreateWithProfile(context.Background(), account, profile); err != nil {
		t.Fatalf("CreateWithProfile: %v", err)
	}
	t.Cleanup(func() { _ = repo.DeleteAccount(context.Background(), account.ID) })
	return account, profile
}

func createTestListing(t *testing.T, repo *PostgresListingRepository, ownerID uuid.UUID, at domain.Point) *domain.Listing {
	t.Helper()
	street, city, postcode, desc, ptype := "Portland Place", "London", "W1A 1AA", "test", "apartment"
	price, rooms := 100000, 1
	listing, err := domain.NewListing(ownerID, domain.ListingInput{
		StreetName: &street, City: &city, Postcode: &postcode, Description: &desc,
		Price: &price, PropertyType: &ptype, NumBedrooms: &rooms, NumBathrooms: &rooms,
	})
	if err != nil {
		t.Fatal(err)
	}
	listing.Locate(at)
	if err := repo.Create(context.Background(), listing); err != nil {
		t.Fatalf("Create listing: %v", err)
	}
	return listing
}

func TestIntegration_BoxedSearch(t *testing.T) {
	pool := newTestPool(t)
	accounts, _ := NewAccountRepository(pool)
	listings, _ := NewPostgresListingRepository(pool)
	ctx := context.Background()

	w1a := domain.Point{Latitude: 51.518561, Longitude: -0.143799}
	owner, _ := createTestAccount(t, accounts, true)
	near := createTestListing(t, listings, owner.ID, w1a)
	far := createTestListing(t, listings, owner.ID, domain.Point{
		Latitude:  w1a.Latitude + 50/domain.EarthRadiusMiles*180/math.Pi,
		Longitude: w1a.Longitude,
	})

	box := domain.NewBoundingBox(w1a, 0.5)
	page, err := listings.Search(ctx, domain.ListingQuery{
		Box:      &box,
		Origin:   &w1a,
		Ordering: domain.OrderDistanceAsc,
	}, domain.NewPagination(1, 100))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	found := map[uuid.UUID]bool{}
	for _, item := range page.Items {
		found[item.ID] = true
		if item.Location == nil || !box.Contains(*item.Location) {
			t.Errorf("listing %s outside the box", item.ID)
		}
	}
	if !found[near.ID] {
		t.Error("listing at the origin missing from boxed search")
	}
	if found[far.ID] {
		t.Error("listing 50 miles away returned by boxed search")
	}
}

func TestIntegration_DuplicateBookmarkAndAccountDelete(t *testing.T) {
	pool := newTestPool(t)
	accounts, _ := NewAccountRepository(pool)
	listings, _ := NewPostgresListingRepository(pool)
	bookmarks, _ := NewPostgresBookmarkRepository(pool)
	profiles, _ := NewProfileRepository(pool)
	ctx := context.Background()

	seller, _ := createTestAccount(t, accounts, true)
	buyer, buyerProfile := createTestAccount(t, accounts, false)
	listing := createTestListing(t, listings, seller.ID, domain.Point{Latitude: 51.5, Longitude: -0.1})

	if err := bookmarks.Create(ctx, domain.NewBookmark(buyer.ID, listing.ID)); err != nil {
		t.Fatalf("first bookmark: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := bookmarks.Create(ctx, domain.NewBookmark(buyer.ID, listing.ID)); !errors.Is(err, domain.ErrDuplicateEdge) {
			t.Fatalf("duplicate bookmark: error = %v, want ErrDuplicateEdge", err)
		}
	}

	view, err := listings.FindViewByID(ctx, listing.ID, buyer.ID)
	if err != nil || view == nil {
		t.Fatalf("FindViewByID: %v, %v", view, err)
	}
	if view.BookmarksCount != 1 || view.BookmarkID == nil {
		t.Errorf("bookmarks_count = %d, bookmark_id = %v", view.BookmarksCount, view.BookmarkID)
	}

	if err := accounts.DeleteAccount(ctx, buyer.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if p, err := profiles.FindViewByID(ctx, buyerProfile.ID, uuid.Nil); err != nil || p != nil {
		t.Errorf("profile after delete = %v, %v", p, err)
	}
	if a, err := accounts.FindByID(ctx, seller.ID); err != nil || a == nil {
		t.Errorf("unrelated account affected: %v, %v", a, err)
	}
	if err := accounts.DeleteAccount(ctx, buyer.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: error = %v, want ErrNotFound", err)
	}
}

func TestIntegration_DuplicateUsername(t *testing.T) {
	pool := newTestPool(t)
	accounts, _ := NewAccountRepository(pool)

	existing, _ := createTestAccount(t, accounts, false)
	clash := &domain.Account{ID: uuid.New(), Username: existing.Username, PasswordHash: "x", CreatedAt: time.Now().UTC()}
	err := accounts.CreateWithProfile(context.Background(), clash, domain.NewProfile(clash))
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("error = %v, want ErrUsernameTaken", err)
	}
}
