package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

// memListingRepo keeps listings in memory and applies the bounding box the
// way the SQL query does.
type memListingRepo struct {
	mu        sync.Mutex
	listings  map[uuid.UUID]*domain.Listing
	lastQuery domain.ListingQuery
	updates   int
}

func newMemListingRepo(listings ...*domain.Listing) *memListingRepo {
	r := &memListingRepo{listings: make(map[uuid.UUID]*domain.Listing)}
	for _, l := range listings {
		r.listings[l.ID] = l
	}
	return r
}

func (r *memListingRepo) Create(_ context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.listings[l.ID] = &cp
	return nil
}

func (r *memListingRepo) Update(_ context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	r.listings[l.ID] = &cp
	r.updates++
	return nil
}

func (r *memListingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *memListingRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memListingRepo) FindViewByID(ctx context.Context, id, _ uuid.UUID) (*domain.ListingView, error) {
	l, _ := r.FindByID(ctx, id)
	if l == nil {
		return nil, nil
	}
	return &domain.ListingView{Listing: *l}, nil
}

func (r *memListingRepo) Search(_ context.Context, q domain.ListingQuery, page domain.Pagination) (*domain.Page[domain.ListingView], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = q

	out := domain.EmptyPage[domain.ListingView](page)
	for _, l := range r.listings {
		if q.Box != nil && (l.Location == nil || !q.Box.Contains(*l.Location)) {
			continue
		}
		out.Items = append(out.Items, domain.ListingView{Listing: *l})
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

type stubGeocoder struct {
	point domain.Point
	err   error
	calls int
}

func (g *stubGeocoder) Resolve(context.Context, string) (domain.Point, error) {
	g.calls++
	return g.point, g.err
}

type recordingEvents struct {
	events []domain.ListingEvent
	err    error
}

func (e *recordingEvents) Publish(_ context.Context, event domain.ListingEvent) error {
	e.events = append(e.events, event)
	return e.err
}

type memAccountRepo struct {
	accounts map[uuid.UUID]*domain.Account
	profiles map[uuid.UUID]*domain.Profile // by owner
	deleted  []uuid.UUID
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{
		accounts: make(map[uuid.UUID]*domain.Account),
		profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

func (r *memAccountRepo) CreateWithProfile(_ context.Context, a *domain.Account, p *domain.Profile) error {
	for _, existing := range r.accounts {
		if existing.Username == a.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.accounts[a.ID] = a
	r.profiles[a.ID] = p
	return nil
}

func (r *memAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.accounts[id], nil
}

func (r *memAccountRepo) DeleteAccount(_ context.Context, id uuid.UUID) error {
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.accounts, id)
	delete(r.profiles, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// memProfileRepo reads through to the account repo so both stay consistent.
type memProfileRepo struct {
	accounts *memAccountRepo
}

func (r *memProfileRepo) view(p *domain.Profile) *domain.ProfileView {
	a := r.accounts.accounts[p.OwnerID]
	return &domain.ProfileView{Profile: *p, OwnerUsername: a.Username, IsSeller: a.IsSeller}
}

func (r *memProfileRepo) FindViewByID(_ context.Context, id, _ uuid.UUID) (*domain.ProfileView, error) {
	for _, p := range r.accounts.profiles {
		if p.ID == id {
			return r.view(p), nil
		}
	}
	return nil, nil
}

func (r *memProfileRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) (*domain.Profile, error) {
	return r.accounts.profiles[ownerID], nil
}

func (r *memProfileRepo) ListSellers(_ context.Context, _ domain.ProfileOrdering, _ uuid.UUID, page domain.Pagination) (*domain.Page[domain.ProfileView], error) {
	out := domain.EmptyPage[domain.ProfileView](page)
	for _, p := range r.accounts.profiles {
		if v := r.view(p); v.IsSeller {
			out.Items = append(out.Items, *v)
		}
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (r *memProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	r.accounts.profiles[p.OwnerID] = p
	return nil
}

// memBookmarkRepo enforces the (owner, listing) uniqueness of the real table.
type memBookmarkRepo struct {
	bookmarks map[uuid.UUID]*domain.Bookmark
}

func newMemBookmarkRepo() *memBookmarkRepo {
	return &memBookmarkRepo{bookmarks: make(map[uuid.UUID]*domain.Bookmark)}
}

func (r *memBookmarkRepo) Create(_ context.Context, b *domain.Bookmark) error {
	for _, existing := range r.bookmarks {
		if existing.OwnerID == b.OwnerID && existing.ListingID == b.ListingID {
			return domain.ErrDuplicateEdge
		}
	}
	r.bookmarks[b.ID] = b
	return nil
}

func (r *memBookmarkRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.BookmarkView, error) {
	b, ok := r.bookmarks[id]
	if !ok {
		return nil, nil
	}
	return &domain.BookmarkView{Bookmark: *b}, nil
}

func (r *memBookmarkRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.Page[domain.BookmarkView], error) {
	out := domain.EmptyPage[domain.BookmarkView](page)
	for _, b := range r.bookmarks {
		if b.OwnerID == ownerID {
			out.Items = append(out.Items, domain.BookmarkView{Bookmark: *b})
		}
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (r *memBookmarkRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.bookmarks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.bookmarks, id)
	return nil
}

type memFollowRepo struct {
	follows map[uuid.UUID]*domain.Follow
}

func newMemFollowRepo() *memFollowRepo {
	return &memFollowRepo{follows: make(map[uuid.UUID]*domain.Follow)}
}

func (r *memFollowRepo) Create(_ context.Context, f *domain.Follow) error {
	for _, existing := range r.follows {
		if existing.OwnerID == f.OwnerID && existing.FollowedID == f.FollowedID {
			return domain.ErrDuplicateEdge
		}
	}
	r.follows[f.ID] = f
	return nil
}

func (r *memFollowRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.FollowView, error) {
	f, ok := r.follows[id]
	if !ok {
		return nil, nil
	}
	return &domain.FollowView{Follow: *f}, nil
}

func (r *memFollowRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, page domain.Pagination) (*domain.Page[domain.FollowView], error) {
	out := domain.EmptyPage[domain.FollowView](page)
	for _, f := range r.follows {
		if f.OwnerID == ownerID {
			out.Items = append(out.Items, domain.FollowView{Follow: *f})
		}
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

func (r *memFollowRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.follows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.follows, id)
	return nil
}

type stubTokens struct{}

func (stubTokens) GenerateToken(_ context.Context, a *domain.Account, _ time.Duration) (string, error) {
	return "token-" + a.Username, nil
}

func (stubTokens) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	return nil, domain.ErrTokenInvalid
}

func seller() domain.Requester {
	return domain.Requester{AccountID: uuid.New(), Username: "seller", IsSeller: true}
}

func buyer() domain.Requester {
	return domain.Requester{AccountID: uuid.New(), Username: "buyer"}
}

func ptr[T any](v T) *T { return &v }
