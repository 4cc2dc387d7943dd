package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
)

type ListBookmarksUseCase struct {
	bookmarks port.BookmarkRepositoryPort
}

func NewListBookmarksUseCase(bookmarks port.BookmarkRepositoryPort) *ListBookmarksUseCase {
	return &ListBookmarksUseCase{bookmarks: bookmarks}
}

func (uc *ListBookmarksUseCase) Execute(ctx context.Context, requester domain.Requester, page domain.Pagination) (*domain.Page[domain.BookmarkView], error) {
	if err := domain.CanCreateEdge(requester); err != nil {
		return nil, err
	}
	result, err := uc.bookmarks.ListByOwner(ctx, requester.AccountID, page)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to list bookmarks", err, port.Fields{"use_case": "ListBookmarks"})
		return nil, err
	}
	return result, nil
}

// CreateBookmarkUseCase bookmarks a listing. A second bookmark of the same
// listing by the same account is domain.ErrDuplicateEdge.
type CreateBookmarkUseCase struct {
	bookmarks port.BookmarkRepositoryPort
	listings  port.ListingRepositoryPort
}

func NewCreateBookmarkUseCase(bookmarks port.BookmarkRepositoryPort, listings port.ListingRepositoryPort) *CreateBookmarkUseCase {
	return &CreateBookmarkUseCase{bookmarks: bookmarks, listings: listings}
}

func (uc *CreateBookmarkUseCase) Execute(ctx context.Context, requester domain.Requester, listingID uuid.UUID) (*domain.BookmarkView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CreateBookmark",
		"owner_id":   requester.AccountID.String(),
		"listing_id": listingID.String(),
	})
	ucLogger.Info("Use case started", nil)

	if err := domain.CanCreateEdge(requester); err != nil {
		return nil, err
	}

	listing, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		ucLogger.Error("Repository failed to find listing", err, nil)
		return nil, err
	}
	if listing == nil {
		return nil, domain.NewFieldError("property", "Invalid pk \""+listingID.String()+"\" - object does not exist.")
	}

	bookmark := domain.NewBookmark(requester.AccountID, listingID)
	if err := uc.bookmarks.Create(ctx, bookmark); err != nil {
		ucLogger.Warn("Repository refused bookmark", port.Fields{"error": err.Error()})
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"bookmark_id": bookmark.ID.String()})
	return &domain.BookmarkView{Bookmark: *bookmark, OwnerUsername: requester.Username}, nil
}

type GetBookmarkUseCase struct {
	bookmarks port.BookmarkRepositoryPort
}

func NewGetBookmarkUseCase(bookmarks port.BookmarkRepositoryPort) *GetBookmarkUseCase {
	return &GetBookmarkUseCase{bookmarks: bookmarks}
}

func (uc *GetBookmarkUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.BookmarkView, error) {
	return findOwnBookmark(ctx, uc.bookmarks, requester, id)
}

type DeleteBookmarkUseCase struct {
	bookmarks port.BookmarkRepositoryPort
}

func NewDeleteBookmarkUseCase(bookmarks port.BookmarkRepositoryPort) *DeleteBookmarkUseCase {
	return &DeleteBookmarkUseCase{bookmarks: bookmarks}
}

func (uc *DeleteBookmarkUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	if _, err := findOwnBookmark(ctx, uc.bookmarks, requester, id); err != nil {
		return err
	}
	if err := uc.bookmarks.Delete(ctx, id); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to delete bookmark", err, port.Fields{"use_case": "DeleteBookmark"})
		return err
	}
	return nil
}

// findOwnBookmark treats bookmarks the requester does not own as absent,
// for anonymous requesters too.
func findOwnBookmark(ctx context.Context, bookmarks port.BookmarkRepositoryPort, requester domain.Requester, id uuid.UUID) (*domain.BookmarkView, error) {
	view, err := bookmarks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil || !domain.CanReadEdge(requester, view.OwnerID) {
		return nil, domain.ErrNotFound
	}
	return view, nil
}
