package usecases_port

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"

	"github.com/google/uuid"
)

type ListBookmarksUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, page domain.Pagination) (*domain.Page[domain.BookmarkView], error)
}

type CreateBookmarkUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, listingID uuid.UUID) (*domain.BookmarkView, error)
}

type GetBookmarkUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.BookmarkView, error)
}

type DeleteBookmarkUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}

type ListFollowsUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, page domain.Pagination) (*domain.Page[domain.FollowView], error)
}

type CreateFollowUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, followedID uuid.UUID) (*domain.FollowView, error)
}

type GetFollowUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.FollowView, error)
}

type DeleteFollowUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}

type ListNotesUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, listingID *uuid.UUID, page domain.Pagination) (*domain.Page[domain.NoteView], error)
}

type CreateNoteUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, listingID uuid.UUID, content string) (*domain.NoteView, error)
}

type GetNoteUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.NoteView, error)
}

type UpdateNoteUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID, content string) (*domain.NoteView, error)
}

type DeleteNoteUseCasePort interface {
	Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error
}
