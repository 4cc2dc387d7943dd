package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bookmark marks a listing for the owning account. Unique per (owner, listing).
type Bookmark struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	ListingID uuid.UUID
	CreatedAt time.Time
}

type BookmarkView struct {
	Bookmark
	OwnerUsername string
}

func NewBookmark(ownerID, listingID uuid.UUID) *Bookmark {
	return &Bookmark{ID: uuid.New(), OwnerID: ownerID, ListingID: listingID, CreatedAt: time.Now().UTC()}
}

// Follow links an account to a seller account. Unique per (owner, followed).
type Follow struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	FollowedID uuid.UUID
	CreatedAt  time.Time
}

type FollowView struct {
	Follow
	OwnerUsername string
	FollowedName  string
}

func NewFollow(ownerID, followedID uuid.UUID) *Follow {
	return &Follow{ID: uuid.New(), OwnerID: ownerID, FollowedID: followedID, CreatedAt: time.Now().UTC()}
}

// Note is private text an account keeps about a listing.
type Note struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	ListingID uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NoteView struct {
	Note
	OwnerUsername string
	ProfileID     uuid.UUID
}

func NewNote(ownerID, listingID uuid.UUID, content string) (*Note, error) {
	if err := validateNoteContent(content); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Note{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		ListingID: listingID,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (n *Note) Edit(content string) error {
	if err := validateNoteContent(content); err != nil {
		return err
	}
	n.Content = strings.TrimSpace(content)
	n.UpdatedAt = time.Now().UTC()
	return nil
}

func validateNoteContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return NewFieldError("content", "This field may not be blank.")
	}
	return nil
}
