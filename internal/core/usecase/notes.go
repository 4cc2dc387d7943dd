package usecase

import (
	"context"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"

	"github.com/google/uuid"
)

// ListNotesUseCase returns the requester's own notes. Anonymous callers get
// an empty page rather than an error.
type ListNotesUseCase struct {
	notes port.NoteRepositoryPort
}

func NewListNotesUseCase(notes port.NoteRepositoryPort) *ListNotesUseCase {
	return &ListNotesUseCase{notes: notes}
}

func (uc *ListNotesUseCase) Execute(ctx context.Context, requester domain.Requester, listingID *uuid.UUID, page domain.Pagination) (*domain.Page[domain.NoteView], error) {
	if !requester.Authenticated() {
		return domain.EmptyPage[domain.NoteView](page), nil
	}
	result, err := uc.notes.ListByOwner(ctx, requester.AccountID, listingID, page)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to list notes", err, port.Fields{"use_case": "ListNotes"})
		return nil, err
	}
	return result, nil
}

type CreateNoteUseCase struct {
	notes    port.NoteRepositoryPort
	listings port.ListingRepositoryPort
}

func NewCreateNoteUseCase(notes port.NoteRepositoryPort, listings port.ListingRepositoryPort) *CreateNoteUseCase {
	return &CreateNoteUseCase{notes: notes, listings: listings}
}

func (uc *CreateNoteUseCase) Execute(ctx context.Context, requester domain.Requester, listingID uuid.UUID, content string) (*domain.NoteView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "CreateNote",
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

	note, err := domain.NewNote(requester.AccountID, listingID, content)
	if err != nil {
		return nil, err
	}
	if err := uc.notes.Create(ctx, note); err != nil {
		ucLogger.Error("Repository failed to create note", err, nil)
		return nil, err
	}

	view, err := uc.notes.FindByID(ctx, note.ID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	ucLogger.Info("Use case finished successfully", port.Fields{"note_id": note.ID.String()})
	return view, nil
}

type GetNoteUseCase struct {
	notes port.NoteRepositoryPort
}

func NewGetNoteUseCase(notes port.NoteRepositoryPort) *GetNoteUseCase {
	return &GetNoteUseCase{notes: notes}
}

func (uc *GetNoteUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) (*domain.NoteView, error) {
	return findOwnNote(ctx, uc.notes, requester, id)
}

type UpdateNoteUseCase struct {
	notes port.NoteRepositoryPort
}

func NewUpdateNoteUseCase(notes port.NoteRepositoryPort) *UpdateNoteUseCase {
	return &UpdateNoteUseCase{notes: notes}
}

func (uc *UpdateNoteUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID, content string) (*domain.NoteView, error) {
	view, err := findOwnNote(ctx, uc.notes, requester, id)
	if err != nil {
		return nil, err
	}
	if err := view.Note.Edit(content); err != nil {
		return nil, err
	}
	if err := uc.notes.Update(ctx, &view.Note); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to update note", err, port.Fields{"use_case": "UpdateNote"})
		return nil, err
	}
	return view, nil
}

type DeleteNoteUseCase struct {
	notes port.NoteRepositoryPort
}

func NewDeleteNoteUseCase(notes port.NoteRepositoryPort) *DeleteNoteUseCase {
	return &DeleteNoteUseCase{notes: notes}
}

func (uc *DeleteNoteUseCase) Execute(ctx context.Context, requester domain.Requester, id uuid.UUID) error {
	if _, err := findOwnNote(ctx, uc.notes, requester, id); err != nil {
		return err
	}
	if err := uc.notes.Delete(ctx, id); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Repository failed to delete note", err, port.Fields{"use_case": "DeleteNote"})
		return err
	}
	return nil
}

// findOwnNote: notes are private, so anything not owned reads as missing.
func findOwnNote(ctx context.Context, notes port.NoteRepositoryPort, requester domain.Requester, id uuid.UUID) (*domain.NoteView, error) {
	view, err := notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil || !domain.CanReadEdge(requester, view.OwnerID) {
		return nil, domain.ErrNotFound
	}
	return view, nil
}
