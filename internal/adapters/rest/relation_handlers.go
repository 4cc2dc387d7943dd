package rest

import (
	"net/http"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/contracts"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type BookmarkHandler struct {
	listUC   usecases_port.ListBookmarksUseCasePort
	createUC usecases_port.CreateBookmarkUseCasePort
	getUC    usecases_port.GetBookmarkUseCasePort
	deleteUC usecases_port.DeleteBookmarkUseCasePort
}

func NewBookmarkHandler(listUC usecases_port.ListBookmarksUseCasePort,
	createUC usecases_port.CreateBookmarkUseCasePort,
	getUC usecases_port.GetBookmarkUseCasePort,
	deleteUC usecases_port.DeleteBookmarkUseCasePort) *BookmarkHandler {
	return &BookmarkHandler{listUC: listUC, createUC: createUC, getUC: getUC, deleteUC: deleteUC}
}

func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListBookmarks"})

	q := newQueryParser(r.URL.Query())
	page := q.Pagination()
	if err := q.Err(); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	result, err := h.listUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()), page)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newPaginatedResponse(result, toBookmarkResponse))
}

func (h *BookmarkHandler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateBookmark"})
	requester := contextkeys.RequesterFromContext(r.Context())

	if err := domain.CanCreateEdge(requester); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	var req BookmarkRequest
	if err := decodeBody(r, contracts.BookmarkCreate, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}
	listingID, err := uuid.Parse(req.Property)
	if err != nil {
		RespondWithError(w, logger, domain.NewFieldError("property", "Must be a valid uuid."))
		return
	}

	view, err := h.createUC.Execute(r.Context(), requester, listingID)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toBookmarkResponse(view))
}

func (h *BookmarkHandler) GetBookmark(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetBookmark"})

	id, err := pathUUID(r, "bookmarkID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.getUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()), id)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toBookmarkResponse(view))
}

func (h *BookmarkHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteBookmark"})

	id, err := pathUUID(r, "bookmarkID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	if err := h.deleteUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()), id); err != nil {
		RespondWithError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type FollowHandler struct {
	listUC   usecases_port.ListFollowsUseCasePort
	createUC usecases_port.CreateFollowUseCasePort
	getUC    usecases_port.GetFollowUseCasePort
	deleteUC usecases_port.DeleteFollowUseCasePort
}

func NewFollowHandler(listUC usecases_port.ListFollowsUseCasePort,
	createUC usecases_port.CreateFollowUseCasePort,
	getUC usecases_port.GetFollowUseCasePort,
	deleteUC usecases_port.DeleteFollowUseCasePort) *FollowHandler {
	return &FollowHandler{listUC: listUC, createUC: createUC, getUC: getUC, deleteUC: deleteUC}
}

func (h *FollowHandler) ListFollows(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListFollows"})

	q := newQueryParser(r.URL.Query())
	page := q.Pagination()
	if err := q.Err(); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	result, err := h.listUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()), page)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newPaginatedResponse(result, toFollowResponse))
}

func (h *FollowHandler) CreateFollow(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateFollow"})
	requester := contextkeys.RequesterFromContext(r.Context())

	if err := domain.CanCreateEdge(requester); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	var req FollowRequest
	if err := decodeBody(r, contracts.FollowCreate, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}
	followedID, err := uuid.Parse(req.Followed)
	if err != nil {
		RespondWithError(w, logger, domain.NewFieldError("followed", "Must be a valid uuid."))
		return
	}

	view, err := h.createUC.Execute(r.Context(), requester, followedID)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toFollowResponse(view))
}

func (h *FollowHandler) GetFollow(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFollow"})

	id, err := pathUUID(r, "followID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.getUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()), id)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toFollowResponse(view))
}

func (h *FollowHandler) DeleteFollow(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteFollow"})

	id, err := pathUUID(r, "followID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	if err := h.deleteUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()), id); err != nil {
		RespondWithError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type NoteHandler struct {
	listUC   usecases_port.ListNotesUseCasePort
	createUC usecases_port.CreateNoteUseCasePort
	getUC    usecases_port.GetNoteUseCasePort
	updateUC usecases_port.UpdateNoteUseCasePort
	deleteUC usecases_port.DeleteNoteUseCasePort
}

func NewNoteHandler(listUC usecases_port.ListNotesUseCasePort,
	createUC usecases_port.CreateNoteUseCasePort,
	getUC usecases_port.GetNoteUseCasePort,
	updateUC usecases_port.UpdateNoteUseCasePort,
	deleteUC usecases_port.DeleteNoteUseCasePort) *NoteHandler {
	return &NoteHandler{listUC: listUC, createUC: createUC, getUC: getUC, updateUC: updateUC, deleteUC: deleteUC}
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListNotes"})
	requester := contextkeys.RequesterFromContext(r.Context())

	q := newQueryParser(r.URL.Query())
	listingID := q.UUID("property")
	page := q.Pagination()
	if err := q.Err(); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	result, err := h.listUC.Execute(r.Context(), requester, listingID, page)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, newPaginatedResponse(result, func(v *domain.NoteView) NoteResponse {
		return toNoteResponse(v, requester)
	}))
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateNote"})
	requester := contextkeys.RequesterFromContext(r.Context())

	if err := domain.CanCreateEdge(requester); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	var req NoteCreateRequest
	if err := decodeBody(r, contracts.NoteCreate, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}
	listingID, err := uuid.Parse(req.Property)
	if err != nil {
		RespondWithError(w, logger, domain.NewFieldError("property", "Must be a valid uuid."))
		return
	}

	view, err := h.createUC.Execute(r.Context(), requester, listingID, req.Content)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, toNoteResponse(view, requester))
}

func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetNote"})
	requester := contextkeys.RequesterFromContext(r.Context())

	id, err := pathUUID(r, "noteID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.getUC.Execute(r.Context(), requester, id)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toNoteResponse(view, requester))
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateNote"})
	requester := contextkeys.RequesterFromContext(r.Context())

	id, err := pathUUID(r, "noteID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	var req NoteUpdateRequest
	if err := decodeBody(r, contracts.NoteUpdate, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.updateUC.Execute(r.Context(), requester, id, req.Content)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, toNoteResponse(view, requester))
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteNote"})

	id, err := pathUUID(r, "noteID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	if err := h.deleteUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()), id); err != nil {
		RespondWithError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
