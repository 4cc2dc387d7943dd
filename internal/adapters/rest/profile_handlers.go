package rest

import (
	"net/http"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/contracts"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

type ProfileHandler struct {
	listUC   usecases_port.ListProfilesUseCasePort
	getUC    usecases_port.GetProfileUseCasePort
	updateUC usecases_port.UpdateProfileUseCasePort
	deleteUC usecases_port.DeleteProfileUseCasePort
}

func NewProfileHandler(listUC usecases_port.ListProfilesUseCasePort,
	getUC usecases_port.GetProfileUseCasePort,
	updateUC usecases_port.UpdateProfileUseCasePort,
	deleteUC usecases_port.DeleteProfileUseCasePort) *ProfileHandler {
	return &ProfileHandler{
		listUC:   listUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProfiles"})
	requester := contextkeys.RequesterFromContext(r.Context())

	q := newQueryParser(r.URL.Query())
	page := q.Pagination()
	if err := q.Err(); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	result, err := h.listUC.Execute(r.Context(), requester, q.String("ordering"), page)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, newPaginatedResponse(result, func(v *domain.ProfileView) ProfileResponse {
		return toProfileResponse(v, requester)
	}))
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetProfile"})
	requester := contextkeys.RequesterFromContext(r.Context())

	id, err := pathUUID(r, "profileID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.getUC.Execute(r.Context(), requester, id)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toProfileResponse(view, requester))
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateProfile"})
	requester := contextkeys.RequesterFromContext(r.Context())

	id, err := pathUUID(r, "profileID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	var req ProfileRequest
	if err := decodeBody(r, contracts.ProfileUpdate, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.updateUC.Execute(r.Context(), requester, id, req.toInput())
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toProfileResponse(view, requester))
}

// DeleteProfile removes the owning account together with its profile.
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteProfile"})

	id, err := pathUUID(r, "profileID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	if err := h.deleteUC.Execute(r.Context(), contextkeys.RequesterFromContext(r.Context()), id); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	logger.Info("Profile deleted", port.Fields{"profile_id": id})
	w.WriteHeader(http.StatusNoContent)
}
