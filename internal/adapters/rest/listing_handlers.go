package rest

import (
	"net/http"

	"github.com/ianmeigh/property-direct-backend/internal/contextkeys"
	"github.com/ianmeigh/property-direct-backend/internal/contracts"
	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

type ListingHandler struct {
	searchUC usecases_port.SearchListingsUseCasePort
	getUC    usecases_port.GetListingUseCasePort
	createUC usecases_port.CreateListingUseCasePort
	updateUC usecases_port.UpdateListingUseCasePort
	deleteUC usecases_port.DeleteListingUseCasePort
}

func NewListingHandler(searchUC usecases_port.SearchListingsUseCasePort,
	getUC usecases_port.GetListingUseCasePort,
	createUC usecases_port.CreateListingUseCasePort,
	updateUC usecases_port.UpdateListingUseCasePort,
	deleteUC usecases_port.DeleteListingUseCasePort) *ListingHandler {
	return &ListingHandler{
		searchUC: searchUC,
		getUC:    getUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// SearchListings handles GET /api/v1/property. Radius and postcode are
// passed through raw; the use case owns their validation.
func (h *ListingHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SearchListings"})
	requester := contextkeys.RequesterFromContext(r.Context())

	q := newQueryParser(r.URL.Query())
	req := usecases_port.SearchListingsRequest{
		Postcode: q.String("postcode"),
		Radius:   q.String("radius"),
		Ordering: q.String("ordering"),
		Filters: domain.ListingFilters{
			PriceMin:            q.Int("price_min"),
			PriceMax:            q.Int("price_max"),
			BedroomsMin:         q.Int("bedrooms_min"),
			BedroomsMax:         q.Int("bedrooms_max"),
			BathroomsMin:        q.Int("bathrooms_min"),
			BathroomsMax:        q.Int("bathrooms_max"),
			HasGarden:           q.Bool("has_garden"),
			HasParking:          q.Bool("has_parking"),
			IsSoldSTC:           q.Bool("is_sold_stc"),
			PropertyType:        q.String("property_type"),
			Search:              q.String("search"),
			ListedByProfile:     q.UUID("properties_listed_by_profile"),
			FeedForProfile:      q.UUID("property_feed_for_profile"),
			BookmarkedByProfile: q.UUID("bookmarked_properties_for_profile"),
		},
		Pagination: q.Pagination(),
	}
	if err := q.Err(); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	logger.Info("Processing listing search", port.Fields{
		"has_postcode": req.Postcode != "",
		"page":         req.Pagination.Page,
		"per_page":     req.Pagination.PerPage,
	})

	result, err := h.searchUC.Execute(r.Context(), requester, req)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	response := newPaginatedResponse(result.Page, func(v *domain.ListingView) interface{} {
		return toListingPayload(v, requester, result.Shape)
	})
	RespondWithJSON(w, http.StatusOK, response)
}

func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetListing"})
	requester := contextkeys.RequesterFromContext(r.Context())

	id, err := pathUUID(r, "listingID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.getUC.Execute(r.Context(), requester, id)
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	shape := domain.SelectListingShape(requester.Authenticated(), false)
	RespondWithJSON(w, http.StatusOK, toListingResponse(view, requester, shape))
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateListing"})
	requester := contextkeys.RequesterFromContext(r.Context())

	// Permission comes before body validation.
	if err := domain.CanCreateListing(requester); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	var req ListingRequest
	if err := decodeBody(r, contracts.ListingCreate, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.createUC.Execute(r.Context(), requester, req.toInput())
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	logger.Info("Listing created", port.Fields{"listing_id": view.ID})
	shape := domain.SelectListingShape(requester.Authenticated(), false)
	RespondWithJSON(w, http.StatusCreated, toListingResponse(view, requester, shape))
}

// ReplaceListing handles PUT, which requires the full writable field set.
func (h *ListingHandler) ReplaceListing(w http.ResponseWriter, r *http.Request) {
	h.updateListing(w, r, "ReplaceListing", contracts.ListingCreate)
}

func (h *ListingHandler) PatchListing(w http.ResponseWriter, r *http.Request) {
	h.updateListing(w, r, "PatchListing", contracts.ListingPatch)
}

func (h *ListingHandler) updateListing(w http.ResponseWriter, r *http.Request, handlerName, contract string) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handlerName})
	requester := contextkeys.RequesterFromContext(r.Context())

	id, err := pathUUID(r, "listingID")
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	var req ListingRequest
	if err := decodeBody(r, contract, &req); err != nil {
		RespondWithError(w, logger, err)
		return
	}

	view, err := h.updateUC.Execute(r.Context(), requester, id, req.toInput())
	if err != nil {
		RespondWithError(w, logger, err)
		return
	}

	shape := domain.SelectListingShape(requester.Authenticated(), false)
	RespondWithJSON(w, http.StatusOK, toListingResponse(view, requester, shape))
}

func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteListing"})

	id, err := pathUUID(r, "listingID")
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
