package rest

import (
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"
)

// PaginatedResponse wraps one page of any resource list.
type PaginatedResponse[T any] struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Results []T   `json:"results"`
}

func newPaginatedResponse[V any, T any](page *domain.Page[V], mapItem func(*V) T) PaginatedResponse[T] {
	results := make([]T, len(page.Items))
	for i := range page.Items {
		results[i] = mapItem(&page.Items[i])
	}
	return PaginatedResponse[T]{
		Total:   page.TotalCount,
		Page:    page.CurrentPage,
		PerPage: page.ItemsPerPage,
		Results: results,
	}
}

// --- auth ---

type RegisterRequest struct {
	Username  string `json:"username"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
	IsSeller  bool   `json:"is_seller"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	User        AccountResponse `json:"user"`
}

type AccountResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	IsSeller  bool   `json:"is_seller"`
	ProfileID string `json:"profile_id,omitempty"`
}

func toAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{ID: a.ID.String(), Username: a.Username, IsSeller: a.IsSeller}
}

func toCurrentAccountResponse(c *usecases_port.CurrentAccount) AccountResponse {
	resp := toAccountResponse(c.Account)
	resp.ProfileID = c.ProfileID.String()
	return resp
}

// --- listings ---

// ListingRequest is the writable part of a listing. Absent fields stay nil.
type ListingRequest struct {
	PropertyName   *string `json:"property_name"`
	PropertyNumber *string `json:"property_number"`
	StreetName     *string `json:"street_name"`
	Locality       *string `json:"locality"`
	City           *string `json:"city"`
	Postcode       *string `json:"postcode"`
	Description    *string `json:"description"`
	Price          *int    `json:"price"`
	PropertyType   *string `json:"property_type"`
	Tenure         *string `json:"tenure"`
	CouncilTaxBand *string `json:"council_tax_band"`
	NumBedrooms    *int    `json:"num_bedrooms"`
	NumBathrooms   *int    `json:"num_bathrooms"`
	HasGarden      *bool   `json:"has_garden"`
	HasParking     *bool   `json:"has_parking"`
	IsSoldSTC      *bool   `json:"is_sold_stc"`
}

func (req ListingRequest) toInput() domain.ListingInput {
	return domain.ListingInput{
		PropertyName:   req.PropertyName,
		PropertyNumber: req.PropertyNumber,
		StreetName:     req.StreetName,
		Locality:       req.Locality,
		City:           req.City,
		Postcode:       req.Postcode,
		Description:    req.Description,
		Price:          req.Price,
		PropertyType:   req.PropertyType,
		Tenure:         req.Tenure,
		CouncilTaxBand: req.CouncilTaxBand,
		NumBedrooms:    req.NumBedrooms,
		NumBathrooms:   req.NumBathrooms,
		HasGarden:      req.HasGarden,
		HasParking:     req.HasParking,
		IsSoldSTC:      req.IsSoldSTC,
	}
}

type ListingContactResponse struct {
	ProfileEmail             string `json:"profile_email"`
	ProfileTelephoneLandline string `json:"profile_telephone_landline"`
	ProfileTelephoneMobile   string `json:"profile_telephone_mobile"`
}

type ListingResponse struct {
	ID             string   `json:"id"`
	Owner          string   `json:"owner"`
	IsOwner        bool     `json:"is_owner"`
	ProfileID      string   `json:"profile_id"`
	ProfileName    string   `json:"profile_name"`
	PropertyName   string   `json:"property_name"`
	PropertyNumber string   `json:"property_number"`
	StreetName     string   `json:"street_name"`
	Locality       string   `json:"locality"`
	City           string   `json:"city"`
	Postcode       string   `json:"postcode"`
	Description    string   `json:"description"`
	Price          int      `json:"price"`
	PropertyType   string   `json:"property_type"`
	Tenure         string   `json:"tenure"`
	CouncilTaxBand string   `json:"council_tax_band"`
	NumBedrooms    int      `json:"num_bedrooms"`
	NumBathrooms   int      `json:"num_bathrooms"`
	HasGarden      bool     `json:"has_garden"`
	HasParking     bool     `json:"has_parking"`
	IsSoldSTC      bool     `json:"is_sold_stc"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Geohash        string   `json:"geohash"`
	BookmarkID     *string  `json:"bookmark_id"`
	BookmarksCount int      `json:"bookmarks_count"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`

	*ListingContactResponse
}

// ListingSearchResponse is used only for searches that had an origin, so the
// distance key never appears otherwise.
type ListingSearchResponse struct {
	ListingResponse
	Distance *float64 `json:"distance"`
}

func toListingResponse(v *domain.ListingView, requester domain.Requester, shape domain.ListingShape) ListingResponse {
	resp := ListingResponse{
		ID:             v.ID.String(),
		Owner:          v.OwnerUsername,
		IsOwner:        requester.Owns(v.OwnerID),
		ProfileID:      v.ProfileID.String(),
		ProfileName:    v.ProfileName,
		PropertyName:   v.PropertyName,
		PropertyNumber: v.PropertyNumber,
		StreetName:     v.StreetName,
		Locality:       v.Locality,
		City:           v.City,
		Postcode:       v.Postcode,
		Description:    v.Description,
		Price:          v.Price,
		PropertyType:   string(v.PropertyType),
		Tenure:         string(v.Tenure),
		CouncilTaxBand: string(v.CouncilTaxBand),
		NumBedrooms:    v.NumBedrooms,
		NumBathrooms:   v.NumBathrooms,
		HasGarden:      v.HasGarden,
		HasParking:     v.HasParking,
		IsSoldSTC:      v.IsSoldSTC,
		Geohash:        v.Geohash,
		BookmarksCount: v.BookmarksCount,
		CreatedAt:      formatTime(v.CreatedAt),
		UpdatedAt:      formatTime(v.UpdatedAt),
	}
	if v.Location != nil {
		lat, lon := v.Location.Latitude, v.Location.Longitude
		resp.Latitude, resp.Longitude = &lat, &lon
	}
	if v.BookmarkID != nil {
		id := v.BookmarkID.String()
		resp.BookmarkID = &id
	}
	if shape.IncludesContact() {
		resp.ListingContactResponse = &ListingContactResponse{
			ProfileEmail:             v.ProfileEmail,
			ProfileTelephoneLandline: v.ProfileTelephoneLandline,
			ProfileTelephoneMobile:   v.ProfileTelephoneMobile,
		}
	}
	return resp
}

// toListingPayload picks the response variant for shape.
func toListingPayload(v *domain.ListingView, requester domain.Requester, shape domain.ListingShape) interface{} {
	resp := toListingResponse(v, requester, shape)
	if !shape.IncludesDistance() {
		return resp
	}
	return ListingSearchResponse{ListingResponse: resp, Distance: v.Distance}
}

// --- profiles ---

type ProfileRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Email             *string `json:"email"`
	TelephoneLandline *string `json:"telephone_landline"`
	TelephoneMobile   *string `json:"telephone_mobile"`
}

func (req ProfileRequest) toInput() domain.ProfileInput {
	return domain.ProfileInput{
		Name:              req.Name,
		Description:       req.Description,
		Email:             req.Email,
		TelephoneLandline: req.TelephoneLandline,
		TelephoneMobile:   req.TelephoneMobile,
	}
}

type ProfileContactResponse struct {
	Email             string `json:"email"`
	TelephoneLandline string `json:"telephone_landline"`
	TelephoneMobile   string `json:"telephone_mobile"`
}

type ProfileResponse struct {
	ID             string  `json:"id"`
	Owner          string  `json:"owner"`
	IsOwner        bool    `json:"is_owner"`
	IsSeller       bool    `json:"is_seller"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	PropertyCount  int     `json:"property_count"`
	FollowersCount int     `json:"followers_count"`
	FollowingCount int     `json:"following_count"`
	FollowingID    *string `json:"following_id"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`

	*ProfileContactResponse
}

func toProfileResponse(v *domain.ProfileView, requester domain.Requester) ProfileResponse {
	resp := ProfileResponse{
		ID:             v.ID.String(),
		Owner:          v.OwnerUsername,
		IsOwner:        requester.Owns(v.OwnerID),
		IsSeller:       v.IsSeller,
		Name:           v.Name,
		Description:    v.Description,
		PropertyCount:  v.PropertyCount,
		FollowersCount: v.FollowersCount,
		FollowingCount: v.FollowingCount,
		CreatedAt:      formatTime(v.CreatedAt),
		UpdatedAt:      formatTime(v.UpdatedAt),
	}
	if v.FollowingID != nil {
		id := v.FollowingID.String()
		resp.FollowingID = &id
	}
	if domain.CanSeeContact(requester) {
		resp.ProfileContactResponse = &ProfileContactResponse{
			Email:             v.Email,
			TelephoneLandline: v.TelephoneLandline,
			TelephoneMobile:   v.TelephoneMobile,
		}
	}
	return resp
}

// --- bookmarks, follows, notes ---

type BookmarkRequest struct {
	Property string `json:"property"`
}

type BookmarkResponse struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Property  string `json:"property"`
	CreatedAt string `json:"created_at"`
}

func toBookmarkResponse(v *domain.BookmarkView) BookmarkResponse {
	return BookmarkResponse{
		ID:        v.ID.String(),
		Owner:     v.OwnerUsername,
		Property:  v.ListingID.String(),
		CreatedAt: formatTime(v.CreatedAt),
	}
}

type FollowRequest struct {
	Followed string `json:"followed"`
}

type FollowResponse struct {
	ID           string `json:"id"`
	Owner        string `json:"owner"`
	Followed     string `json:"followed"`
	FollowedName string `json:"followed_name"`
	CreatedAt    string `json:"created_at"`
}

func toFollowResponse(v *domain.FollowView) FollowResponse {
	return FollowResponse{
		ID:           v.ID.String(),
		Owner:        v.OwnerUsername,
		Followed:     v.FollowedID.String(),
		FollowedName: v.FollowedName,
		CreatedAt:    formatTime(v.CreatedAt),
	}
}

type NoteCreateRequest struct {
	Property string `json:"property"`
	Content  string `json:"content"`
}

type NoteUpdateRequest struct {
	Content string `json:"content"`
}

type NoteResponse struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	IsOwner   bool   `json:"is_owner"`
	ProfileID string `json:"profile_id"`
	Property  string `json:"property"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toNoteResponse(v *domain.NoteView, requester domain.Requester) NoteResponse {
	return NoteResponse{
		ID:        v.ID.String(),
		Owner:     v.OwnerUsername,
		IsOwner:   requester.Owns(v.OwnerID),
		ProfileID: v.ProfileID.String(),
		Property:  v.ListingID.String(),
		Content:   v.Content,
		CreatedAt: formatTime(v.CreatedAt),
		UpdatedAt: formatTime(v.UpdatedAt),
	}
}

// --- dictionaries ---

type DictionaryItemResponse struct {
	SystemName  string `json:"system_name"`
	DisplayName string `json:"display_name"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
