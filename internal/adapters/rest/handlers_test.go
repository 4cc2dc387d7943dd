package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/usecase"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string, port.Fields)                 {}
func (nopLogger) Warn(string, port.Fields)                 {}
func (nopLogger) Error(string, error, port.Fields)         {}
func (nopLogger) Debug(string, port.Fields)                {}
func (l nopLogger) WithFields(port.Fields) port.LoggerPort { return l }

type fakeListingRepo struct {
	views []domain.ListingView
}

func (f *fakeListingRepo) Create(context.Context, *domain.Listing) error { return nil }
func (f *fakeListingRepo) Update(context.Context, *domain.Listing) error { return nil }
func (f *fakeListingRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (f *fakeListingRepo) FindByID(context.Context, uuid.UUID) (*domain.Listing, error) {
	return nil, nil
}
func (f *fakeListingRepo) FindViewByID(context.Context, uuid.UUID, uuid.UUID) (*domain.ListingView, error) {
	return nil, nil
}
func (f *fakeListingRepo) Search(_ context.Context, _ domain.ListingQuery, page domain.Pagination) (*domain.Page[domain.ListingView], error) {
	items := make([]domain.ListingView, len(f.views))
	copy(items, f.views)
	return &domain.Page[domain.ListingView]{
		Items:        items,
		TotalCount:   int64(len(items)),
		CurrentPage:  page.Page,
		ItemsPerPage: page.PerPage,
	}, nil
}

type fakeGeocoder struct {
	point domain.Point
	err   error
}

func (f fakeGeocoder) Resolve(context.Context, string) (domain.Point, error) {
	return f.point, f.err
}

type fakeTokenValidator struct {
	claims *domain.Claims
}

func (f fakeTokenValidator) Execute(_ context.Context, token string) (*domain.Claims, error) {
	if token != "good" || f.claims == nil {
		return nil, domain.ErrTokenInvalid
	}
	return f.claims, nil
}

type fakeDeleteProfile struct {
	calls int
	err   error
}

func (f *fakeDeleteProfile) Execute(context.Context, domain.Requester, uuid.UUID) error {
	f.calls++
	return f.err
}

var w1a = domain.Point{Latitude: 51.518561, Longitude: -0.143799}

func newTestRouter(t *testing.T, repo *fakeListingRepo, geocoder fakeGeocoder, validator fakeTokenValidator, deleteProfile *fakeDeleteProfile) http.Handler {
	t.Helper()
	handlers := Handlers{
		Auth:         NewAuthHandler(nil, nil, nil),
		Listings:     NewListingHandler(usecase.NewSearchListingsUseCase(repo, geocoder), nil, nil, nil, nil),
		Profiles:     NewProfileHandler(nil, nil, nil, deleteProfile),
		Bookmarks:    NewBookmarkHandler(nil, nil, nil, nil),
		Follows:      NewFollowHandler(nil, nil, nil, nil),
		Notes:        NewNoteHandler(nil, nil, nil, nil, nil),
		Dictionaries: NewDictionaryHandler(usecase.NewGetDictionariesUseCase()),
	}
	return NewRouter(handlers, validator, nopLogger{}, "")
}

func sampleView(ownerID uuid.UUID) domain.ListingView {
	loc := w1a
	return domain.ListingView{
		Listing: domain.Listing{
			ID:           uuid.New(),
			OwnerID:      ownerID,
			StreetName:   "Portland Place",
			City:         "London",
			Postcode:     "w1a 1aa",
			Price:        1000000,
			PropertyType: domain.PropertyTypeApartment,
			Location:     &loc,
			CreatedAt:    time.Now().UTC(),
			UpdatedAt:    time.Now().UTC(),
		},
		OwnerUsername:            "seller",
		ProfileEmail:             "seller@example.com",
		ProfileTelephoneMobile:   "07000000000",
		ProfileTelephoneLandline: "02000000000",
	}
}

func doRequest(t *testing.T, h http.Handler, method, target, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not a JSON object: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, body
}

func firstResult(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	results, ok := body["results"].([]interface{})
	if !ok || len(results) == 0 {
		t.Fatalf("expected at least one result, got %v", body["results"])
	}
	return results[0].(map[string]interface{})
}

func TestSearchListings_NoDistanceWithoutPostcode(t *testing.T) {
	repo := &fakeListingRepo{views: []domain.ListingView{sampleView(uuid.New())}}
	h := newTestRouter(t, repo, fakeGeocoder{point: w1a}, fakeTokenValidator{}, &fakeDeleteProfile{})

	rec, body := doRequest(t, h, http.MethodGet, "/api/v1/property", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	result := firstResult(t, body)
	if _, ok := result["distance"]; ok {
		t.Errorf("distance must be absent without a postcode: %v", result)
	}
	if _, ok := result["profile_email"]; ok {
		t.Errorf("contact fields must be hidden from anonymous requesters")
	}
}

func TestSearchListings_DistanceWithPostcode(t *testing.T) {
	repo := &fakeListingRepo{views: []domain.ListingView{sampleView(uuid.New())}}
	h := newTestRouter(t, repo, fakeGeocoder{point: w1a}, fakeTokenValidator{}, &fakeDeleteProfile{})

	rec, body := doRequest(t, h, http.MethodGet, "/api/v1/property?postcode=W1A+1AA&radius=0.5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	result := firstResult(t, body)
	distance, ok := result["distance"].(float64)
	if !ok {
		t.Fatalf("distance missing or not a number: %v", result["distance"])
	}
	if distance != 0 {
		t.Errorf("distance = %v, want 0 for a listing at the origin", distance)
	}
}

func TestSearchListings_AuthenticatedSeesContact(t *testing.T) {
	viewer := &domain.Claims{AccountID: uuid.New(), Username: "buyer"}
	repo := &fakeListingRepo{views: []domain.ListingView{sampleView(uuid.New())}}
	h := newTestRouter(t, repo, fakeGeocoder{point: w1a}, fakeTokenValidator{claims: viewer}, &fakeDeleteProfile{})

	_, body := doRequest(t, h, http.MethodGet, "/api/v1/property", "good")
	result := firstResult(t, body)
	if result["profile_email"] != "seller@example.com" {
		t.Errorf("profile_email = %v, want seller@example.com", result["profile_email"])
	}
	if result["is_owner"] != false {
		t.Errorf("is_owner = %v, want false", result["is_owner"])
	}
}

func TestSearchListings_InvalidRadius(t *testing.T) {
	h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{point: w1a}, fakeTokenValidator{}, &fakeDeleteProfile{})

	rec, body := doRequest(t, h, http.MethodGet, "/api/v1/property?postcode=W1A+1AA&radius=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["status_code"] != float64(http.StatusBadRequest) {
		t.Errorf("status_code = %v, want 400", body["status_code"])
	}
	if body["detail"] != domain.ErrRadiusInvalid.Message {
		t.Errorf("detail = %v", body["detail"])
	}
}

func TestSearchListings_GeocoderFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"invalid postcode", domain.ErrPostcodeInvalid, http.StatusBadRequest, "postcode_invalid"},
		{"service down", domain.ErrServiceUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{err: tt.err}, fakeTokenValidator{}, &fakeDeleteProfile{})
			rec, body := doRequest(t, h, http.MethodGet, "/api/v1/property?postcode=XX1+1XX", "")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body["kind"] != tt.wantKind {
				t.Errorf("kind = %v, want %s", body["kind"], tt.wantKind)
			}
		})
	}
}

func TestSearchListings_BadFilterParams(t *testing.T) {
	h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{}, fakeTokenValidator{}, &fakeDeleteProfile{})

	rec, body := doRequest(t, h, http.MethodGet, "/api/v1/property?price_min=cheap&has_garden=maybe", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	fields, _ := body["fields"].(map[string]interface{})
	for _, name := range []string{"price_min", "has_garden"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("expected a field error for %s, got %v", name, fields)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{}, fakeTokenValidator{}, &fakeDeleteProfile{})

	for _, header := range []string{"Bearer bad", "Token good", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/property", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Authorization %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestDeleteProfile_NoContent(t *testing.T) {
	owner := &domain.Claims{AccountID: uuid.New(), Username: "seller", IsSeller: true}
	deleter := &fakeDeleteProfile{}
	h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{}, fakeTokenValidator{claims: owner}, deleter)

	rec, _ := doRequest(t, h, http.MethodDelete, "/api/v1/profiles/"+uuid.New().String(), "good")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if deleter.calls != 1 {
		t.Errorf("delete use case called %d times, want 1", deleter.calls)
	}
}

func TestDeleteProfile_ForbiddenMapsTo403(t *testing.T) {
	deleter := &fakeDeleteProfile{err: domain.ErrPermissionDenied}
	h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{}, fakeTokenValidator{}, deleter)

	rec, body := doRequest(t, h, http.MethodDelete, "/api/v1/profiles/"+uuid.New().String(), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if body["kind"] != "permission_denied" {
		t.Errorf("kind = %v", body["kind"])
	}
}

func TestUnknownIDIsNotFound(t *testing.T) {
	h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{}, fakeTokenValidator{}, &fakeDeleteProfile{})

	rec, _ := doRequest(t, h, http.MethodDelete, "/api/v1/profiles/not-a-uuid", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRootAndDictionaries(t *testing.T) {
	h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{}, fakeTokenValidator{}, &fakeDeleteProfile{})

	rec, body := doRequest(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(body["message"].(string), "Property Direct") {
		t.Errorf("unexpected root response %d %v", rec.Code, body)
	}

	rec, body = doRequest(t, h, http.MethodGet, "/api/v1/dictionaries?names=property_types", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if _, ok := body["property_types"]; !ok {
		t.Errorf("property_types missing from %v", body)
	}
	if _, ok := body["tenures"]; ok {
		t.Errorf("tenures should not be returned when not requested")
	}
}

func TestRespondWithError_UnknownErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, nopLogger{}, context.DeadlineExceeded)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Detail != "Internal server error" {
		t.Errorf("detail = %q", body.Detail)
	}
}

func TestUnsupportedMethodIsJSON405(t *testing.T) {
	h := newTestRouter(t, &fakeListingRepo{}, fakeGeocoder{}, fakeTokenValidator{}, &fakeDeleteProfile{})

	for _, tt := range []struct{ method, target string }{
		{http.MethodPatch, "/api/v1/profiles/" + uuid.NewString()},
		{http.MethodPut, "/api/v1/bookmarks/" + uuid.NewString()},
	} {
		rec, body := doRequest(t, h, tt.method, tt.target, "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, want 405", tt.method, tt.target, rec.Code)
			continue
		}
		if body["status_code"] != float64(http.StatusMethodNotAllowed) || body["kind"] != "method_not_allowed" {
			t.Errorf("%s %s: body = %v", tt.method, tt.target, body)
		}
	}
}

func TestRecovererMiddleware_PanicIsJSON500(t *testing.T) {
	h := RecovererMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec, body := doRequest(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body["status_code"] != float64(http.StatusInternalServerError) || body["detail"] != "Internal server error" {
		t.Errorf("body = %v", body)
	}
}
