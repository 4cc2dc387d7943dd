package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type PropertyType string

const (
	PropertyTypeApartment    PropertyType = "apartment"
	PropertyTypeDetached     PropertyType = "detached"
	PropertyTypeSemiDetached PropertyType = "semi-detached"
	PropertyTypeTerraced     PropertyType = "terraced"
	PropertyTypeEndTerrace   PropertyType = "end terrace"
	PropertyTypeCottage      PropertyType = "cottage"
	PropertyTypeBungalow     PropertyType = "bungalows"
)

var PropertyTypes = []PropertyType{
	PropertyTypeApartment, PropertyTypeDetached, PropertyTypeSemiDetached,
	PropertyTypeTerraced, PropertyTypeEndTerrace, PropertyTypeCottage, PropertyTypeBungalow,
}

type Tenure string

var Tenures = []Tenure{"", "freehold", "shared freehold", "leasehold", "commonhold", "shared ownership"}

type CouncilTaxBand string

var CouncilTaxBands = []CouncilTaxBand{"", "a", "b", "c", "d", "e", "f", "g", "h"}

const (
	MaxPostcodeLength = 8
	geohashPrecision  = 9
)

// Listing is a property for sale. Location is only ever set through Locate.
type Listing struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	PropertyName   string
	PropertyNumber string
	StreetName     string
	Locality       string
	City           string
	Postcode       string
	Description    string
	Price          int
	PropertyType   PropertyType
	Tenure         Tenure
	CouncilTaxBand CouncilTaxBand
	NumBedrooms    int
	NumBathrooms   int
	HasGarden      bool
	HasParking     bool
	IsSoldSTC      bool
	Location       *Point
	Geohash        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ListingView is a listing joined with its owner and bookmark data.
type ListingView struct {
	Listing
	OwnerUsername            string
	ProfileID                uuid.UUID
	ProfileName              string
	ProfileEmail             string
	ProfileTelephoneLandline string
	ProfileTelephoneMobile   string
	BookmarksCount           int
	// BookmarkID is the requester's own bookmark of this listing, if any.
	BookmarkID *uuid.UUID
	// Distance is set only for searches with an origin.
	Distance *float64
}

// ListingInput carries client-writable fields. Nil means "leave unchanged".
type ListingInput struct {
	PropertyName   *string
	PropertyNumber *string
	StreetName     *string
	Locality       *string
	City           *string
	Postcode       *string
	Description    *string
	Price          *int
	PropertyType   *string
	Tenure         *string
	CouncilTaxBand *string
	NumBedrooms    *int
	NumBathrooms   *int
	HasGarden      *bool
	HasParking     *bool
	IsSoldSTC      *bool
}

// NewListing creates an unlocated listing owned by ownerID.
func NewListing(ownerID uuid.UUID, in ListingInput) (*Listing, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	l := &Listing{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.apply(in)
	return l, nil
}

// Apply merges a partial update and reports whether the postcode changed,
// compared in normalized form.
func (l *Listing) Apply(in ListingInput) (postcodeChanged bool, err error) {
	if err := in.validate(false); err != nil {
		return false, err
	}
	before := l.Postcode
	l.apply(in)
	l.UpdatedAt = time.Now().UTC()
	return l.Postcode != before, nil
}

func (l *Listing) apply(in ListingInput) {
	setString(&l.PropertyName, in.PropertyName)
	setString(&l.PropertyNumber, in.PropertyNumber)
	setString(&l.StreetName, in.StreetName)
	setString(&l.Locality, in.Locality)
	setString(&l.City, in.City)
	setString(&l.Description, in.Description)
	if in.Postcode != nil {
		l.Postcode = NormalizePostcode(*in.Postcode)
	}
	if in.Price != nil {
		l.Price = *in.Price
	}
	if in.PropertyType != nil {
		l.PropertyType = PropertyType(*in.PropertyType)
	}
	if in.Tenure != nil {
		l.Tenure = Tenure(*in.Tenure)
	}
	if in.CouncilTaxBand != nil {
		l.CouncilTaxBand = CouncilTaxBand(strings.ToLower(*in.CouncilTaxBand))
	}
	if in.NumBedrooms != nil {
		l.NumBedrooms = *in.NumBedrooms
	}
	if in.NumBathrooms != nil {
		l.NumBathrooms = *in.NumBathrooms
	}
	if in.HasGarden != nil {
		l.HasGarden = *in.HasGarden
	}
	if in.HasParking != nil {
		l.HasParking = *in.HasParking
	}
	if in.IsSoldSTC != nil {
		l.IsSoldSTC = *in.IsSoldSTC
	}
}

// Locate stores a geocoded position together with its geohash.
func (l *Listing) Locate(p Point) {
	l.Location = &Point{Latitude: p.Latitude, Longitude: p.Longitude}
	l.Geohash = geohash.EncodeWithPrecision(p.Latitude, p.Longitude, geohashPrecision)
}

func (in ListingInput) validate(requireAll bool) error {
	fields := make(map[string]string)

	required := map[string]bool{
		"street_name":   in.StreetName != nil,
		"city":          in.City != nil,
		"postcode":      in.Postcode != nil,
		"description":   in.Description != nil,
		"price":         in.Price != nil,
		"property_type": in.PropertyType != nil,
		"num_bedrooms":  in.NumBedrooms != nil,
		"num_bathrooms": in.NumBathrooms != nil,
	}
	if requireAll {
		for name, present := range required {
			if !present {
				fields[name] = "This field is required."
			}
		}
	}

	if in.Postcode != nil {
		pc := strings.TrimSpace(*in.Postcode)
		if pc == "" {
			fields["postcode"] = "This field may not be blank."
		} else if len(pc) > MaxPostcodeLength {
			fields["postcode"] = "Ensure this field has no more than 8 characters."
		}
	}
	if in.Price != nil && *in.Price < 0 {
		fields["price"] = "Ensure this value is greater than or equal to 0."
	}
	if in.NumBedrooms != nil && *in.NumBedrooms < 0 {
		fields["num_bedrooms"] = "Ensure this value is greater than or equal to 0."
	}
	if in.NumBathrooms != nil && *in.NumBathrooms < 0 {
		fields["num_bathrooms"] = "Ensure this value is greater than or equal to 0."
	}
	if in.PropertyType != nil && !IsValidPropertyType(*in.PropertyType) {
		fields["property_type"] = "\"" + *in.PropertyType + "\" is not a valid choice."
	}
	if in.Tenure != nil && !isValidTenure(*in.Tenure) {
		fields["tenure"] = "\"" + *in.Tenure + "\" is not a valid choice."
	}
	if in.CouncilTaxBand != nil && !isValidCouncilTaxBand(strings.ToLower(*in.CouncilTaxBand)) {
		fields["council_tax_band"] = "\"" + *in.CouncilTaxBand + "\" is not a valid choice."
	}

	if len(fields) > 0 {
		return NewValidationError("Invalid listing data.", fields)
	}
	return nil
}

// NormalizePostcode is the stored form of a postcode: trimmed, lower case.
func NormalizePostcode(postcode string) string {
	return cases.Lower(language.BritishEnglish).String(strings.TrimSpace(postcode))
}

func IsValidPropertyType(v string) bool {
	for _, t := range PropertyTypes {
		if string(t) == v {
			return true
		}
	}
	return false
}

func isValidTenure(v string) bool {
	for _, t := range Tenures {
		if string(t) == v {
			return true
		}
	}
	return false
}

func isValidCouncilTaxBand(v string) bool {
	for _, b := range CouncilTaxBands {
		if string(b) == v {
			return true
		}
	}
	return false
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
