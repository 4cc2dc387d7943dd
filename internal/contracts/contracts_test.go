package contracts

import (
	"errors"
	"testing"

	"github.com/ianmeigh/property-direct-backend/internal/core/domain"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *domain.Error, got %T (%v)", err, err)
	}
	if domainErr.Kind != domain.KindValidation {
		t.Fatalf("expected validation kind, got %s", domainErr.Kind)
	}
	return domainErr.Fields
}

func TestAllContractsCompiled(t *testing.T) {
	for _, name := range []string{
		Register, Login, ListingCreate, ListingPatch, ProfileUpdate,
		BookmarkCreate, FollowCreate, NoteCreate, NoteUpdate, ListingEvent,
	} {
		if _, ok := compiledSchemas[name]; !ok {
			t.Errorf("contract %q is not compiled", name)
		}
	}
}

func TestValidateAcceptsValidBodies(t *testing.T) {
	cases := map[string]string{
		Register:       `{"username":"seller","password1":"longpassword","password2":"longpassword","is_seller":true}`,
		ListingCreate:  `{"street_name":"Portland Place","city":"London","postcode":"W1A 1AA","description":"Flat","price":100000,"property_type":"apartment","num_bedrooms":1,"num_bathrooms":1}`,
		ListingPatch:   `{"price":95000}`,
		BookmarkCreate: `{"property":"6f1c1f7e-2c4b-4e0e-9d5e-0b7f5c8e1a2b"}`,
		ListingEvent:   `{"type":"created","listing_id":"6f1c1f7e-2c4b-4e0e-9d5e-0b7f5c8e1a2b","owner_id":"0b7f5c8e-1a2b-4e0e-9d5e-6f1c1f7e2c4b","postcode":"w1a 1aa","price":1,"occurred_at":"2024-01-02T03:04:05Z"}`,
	}
	for name, body := range cases {
		if err := Validate(name, []byte(body)); err != nil {
			t.Errorf("Validate(%s) = %v", name, err)
		}
	}
}

func TestValidateReportsFieldErrors(t *testing.T) {
	fields := fieldsOf(t, Validate(ListingCreate, []byte(`{"street_name":"x","price":"cheap","extra":1}`)))

	for _, required := range []string{"city", "postcode", "description", "property_type", "num_bedrooms", "num_bathrooms"} {
		if fields[required] != "This field is required." {
			t.Errorf("field %s: got %q", required, fields[required])
		}
	}
	if fields["price"] == "" {
		t.Error("expected a type error on price")
	}
	if fields["extra"] != "Unexpected field." {
		t.Errorf("extra: got %q", fields["extra"])
	}
}

func TestValidateFormatAndMalformed(t *testing.T) {
	fields := fieldsOf(t, Validate(FollowCreate, []byte(`{"followed":"not-a-uuid"}`)))
	if fields["followed"] == "" {
		t.Errorf("expected format error on followed, got %v", fields)
	}

	fields = fieldsOf(t, Validate(Login, []byte(`{"username":`)))
	if fields[nonFieldErrors] == "" {
		t.Errorf("expected non-field error for malformed JSON, got %v", fields)
	}
}

func TestValidateUnknownContract(t *testing.T) {
	err := Validate("nope", []byte(`{}`))
	if err == nil || domain.KindOf(err) != "" {
		t.Fatalf("expected a plain error, got %v", err)
	}
}
