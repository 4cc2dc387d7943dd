package domain

import "github.com/google/uuid"

// Requester is the identity a request acts as. The zero value is anonymous.
type Requester struct {
	AccountID uuid.UUID
	Username  string
	IsSeller  bool
}

func Anonymous() Requester { return Requester{} }

func RequesterFromClaims(c *Claims) Requester {
	if c == nil {
		return Anonymous()
	}
	return Requester{AccountID: c.AccountID, Username: c.Username, IsSeller: c.IsSeller}
}

func (r Requester) Authenticated() bool { return r.AccountID != uuid.Nil }

// Owns is the visibility predicate for owner-only records.
func (r Requester) Owns(ownerID uuid.UUID) bool {
	return r.Authenticated() && r.AccountID == ownerID
}

// CanCreateListing allows sellers only.
func CanCreateListing(r Requester) error {
	if !r.Authenticated() {
		return ErrAuthRequired
	}
	if !r.IsSeller {
		return ErrSellerOnly
	}
	return nil
}

// CanCreateEdge gates bookmarks, follows and notes.
func CanCreateEdge(r Requester) error {
	if !r.Authenticated() {
		return ErrAuthRequired
	}
	return nil
}

// CanModify gates update and delete of a record the requester can already see.
func CanModify(r Requester, ownerID uuid.UUID) error {
	if !r.Authenticated() {
		return ErrAuthRequired
	}
	if !r.Owns(ownerID) {
		return ErrPermissionDenied
	}
	return nil
}

// CanReadEdge: bookmarks, follows and notes are visible to their owner only,
// never to the target.
func CanReadEdge(r Requester, ownerID uuid.UUID) bool {
	return r.Owns(ownerID)
}

// CanReadProfile: seller profiles are public, others are owner only.
func CanReadProfile(r Requester, p *ProfileView) bool {
	return p.IsSeller || r.Owns(p.OwnerID)
}

// CanSeeContact: contact details are shown to signed-in users only.
func CanSeeContact(r Requester) bool {
	return r.Authenticated()
}

// CheckFollow applies the follow rules that do not need the store.
// Duplicates are detected by the store's unique constraint.
func CheckFollow(r Requester, target *Account) error {
	if err := CanCreateEdge(r); err != nil {
		return err
	}
	if target.ID == r.AccountID {
		return ErrCannotFollowSelf
	}
	if !target.IsSeller {
		return ErrTargetNotSeller
	}
	return nil
}
