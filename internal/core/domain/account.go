package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	MaxUsernameLength = 150
)

// Account is a login identity. IsSeller is fixed at registration.
type Account struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsSeller     bool
	CreatedAt    time.Time
}

// Claims are the identity facts carried in an access token.
type Claims struct {
	AccountID uuid.UUID
	Username  string
	IsSeller  bool
}

// NewAccount validates the registration data and hashes the password.
func NewAccount(username, password, passwordConfirm string, isSeller bool) (*Account, error) {
	username = strings.TrimSpace(username)
	fields := make(map[string]string)
	switch {
	case username == "":
		fields["username"] = "This field may not be blank."
	case len(username) > MaxUsernameLength:
		fields["username"] = "Ensure this field has no more than 150 characters."
	}
	if len(password) < MinPasswordLength {
		fields["password1"] = "This password is too short. It must contain at least 8 characters."
	}
	if password != passwordConfirm {
		fields["password2"] = "The two password fields didn't match."
	}
	if len(fields) > 0 {
		return nil, NewValidationError("Invalid registration data.", fields)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		IsSeller:     isSeller,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

func (a *Account) Claims() *Claims {
	return &Claims{AccountID: a.ID, Username: a.Username, IsSeller: a.IsSeller}
}

// Profile is the public face of an account. It lives and dies with it.
type Profile struct {
	ID                uuid.UUID
	OwnerID           uuid.UUID
	Name              string
	Description       string
	Email             string
	TelephoneLandline string
	TelephoneMobile   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewProfile is the empty profile created alongside a new account.
func NewProfile(owner *Account) *Profile {
	return &Profile{
		ID:        uuid.New(),
		OwnerID:   owner.ID,
		CreatedAt: owner.CreatedAt,
		UpdatedAt: owner.CreatedAt,
	}
}

// ProfileView is a profile with its owner's flags and relationship counters.
type ProfileView struct {
	Profile
	OwnerUsername  string
	IsSeller       bool
	PropertyCount  int
	FollowersCount int
	FollowingCount int
	// FollowingID is the requester's follow of this profile's owner, if any.
	FollowingID *uuid.UUID
}

type ProfileInput struct {
	Name              *string
	Description       *string
	Email             *string
	TelephoneLandline *string
	TelephoneMobile   *string
}

func (p *Profile) Apply(in ProfileInput) error {
	fields := make(map[string]string)
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" && (!strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@")) {
			fields["email"] = "Enter a valid email address."
		}
	}
	for name, v := range map[string]*string{"telephone_landline": in.TelephoneLandline, "telephone_mobile": in.TelephoneMobile} {
		if v != nil && len(strings.TrimSpace(*v)) > 20 {
			fields[name] = "Ensure this field has no more than 20 characters."
		}
	}
	if len(fields) > 0 {
		return NewValidationError("Invalid profile data.", fields)
	}

	setString(&p.Name, in.Name)
	setString(&p.Description, in.Description)
	setString(&p.Email, in.Email)
	setString(&p.TelephoneLandline, in.TelephoneLandline)
	setString(&p.TelephoneMobile, in.TelephoneMobile)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

type ProfileOrdering string

const (
	OrderProfileCreatedDesc ProfileOrdering = "-created_at"
	OrderPropertyCountAsc   ProfileOrdering = "property_count"
	OrderPropertyCountDesc  ProfileOrdering = "-property_count"
	OrderFollowersCountAsc  ProfileOrdering = "followers_count"
	OrderFollowersCountDesc ProfileOrdering = "-followers_count"
	OrderFollowingCountAsc  ProfileOrdering = "following_count"
	OrderFollowingCountDesc ProfileOrdering = "-following_count"
)

func ParseProfileOrdering(raw string) (ProfileOrdering, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return OrderProfileCreatedDesc, nil
	}
	switch o := ProfileOrdering(raw); o {
	case OrderProfileCreatedDesc, OrderPropertyCountAsc, OrderPropertyCountDesc,
		OrderFollowersCountAsc, OrderFollowersCountDesc,
		OrderFollowingCountAsc, OrderFollowingCountDesc:
		return o, nil
	}
	return "", NewFieldError("ordering", "\""+raw+"\" is not a valid ordering.")
}
