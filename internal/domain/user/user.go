package user

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/teamhub/server/internal/domain/collaboration"
)

// MaxNameLength bounds display names in runes.
const MaxNameLength = 100

// Status represents the lifecycle status of an account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// IsValid checks if the status is a known account status.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusSuspended
}

// User is the aggregate root for accounts.
type User struct {
	id           collaboration.UserID
	email        collaboration.Email
	name         string
	avatarURL    string
	passwordHash string
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active account for an already hashed password.
func NewUser(email collaboration.Email, name, passwordHash string, now time.Time) (*User, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, ErrPasswordRequired
	}
	return &User{
		id:           collaboration.NewUserID(),
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// RestoreUser recreates a User from persisted data.
func RestoreUser(
	id collaboration.UserID,
	email collaboration.Email,
	name, avatarURL, passwordHash string,
	status Status,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		avatarURL:    avatarURL,
		passwordHash: passwordHash,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() collaboration.UserID   { return u.id }
func (u *User) Email() collaboration.Email { return u.email }
func (u *User) Name() string               { return u.name }
func (u *User) AvatarURL() string          { return u.avatarURL }
func (u *User) PasswordHash() string       { return u.passwordHash }
func (u *User) Status() Status             { return u.status }
func (u *User) CreatedAt() time.Time       { return u.createdAt }
func (u *User) UpdatedAt() time.Time       { return u.updatedAt }
func (u *User) IsSuspended() bool          { return u.status == StatusSuspended }
func (u *User) CanLogin() bool             { return u.status == StatusActive }

// Info projects the account onto what the collaboration engine reads.
func (u *User) Info() *collaboration.UserInfo {
	return &collaboration.UserInfo{
		ID:        u.id,
		Email:     u.email,
		Name:      u.name,
		AvatarURL: u.avatarURL,
	}
}

// Profile holds the optional fields of a profile update.
type Profile struct {
	Name      *string
	AvatarURL *string
}

// UpdateProfile returns a copy of u with the profile changes applied.
func (u *User) UpdateProfile(p Profile, now time.Time) (*User, error) {
	next := *u
	if p.Name != nil {
		name, err := normalizeName(*p.Name)
		if err != nil {
			return nil, err
		}
		next.name = name
	}
	if p.AvatarURL != nil {
		next.avatarURL = strings.TrimSpace(*p.AvatarURL)
	}
	next.updatedAt = now
	return &next, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}
