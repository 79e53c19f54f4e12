package domain

import (
	"errors"
	"time"

	sharedDomain "github.com/felixgeelhaar/slotswap/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// User is a directory entry. It supplies the display name shown next to slots and requests.
// Credentials live with the identity provider, not here.
type User struct {
	sharedDomain.BaseEntity
	email Email
	name  Name
}

// NewUser creates a user with a fresh ID.
func NewUser(email Email, name Name) *User {
	return &User{
		BaseEntity: sharedDomain.NewBaseEntity(),
		email:      email,
		name:       name,
	}
}

// RehydrateUser rebuilds a user from storage.
func RehydrateUser(id uuid.UUID, email Email, name Name, createdAt, updatedAt time.Time) *User {
	return &User{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		email:      email,
		name:       name,
	}
}

func (u *User) Email() Email { return u.email }
func (u *User) Name() Name   { return u.name }

// Rename changes the display name.
func (u *User) Rename(name Name) {
	if u.name.Equals(name) {
		return
	}
	u.name = name
	u.Touch()
}
