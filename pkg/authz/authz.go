// Package authz decides whether a caller may perform an operation.
package authz

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
)

var (
	// ErrAccessDenied is returned when an operation needs an administrator.
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrUnauthorized)
	// ErrNotOwner is returned when a caller touches a resource owned by someone else.
	ErrNotOwner = fmt.Errorf("%w: this resource belongs to another user", domain.ErrForbidden)
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID      uuid.UUID
	IsAdmin bool
}

var systemID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// System is the principal of command-line maintenance tasks. It passes
// admin checks and owns nothing.
func System() Principal {
	return Principal{ID: systemID, IsAdmin: true}
}

// PrincipalOf builds the principal for a loaded user. A nil user yields an
// anonymous principal that fails every check.
func PrincipalOf(u *user.User) Principal {
	if u == nil {
		return Principal{}
	}
	return Principal{ID: u.ID, IsAdmin: u.IsAdmin}
}

// Policy is consulted by services before they touch storage.
type Policy interface {
	RequireAdmin(p Principal) error
	RequireOwner(p Principal, ownerID uuid.UUID) error
}

// RolePolicy grants admin operations to principals with the admin flag and
// owner operations to the owner only.
type RolePolicy struct{}

// NewRolePolicy returns the default policy.
func NewRolePolicy() RolePolicy {
	return RolePolicy{}
}

func (RolePolicy) RequireAdmin(p Principal) error {
	if p.ID == uuid.Nil || !p.IsAdmin {
		return ErrAccessDenied
	}
	return nil
}

func (RolePolicy) RequireOwner(p Principal, ownerID uuid.UUID) error {
	if p.ID == uuid.Nil || p.ID != ownerID {
		return ErrNotOwner
	}
	return nil
}
