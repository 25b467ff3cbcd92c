package ports

import (
	"context"
	"strings"

	"valet/internal/core/domain/model/actor"
	"valet/internal/core/domain/model/kernel"
)

// placeholderEmailMarker tags synthetic addresses minted for phone-only
// signups. They are not real mailboxes and never shown to humans.
const placeholderEmailMarker = "@noemail."

// Profile is a read model of one account in the user directory.
type Profile struct {
	ID         kernel.UUID
	Role       actor.Role
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	PushTokens []string
}

// DisplayName resolves a human-readable name: full name when present, then
// the email unless it is a synthetic placeholder, then the phone number.
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	if p.Email != "" && !strings.Contains(p.Email, placeholderEmailMarker) {
		return p.Email
	}
	return p.Phone
}

// UserDirectory resolves account references for authorization checks,
// display projections and notification targeting.
type UserDirectory interface {
	// Get retrieves a profile by id.
	// Returns errs.ObjectNotFoundError when no such account exists.
	Get(ctx context.Context, id kernel.UUID) (Profile, error)

	// GetAdmins retrieves every admin profile, used for broadcast events
	// such as emergency alerts.
	GetAdmins(ctx context.Context) ([]Profile, error)
}
