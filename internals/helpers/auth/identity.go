package auth

import (
	"context"
	"errors"
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stamet_backend/internals/constants"
)

// Locals key tempat middleware menaruh *Identity.
const LocIdentity = "identity"

// Identity adalah pemanggil yang sudah terautentikasi.
// Service menerima nilai ini secara eksplisit.
type Identity struct {
	UserID    uuid.UUID
	Name      string
	Role      string
	Channel   string
	StationID *uuid.UUID
}

// ErrIdentityGone: akun pemilik token sudah tidak ada.
var ErrIdentityGone = errors.New("akun tidak ditemukan")

// IdentityRefresher memuat role/stasiun terkini untuk pemilik token.
type IdentityRefresher func(ctx context.Context, id *Identity) (*Identity, error)

func (i *Identity) HasRole(roles ...string) bool {
	return i != nil && slices.Contains(roles, i.Role)
}

// UserIDPtr untuk kolom nullable (activity log).
func (i *Identity) UserIDPtr() *uuid.UUID {
	if i == nil || i.UserID == uuid.Nil {
		return nil
	}
	id := i.UserID
	return &id
}

func FromCtx(c *fiber.Ctx) (*Identity, bool) {
	id, ok := c.Locals(LocIdentity).(*Identity)
	return id, ok && id != nil
}

type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

// Authorize: identity nil → DenyUnauthenticated; role di luar allowed → DenyForbidden.
// allowed kosong berarti cukup login.
func Authorize(id *Identity, allowed []string) Decision {
	if id == nil || id.UserID == uuid.Nil || id.Role == "" {
		return DenyUnauthenticated
	}
	if len(allowed) > 0 && !slices.Contains(allowed, id.Role) {
		return DenyForbidden
	}
	return Allow
}

type LoginDecision int

const (
	LoginAllowed LoginDecision = iota
	LoginWrongChannel
	LoginUnverified
)

// CheckLogin: kanal internal untuk staf, kanal pelayanan hanya USER terverifikasi.
func CheckLogin(channel, role string, verified bool) LoginDecision {
	if !slices.Contains(constants.ChannelRoles(channel), role) {
		return LoginWrongChannel
	}
	if channel == constants.ChannelPelayanan && !verified {
		return LoginUnverified
	}
	return LoginAllowed
}
