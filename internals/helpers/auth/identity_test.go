package auth

import (
	"testing"

	"github.com/google/uuid"

	"stamet_backend/internals/constants"
)

func TestAuthorize(t *testing.T) {
	admin := &Identity{UserID: uuid.New(), Role: constants.RoleAdmin}
	datin := &Identity{UserID: uuid.New(), Role: constants.RoleDatin}
	noRole := &Identity{UserID: uuid.New()}

	tests := []struct {
		name    string
		id      *Identity
		allowed []string
		want    Decision
	}{
		{"nil identity", nil, constants.ContentRoles, DenyUnauthenticated},
		{"nil user id", &Identity{Role: constants.RoleAdmin}, constants.AdminOnly, DenyUnauthenticated},
		{"empty role", noRole, constants.AdminOnly, DenyUnauthenticated},
		{"admin on content", admin, constants.ContentRoles, Allow},
		{"datin on content", datin, constants.ContentRoles, DenyForbidden},
		{"datin on stations", datin, constants.StationRoles, Allow},
		{"any logged in", datin, nil, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.id, tt.allowed); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckLogin(t *testing.T) {
	tests := []struct {
		channel  string
		role     string
		verified bool
		want     LoginDecision
	}{
		{constants.ChannelInternal, constants.RoleContent, false, LoginAllowed},
		{constants.ChannelInternal, constants.RoleUser, true, LoginWrongChannel},
		{constants.ChannelPelayanan, constants.RoleUser, true, LoginAllowed},
		{constants.ChannelPelayanan, constants.RoleUser, false, LoginUnverified},
		{constants.ChannelPelayanan, constants.RoleAdmin, true, LoginWrongChannel},
		{"", constants.RoleAdmin, true, LoginWrongChannel},
	}
	for _, tt := range tests {
		if got := CheckLogin(tt.channel, tt.role, tt.verified); got != tt.want {
			t.Errorf("%s/%s/%v: got %v want %v", tt.channel, tt.role, tt.verified, got, tt.want)
		}
	}
}
