package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"stamet_backend/internals/constants"
	"stamet_backend/internals/features/ikm/stations/dto"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

func TestCanEditStation(t *testing.T) {
	own := uuid.New()
	other := uuid.New()

	cases := []struct {
		name  string
		actor *authHelper.Identity
		want  bool
	}{
		{"nil", nil, false},
		{"admin", &authHelper.Identity{Role: constants.RoleAdmin}, true},
		{"datin unbound", &authHelper.Identity{Role: constants.RoleDatin}, true},
		{"datin own", &authHelper.Identity{Role: constants.RoleDatin, StationID: &own}, true},
		{"datin other", &authHelper.Identity{Role: constants.RoleDatin, StationID: &other}, false},
		{"content", &authHelper.Identity{Role: constants.RoleContent}, false},
	}
	for _, tc := range cases {
		if got := CanEditStation(tc.actor, own); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMutationsGuardedBeforeStorage(t *testing.T) {
	svc := NewIkmStationService(nil, nil)
	ctx := context.Background()
	other := uuid.New()
	datin := &authHelper.Identity{UserID: uuid.New(), Role: constants.RoleDatin, StationID: &other}

	if _, err := svc.Create(ctx, datin, dto.CreateIkmStationRequest{StationName: "Stamet Juanda"}, ""); !helper.IsKind(err, helper.KindForbidden) {
		t.Fatalf("create by datin: %v", err)
	}
	if _, err := svc.Update(ctx, datin, uuid.New(), dto.UpdateIkmStationRequest{}, ""); !helper.IsKind(err, helper.KindForbidden) {
		t.Fatalf("update other station: %v", err)
	}
	if err := svc.Delete(ctx, datin, other, ""); !helper.IsKind(err, helper.KindForbidden) {
		t.Fatalf("delete by datin: %v", err)
	}

	admin := &authHelper.Identity{UserID: uuid.New(), Role: constants.RoleAdmin}
	bad := 120.0
	if _, err := svc.Update(ctx, admin, uuid.New(), dto.UpdateIkmStationRequest{IkmValue: &bad}, ""); !helper.IsKind(err, helper.KindValidation) {
		t.Fatalf("out of range ikm_value: %v", err)
	}
}
