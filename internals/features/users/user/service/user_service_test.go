package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"stamet_backend/internals/constants"
	"stamet_backend/internals/features/users/user/dto"
	"stamet_backend/internals/features/users/user/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "rahasia123" {
		t.Fatal("password stored in plain text")
	}
	if !CheckPassword(hash, "rahasia123") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "rahasia124") {
		t.Fatal("wrong password accepted")
	}
}

func TestDeleteSelfForbidden(t *testing.T) {
	svc := NewUserService(nil, nil)
	admin := &authHelper.Identity{UserID: uuid.New(), Role: constants.RoleAdmin}

	err := svc.Delete(context.Background(), admin, admin.UserID, "")
	if !helper.IsKind(err, helper.KindForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewUserService(nil, nil)
	admin := &authHelper.Identity{UserID: uuid.New(), Role: constants.RoleAdmin}
	station := uuid.New()

	cases := map[string]dto.CreateUserRequest{
		"bad role":      {Name: "A", Email: "a@bmkg.go.id", Password: "12345678", Role: "ROOT"},
		"short pass":    {Name: "A", Email: "a@bmkg.go.id", Password: "123", Role: "CONTENT"},
		"bad email":     {Name: "A", Email: "bukan", Password: "12345678", Role: "CONTENT"},
		"station+staff": {Name: "A", Email: "a@bmkg.go.id", Password: "12345678", Role: "CONTENT", StationID: &station},
	}
	for name, req := range cases {
		if _, err := svc.Create(context.Background(), admin, req, ""); !helper.IsKind(err, helper.KindValidation) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestUpdateOwnRoleForbidden(t *testing.T) {
	svc := NewUserService(nil, nil)
	admin := &authHelper.Identity{UserID: uuid.New(), Role: constants.RoleAdmin}
	role := "content"

	_, err := svc.Update(context.Background(), admin, admin.UserID, dto.UpdateUserRequest{Role: &role}, "")
	if !helper.IsKind(err, helper.KindForbidden) {
		t.Fatalf("err = %v", err)
	}
}

func TestWithCurrentProfileKeepsChannel(t *testing.T) {
	station := uuid.New()
	id := &authHelper.Identity{
		UserID:  uuid.New(),
		Name:    "Lama",
		Role:    constants.RoleAdmin,
		Channel: constants.ChannelInternal,
	}
	got := withCurrentProfile(id, &model.UserModel{
		Name:      "Baru",
		Role:      constants.RoleDatin,
		StationID: &station,
	})
	if got.Role != constants.RoleDatin || got.Name != "Baru" {
		t.Fatalf("profile not refreshed: %+v", got)
	}
	if got.StationID == nil || *got.StationID != station {
		t.Fatalf("station not refreshed: %+v", got.StationID)
	}
	if got.Channel != constants.ChannelInternal || got.UserID != id.UserID {
		t.Fatalf("token fields lost: %+v", got)
	}
	if id.Role != constants.RoleAdmin {
		t.Fatal("original identity mutated")
	}
}
