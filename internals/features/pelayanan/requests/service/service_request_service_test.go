package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"stamet_backend/internals/features/pelayanan/requests/dto"
	"stamet_backend/internals/features/pelayanan/requests/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []model.Status{model.StatusPending, model.StatusProcessing, model.StatusCompleted, model.StatusRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if model.Status("DONE").Valid() {
		t.Error("DONE should be invalid")
	}
}

func TestCreateValidatesBeforeStorage(t *testing.T) {
	svc := NewServiceRequestService(nil, nil)
	ctx := context.Background()
	user := &authHelper.Identity{UserID: uuid.New()}

	if _, err := svc.Create(ctx, nil, dto.CreateServiceRequestRequest{}, ""); !helper.IsKind(err, helper.KindUnauthorized) {
		t.Fatalf("anonymous: %v", err)
	}
	_, err := svc.Create(ctx, user, dto.CreateServiceRequestRequest{RequestType: "Data Curah Hujan", Email: "bukan-email"}, "")
	if !helper.IsKind(err, helper.KindValidation) {
		t.Fatalf("invalid body: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewServiceRequestService(nil, nil)
	staff := &authHelper.Identity{UserID: uuid.New()}

	_, err := svc.UpdateStatus(context.Background(), staff, uuid.New(), dto.UpdateStatusRequest{Status: "selesai"}, "")
	if !helper.IsKind(err, helper.KindValidation) {
		t.Fatalf("err = %v", err)
	}
}
