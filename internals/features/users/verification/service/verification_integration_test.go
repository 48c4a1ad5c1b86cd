//go:build integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stamet_backend/internals/constants"
	"stamet_backend/internals/databases/dbtest"
	userModel "stamet_backend/internals/features/users/user/model"
	"stamet_backend/internals/features/users/verification/model"
)

func seedUser(t *testing.T, db *gorm.DB) userModel.UserModel {
	t.Helper()
	now := time.Now()
	u := userModel.UserModel{
		ID:           uuid.New(),
		Name:         "Pemohon",
		Email:        uuid.NewString() + "@contoh.id",
		PasswordHash: "x",
		Role:         constants.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func isVerified(t *testing.T, db *gorm.DB, id uuid.UUID) bool {
	t.Helper()
	var u userModel.UserModel
	if err := db.Take(&u, "id = ?", id).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	return u.IsVerified
}

func TestConsumeRejectsExpiredUnusedCode(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	u := seedUser(t, db)

	issuedAt := time.Now().Add(-2 * CodeValidity)
	v, err := Issue(ctx, db, u.ID, issuedAt)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := Consume(ctx, db, u.ID, v.Code, time.Now()); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("err = %v, want ErrInvalidCode", err)
	}
	if isVerified(t, db, u.ID) {
		t.Fatal("user verified with expired code")
	}
}

func TestConsumeIsSingleUse(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	u := seedUser(t, db)
	now := time.Now()

	v, err := Issue(ctx, db, u.ID, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := Consume(ctx, db, u.ID, v.Code, now.Add(time.Minute)); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if !isVerified(t, db, u.ID) {
		t.Fatal("user not verified")
	}
	if err := Consume(ctx, db, u.ID, v.Code, now.Add(2*time.Minute)); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("second consume err = %v", err)
	}
}

func TestIssueInvalidatesPreviousCodes(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	u := seedUser(t, db)
	now := time.Now()

	first, err := Issue(ctx, db, u.ID, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, err := Issue(ctx, db, u.ID, now.Add(time.Second))
	if err != nil {
		t.Fatalf("reissue: %v", err)
	}

	if first.Code != second.Code {
		if err := Consume(ctx, db, u.ID, first.Code, now.Add(time.Minute)); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("old code still valid: %v", err)
		}
	}
	if err := Consume(ctx, db, u.ID, second.Code, now.Add(time.Minute)); err != nil {
		t.Fatalf("new code rejected: %v", err)
	}

	n, err := Purge(ctx, db, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if n != 2 {
		t.Fatalf("purged %d rows, want 2", n)
	}
	var left int64
	db.Model(&model.EmailVerificationModel{}).Where("user_id = ?", u.ID).Count(&left)
	if left != 0 {
		t.Fatalf("%d rows left", left)
	}
}

func TestConsumeLocksCodeAfterRepeatedFailures(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	u := seedUser(t, db)
	now := time.Now()

	v, err := Issue(ctx, db, u.ID, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	wrong := "000000"
	if v.Code == wrong {
		wrong = "111111"
	}

	for i := 1; i < MaxAttempts; i++ {
		err := Consume(ctx, db, u.ID, wrong, now.Add(time.Second))
		if !errors.Is(err, ErrInvalidCode) || errors.Is(err, ErrTooManyAttempts) {
			t.Fatalf("attempt %d: err = %v", i, err)
		}
	}
	if err := Consume(ctx, db, u.ID, wrong, now.Add(time.Second)); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("last attempt: err = %v, want ErrTooManyAttempts", err)
	}

	// kode benar pun ditolak setelah terkunci
	if err := Consume(ctx, db, u.ID, v.Code, now.Add(2*time.Second)); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("locked code accepted: %v", err)
	}
	if isVerified(t, db, u.ID) {
		t.Fatal("user verified with locked code")
	}

	var row model.EmailVerificationModel
	if err := db.Take(&row, "id = ?", v.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if row.Attempts != MaxAttempts || !row.Used {
		t.Fatalf("row = %+v", row)
	}
}
