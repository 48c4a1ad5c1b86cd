package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"stamet_backend/internals/constants"
	"stamet_backend/internals/features/users/auth/dto"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

type memRevocations struct {
	revoked map[string]time.Time
}

func (m *memRevocations) Revoke(_ context.Context, raw string, exp time.Time) error {
	m.revoked[raw] = exp
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, raw string) (bool, error) {
	_, ok := m.revoked[raw]
	return ok, nil
}

const secret = "test-secret"

func TestLogoutRevokesUntilExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	rev := &memRevocations{revoked: map[string]time.Time{}}
	svc := NewAuthService(nil, Options{Secret: secret, Revocations: rev})
	svc.now = func() time.Time { return now }

	id := &authHelper.Identity{UserID: uuid.New(), Role: constants.RoleAdmin, Channel: constants.ChannelInternal}
	tok, exp, err := authHelper.IssueAccessToken(secret, id, time.Hour, now)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(context.Background(), tok); err != nil {
		t.Fatal(err)
	}
	got, ok := rev.revoked[tok]
	if !ok {
		t.Fatal("token not revoked")
	}
	if got.Before(exp) {
		t.Fatalf("revocation ends %v before token expiry %v", got, exp)
	}
}

func TestLogoutIgnoresGarbageToken(t *testing.T) {
	rev := &memRevocations{revoked: map[string]time.Time{}}
	svc := NewAuthService(nil, Options{Secret: secret, Revocations: rev})

	for _, raw := range []string{"", "bukan.jwt.valid"} {
		if err := svc.Logout(context.Background(), raw); err != nil {
			t.Fatalf("Logout(%q) = %v", raw, err)
		}
	}
	if len(rev.revoked) != 0 {
		t.Fatalf("unexpected revocations: %v", rev.revoked)
	}
}

func TestValidationBeforeStorage(t *testing.T) {
	svc := NewAuthService(nil, Options{Secret: secret})
	ctx := context.Background()

	if _, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ani", Email: "ani@", Password: "12345678"}, ""); !helper.IsKind(err, helper.KindValidation) {
		t.Errorf("register bad email: %v", err)
	}
	if _, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ani", Email: "ani@mail.id", Password: "123"}, ""); !helper.IsKind(err, helper.KindValidation) {
		t.Errorf("register short password: %v", err)
	}
	if _, err := svc.Login(ctx, dto.LoginRequest{Email: "ani@mail.id", Password: "x", Channel: "publik"}, ""); !helper.IsKind(err, helper.KindValidation) {
		t.Errorf("login unknown channel: %v", err)
	}
	if _, err := svc.VerifyEmail(ctx, dto.VerifyEmailRequest{Email: "ani@mail.id", Code: "12ab56"}, ""); !helper.IsKind(err, helper.KindValidation) {
		t.Errorf("verify non-numeric code: %v", err)
	}
	if _, err := svc.VerifyEmail(ctx, dto.VerifyEmailRequest{Code: "123456"}, ""); !helper.IsKind(err, helper.KindValidation) {
		t.Errorf("verify without target: %v", err)
	}
	err := svc.ChangePassword(ctx, &authHelper.Identity{UserID: uuid.New()}, dto.ChangePasswordRequest{OldPassword: "abcdefgh", NewPassword: "abcdefgh"}, "")
	if !helper.IsKind(err, helper.KindValidation) {
		t.Errorf("change password to same value: %v", err)
	}
}
