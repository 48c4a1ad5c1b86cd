package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_articles_slug"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"any constraint", wrapped, "", true},
		{"matching constraint", wrapped, "uq_articles_slug", true},
		{"other constraint", wrapped, "uq_users_email", false},
		{"fk violation", &pgconn.PgError{Code: "23503"}, "", false},
		{"gorm duplicated", gorm.ErrDuplicatedKey, "", true},
		{"plain text", errors.New("ERROR: duplicate key value violates unique constraint"), "", true},
		{"nil", nil, "", false},
		{"unrelated", errors.New("timeout"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503", ConstraintName: "fk_skm_responses_question"})
	if !IsForeignKeyViolation(fk) {
		t.Fatal("wrapped 23503 not detected")
	}
	for _, err := range []error{nil, &pgconn.PgError{Code: "23505"}, errors.New("violates foreign key")} {
		if IsForeignKeyViolation(err) {
			t.Fatalf("false positive for %v", err)
		}
	}
}

func runFromError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return FromError(c, err) })

	resp, e := app.Test(httptest.NewRequest("GET", "/", nil))
	if e != nil {
		t.Fatal(e)
	}
	body, _ := io.ReadAll(resp.Body)
	var out ErrorResponse
	if e := json.Unmarshal(body, &out); e != nil {
		t.Fatalf("decode %s: %v", body, e)
	}
	return resp.StatusCode, out
}

func TestFromErrorMapsKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", NewValidationError("judul wajib diisi"), 400, "VALIDATION_ERROR"},
		{"fields", NewFieldErrors(map[string][]string{"title": {"wajib diisi"}}), 422, "VALIDATION_ERROR"},
		{"unauthorized", NewUnauthorized(""), 401, "UNAUTHORIZED"},
		{"forbidden", NewForbidden(""), 403, "FORBIDDEN"},
		{"not found", NewNotFound(""), 404, "NOT_FOUND"},
		{"conflict", NewConflict("Email sudah terdaftar", nil), 409, "CONFLICT"},
		{"gorm not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), 404, "NOT_FOUND"},
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "bad"), 400, "BAD_REQUEST"},
		{"internal", NewInternal(errors.New("pq: connection refused")), 500, "INTERNAL_ERROR"},
		{"raw", errors.New("boom"), 500, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := runFromError(t, tt.err)
			if status != tt.status || out.ErrorCode != tt.code {
				t.Fatalf("got %d/%s, want %d/%s", status, out.ErrorCode, tt.status, tt.code)
			}
			if out.Success {
				t.Fatal("success must be false")
			}
		})
	}
}

func TestFromErrorHidesInternalDetail(t *testing.T) {
	_, out := runFromError(t, NewInternal(errors.New("password authentication failed for user postgres")))
	if out.Message != msgInternal {
		t.Fatalf("leaked message %q", out.Message)
	}
}

func TestFromErrorUnverifiedCarriesUserID(t *testing.T) {
	id := uuid.New()
	status, out := runFromError(t, NewUnverified(id))
	if status != 403 || out.ErrorCode != "UNVERIFIED_ACCOUNT" {
		t.Fatalf("got %d/%s", status, out.ErrorCode)
	}
	data, ok := out.Data.(map[string]any)
	if !ok || data["user_id"] != id.String() {
		t.Fatalf("unexpected data %#v", out.Data)
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("svc: %w", NewConflict("slug", nil))
	if !IsKind(err, KindConflict) || IsKind(err, KindNotFound) {
		t.Fatal("IsKind mismatch")
	}
}
