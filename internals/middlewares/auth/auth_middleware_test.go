package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"stamet_backend/internals/constants"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

const secret = "uji-rahasia"

type fakeRevocations map[string]bool

func (f fakeRevocations) Revoke(_ context.Context, raw string, _ time.Time) error {
	f[raw] = true
	return nil
}

func (f fakeRevocations) IsRevoked(_ context.Context, raw string) (bool, error) {
	return f[raw], nil
}

func issue(t *testing.T, role, channel string) string {
	t.Helper()
	raw, _, err := authHelper.IssueAccessToken(secret, &authHelper.Identity{
		UserID:  uuid.New(),
		Name:    "Uji",
		Role:    role,
		Channel: channel,
	}, time.Hour, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func newApp(rev authHelper.Revocations) *fiber.App {
	app := fiber.New()
	protected := app.Group("/api/a", AuthMiddleware(Options{Secret: secret, Revocations: rev}))
	protected.Get("/articles",
		OnlyRoles(constants.RoleErrorContent("mengelola artikel"), constants.ContentRoles),
		func(c *fiber.Ctx) error {
			id, _ := authHelper.FromCtx(c)
			return helper.JsonOK(c, "ok", fiber.Map{"role": id.Role})
		})

	user := app.Group("/api/u",
		AuthMiddleware(Options{Secret: secret, Revocations: rev}),
		RequireChannel(constants.ChannelPelayanan, "kanal salah"),
	)
	user.Get("/me", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	app.Get("/open", AuthMiddleware(Options{Secret: secret, Optional: true}), func(c *fiber.Ctx) error {
		if _, ok := authHelper.FromCtx(c); ok {
			return c.SendString("user")
		}
		return c.SendString("anon")
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, token string, cookie bool) (int, helper.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		if cookie {
			req.Header.Set("Cookie", "access_token="+token)
		} else {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	var out helper.ErrorResponse
	_ = json.Unmarshal(body, &out)
	return resp.StatusCode, out
}

func TestAuthMiddlewareAndRoleGate(t *testing.T) {
	rev := fakeRevocations{}
	app := newApp(rev)

	contentTok := issue(t, constants.RoleContent, constants.ChannelInternal)
	datinTok := issue(t, constants.RoleDatin, constants.ChannelInternal)
	revokedTok := issue(t, constants.RoleAdmin, constants.ChannelInternal)
	rev[revokedTok] = true

	tests := []struct {
		name   string
		token  string
		cookie bool
		status int
		code   string
	}{
		{"no token", "", false, 401, "UNAUTHORIZED"},
		{"garbage token", "abc.def.ghi", false, 401, "UNAUTHORIZED"},
		{"content via header", contentTok, false, 200, ""},
		{"content via cookie", contentTok, true, 200, ""},
		{"datin forbidden", datinTok, false, 403, "FORBIDDEN"},
		{"revoked", revokedTok, false, 401, "UNAUTHORIZED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := do(t, app, "/api/a/articles", tt.token, tt.cookie)
			if status != tt.status {
				t.Fatalf("status %d, want %d (%+v)", status, tt.status, out)
			}
			if tt.code != "" && out.ErrorCode != tt.code {
				t.Fatalf("code %q, want %q", out.ErrorCode, tt.code)
			}
		})
	}
}

func TestRequireChannel(t *testing.T) {
	app := newApp(fakeRevocations{})

	if status, _ := do(t, app, "/api/u/me", issue(t, constants.RoleUser, constants.ChannelPelayanan), false); status != 200 {
		t.Fatalf("pelayanan token: %d", status)
	}
	if status, _ := do(t, app, "/api/u/me", issue(t, constants.RoleAdmin, constants.ChannelInternal), false); status != 403 {
		t.Fatalf("internal token on user route: %d", status)
	}
}

func TestOptionalAuth(t *testing.T) {
	app := newApp(nil)
	req := httptest.NewRequest("GET", "/open", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "anon" {
		t.Fatalf("got %q", body)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	app := fiber.New()
	app.Get("/x", AuthMiddleware(Options{Secret: secret}), func(c *fiber.Ctx) error { return c.SendStatus(200) })

	raw, _, err := authHelper.IssueAccessToken(secret, &authHelper.Identity{UserID: uuid.New(), Role: constants.RoleAdmin},
		time.Minute, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if status, _ := do(t, app, "/x", raw, false); status != 401 {
		t.Fatalf("expired token: %d", status)
	}
}

func TestRefreshAppliesCurrentRole(t *testing.T) {
	roles := map[string]string{} // name -> role terkini di DB
	refresh := func(_ context.Context, id *authHelper.Identity) (*authHelper.Identity, error) {
		role, ok := roles[id.Name]
		switch {
		case !ok:
			return nil, authHelper.ErrIdentityGone
		case role == "":
			return nil, errors.New("db down")
		}
		out := *id
		out.Role = role
		return &out, nil
	}

	app := fiber.New()
	app.Get("/api/a/articles",
		AuthMiddleware(Options{Secret: secret, Revocations: fakeRevocations{}, Refresh: refresh}),
		OnlyRoles(constants.RoleErrorContent("mengelola artikel"), constants.ContentRoles),
		func(c *fiber.Ctx) error {
			id, _ := authHelper.FromCtx(c)
			return helper.JsonOK(c, "ok", fiber.Map{"role": id.Role})
		})

	tok := issue(t, constants.RoleContent, constants.ChannelInternal)

	tests := []struct {
		name   string
		dbRole *string
		status int
		code   string
	}{
		{"unchanged", ptr(constants.RoleContent), 200, ""},
		{"demoted after login", ptr(constants.RoleDatin), 403, "FORBIDDEN"},
		{"account deleted", nil, 401, "UNAUTHORIZED"},
		{"lookup failed", ptr(""), 500, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delete(roles, "Uji")
			if tt.dbRole != nil {
				roles["Uji"] = *tt.dbRole
			}
			status, out := do(t, app, "/api/a/articles", tok, false)
			if status != tt.status {
				t.Fatalf("status %d, want %d (%+v)", status, tt.status, out)
			}
			if tt.code != "" && out.ErrorCode != tt.code {
				t.Fatalf("code %q, want %q", out.ErrorCode, tt.code)
			}
		})
	}
}

func ptr(s string) *string { return &s }
