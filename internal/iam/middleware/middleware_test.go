package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepository struct {
	logins    map[string]*Login
	loginErr  error
	grants    []permission.Permission
	grantsErr error
	permCalls int
	touched   []uuid.UUID
}

func (f *fakeRepository) GetLogin(ctx context.Context, token string) (*Login, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	login, ok := f.logins[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *login
	return &cp, nil
}

func (f *fakeRepository) RolePermissions(ctx context.Context, roleUUID uuid.UUID) ([]permission.Permission, error) {
	f.permCalls++
	return f.grants, f.grantsErr
}

func (f *fakeRepository) TouchSession(ctx context.Context, sessionUUID uuid.UUID, at time.Time) error {
	f.touched = append(f.touched, sessionUUID)
	return nil
}

type fixture struct {
	repo   *fakeRepository
	mw     Middleware
	tokens *jwt.TokenGenerator
	user   model.User
	token  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := jwt.NewGenerator(jwt.Config{
		AccessSecret: "a", RefreshSecret: "r", Issuer: "cms-test", AccessExpiry: time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}

	team := uuid.New()
	user := model.User{UUID: uuid.New(), RoleUUID: uuid.New(), TeamUUID: &team, Email: "ana@cms.local", Live: true}
	token, exp, err := tokens.GenerateAccessToken(user.UUID, user.RoleUUID, user.TeamUUID)
	if err != nil {
		t.Fatal(err)
	}

	repo := &fakeRepository{
		logins: map[string]*Login{
			token: {
				User: user,
				Session: model.Session{
					UUID: uuid.New(), UserUUID: user.UUID, Token: token,
					ExpiresAt: exp, LastActivity: time.Now().UTC(),
				},
			},
		},
		grants: []permission.Permission{
			{Module: "cases", Action: "read", Scope: permission.ScopeOwn},
			{Module: "cases", Action: "read", Scope: permission.ScopeTeam},
			{Module: "todos", Action: "create", Scope: permission.ScopeOwn},
		},
	}

	return &fixture{
		repo:   repo,
		mw:     NewMiddleware(repo, tokens, NewCookieSession("cookie-secret", false)),
		tokens: tokens,
		user:   user,
		token:  token,
	}
}

func (f *fixture) router(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestMetadata())
	chain := append([]gin.HandlerFunc{f.mw.SetContextAutorization()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		filter := ScopeFilter(c)
		c.JSON(http.StatusOK, gin.H{"scope": filter.Scope})
	})
	r.GET("/x", chain...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSetContextAutorizationFailures(t *testing.T) {
	validToken := func(f *fixture) string { return f.token }

	tests := []struct {
		name  string
		token func(f *fixture) string
		setup func(f *fixture)
		want  int
	}{
		{"missing token", func(*fixture) string { return "" }, nil, http.StatusUnauthorized},
		{"bad signature", func(*fixture) string { return "x.y.z" }, nil, http.StatusUnauthorized},
		{"unknown session", func(f *fixture) string {
			tk, _, _ := f.tokens.GenerateAccessToken(uuid.New(), uuid.New(), nil)
			return tk
		}, nil, http.StatusUnauthorized},
		{"lookup failure", validToken, func(f *fixture) { f.repo.loginErr = errors.New("db down") }, http.StatusInternalServerError},
		{"expired session", validToken, func(f *fixture) {
			f.repo.logins[f.token].Session.ExpiresAt = time.Now().Add(-time.Minute)
		}, http.StatusUnauthorized},
		{"revoked session", validToken, func(f *fixture) {
			now := time.Now()
			f.repo.logins[f.token].Session.RevokedAt = &now
		}, http.StatusUnauthorized},
		{"token of another user", validToken, func(f *fixture) {
			f.repo.logins[f.token].User.UUID = uuid.New()
		}, http.StatusUnauthorized},
		{"inactive user", validToken, func(f *fixture) { f.repo.logins[f.token].User.Live = false }, http.StatusForbidden},
		{"permission lookup failure", validToken, func(f *fixture) { f.repo.grantsErr = errors.New("db down") }, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			w := do(f.router(), tt.token(f))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			var body map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if trace, _ := body["trace_id"].(string); trace == "" {
				t.Errorf("error body without trace_id: %s", w.Body.String())
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	f := newFixture(t)

	w := do(f.router(f.mw.RequirePermission("cases", "read")), f.token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["scope"] != string(permission.ScopeTeam) {
		t.Errorf("scope = %s, want highest grant (team)", body["scope"])
	}

	w = do(f.router(f.mw.RequirePermission("cases", "delete")), f.token)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAnyAll(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		h    gin.HandlerFunc
		want int
	}{
		{"any granted", f.mw.RequireAny("cases:delete", "todos:create"), http.StatusOK},
		{"any none", f.mw.RequireAny("cases:delete", "roles:update"), http.StatusForbidden},
		{"all granted", f.mw.RequireAll("cases:read", "todos:create"), http.StatusOK},
		{"all partial", f.mw.RequireAll("cases:read", "cases:delete"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(f.router(tt.h), f.token); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestPermissionCacheAndInvalidate(t *testing.T) {
	f := newFixture(t)
	r := f.router()

	do(r, f.token)
	do(r, f.token)
	if f.repo.permCalls != 1 {
		t.Fatalf("RolePermissions called %d times, want 1 (cached)", f.repo.permCalls)
	}

	f.mw.InvalidateRole(f.user.RoleUUID)
	do(r, f.token)
	if f.repo.permCalls != 2 {
		t.Errorf("RolePermissions called %d times after invalidation, want 2", f.repo.permCalls)
	}
}

func TestLastActivityRefresh(t *testing.T) {
	f := newFixture(t)
	r := f.router()

	do(r, f.token)
	if len(f.repo.touched) != 0 {
		t.Fatalf("recent session should not be touched")
	}

	f.repo.logins[f.token].Session.LastActivity = time.Now().UTC().Add(-2 * time.Minute)
	do(r, f.token)
	if len(f.repo.touched) != 1 {
		t.Errorf("stale session touched %d times, want 1", len(f.repo.touched))
	}
}

func TestCookieTransport(t *testing.T) {
	f := newFixture(t)
	cookies := f.mw.Cookies()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := cookies.Save(c, f.token, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	setCookie := w.Result().Cookies()
	if len(setCookie) == 0 {
		t.Fatal("no cookie written")
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	for _, ck := range setCookie {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	f.router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("cookie auth status = %d: %s", rec.Code, rec.Body.String())
	}

	var nilCookies *CookieSession
	if nilCookies.Token(c) != "" || nilCookies.Save(c, "t", time.Now()) != nil {
		t.Error("nil CookieSession must be a no-op")
	}
}

func TestRequestMetadataAndAuditEntry(t *testing.T) {
	f := newFixture(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestMetadata())
	var trace string
	r.GET("/x", f.mw.SetContextAutorization(), func(c *gin.Context) {
		entry := AuditEntry(c, "cases", "update", "Update")
		if entry.UserUUID == nil || *entry.UserUUID != f.user.UUID {
			t.Errorf("UserUUID = %v", entry.UserUUID)
		}
		if entry.TeamUUID == nil || entry.Identifier != f.user.Email {
			t.Errorf("entry actor = %+v", entry)
		}
		if entry.Method != http.MethodGet || entry.Path != "/x" {
			t.Errorf("entry request = %s %s", entry.Method, entry.Path)
		}
		trace = entry.RayTraceCode
		c.Status(http.StatusNoContent)
	})

	w := do(r, f.token)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if trace == "" || w.Header().Get(TraceHeader) != trace {
		t.Errorf("trace header %q vs entry %q", w.Header().Get(TraceHeader), trace)
	}
}

func TestScopeFilterWithoutAccessDenies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if f := ScopeFilter(c); f.Scope != permission.ScopeNone {
		t.Errorf("Scope = %s, want none", f.Scope)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"Basic abc":    "",
		"":             "",
		"Bearer":       "",
	}
	for in, want := range tests {
		if got := extractBearerToken(in); got != want {
			t.Errorf("extractBearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAccessLogWritesRouteAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := gin.New()
	r.Use(RequestMetadata(), AccessLog())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	req.Header.Set(TraceHeader, "abc")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("line %q: %v", buf.String(), err)
	}
	if line["path"] != "/items/42" || line["status"] != float64(http.StatusTeapot) || line["trace_id"] != "abc" {
		t.Errorf("line = %v", line)
	}
	if line["level"] != "WARN" {
		t.Errorf("level = %v", line["level"])
	}
}
