package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware/middlewaretest"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/iam/permission/permissiontest"
	"case-management-system/internal/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeRepository struct {
	sessions map[uuid.UUID]model.Session
	cutoff   time.Time
}

func (f *fakeRepository) Create(ctx context.Context, s model.Session) (model.Session, error) {
	s.UUID = uuid.New()
	f.sessions[s.UUID] = s
	return s, nil
}

func (f *fakeRepository) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Session, error) {
	s, ok := f.sessions[id]
	if !ok || !permissiontest.Allows(scope, s.UserUUID, s.User.TeamUUID) {
		return model.Session{}, ErrNotFound
	}
	return s, nil
}

func (f *fakeRepository) ListActive(ctx context.Context, now time.Time, page pagination.Request, scope permission.Filter) ([]model.Session, int64, error) {
	var out []model.Session
	for _, s := range f.sessions {
		if s.Active(now) && permissiontest.Allows(scope, s.UserUUID, s.User.TeamUUID) {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	s, ok := f.sessions[id]
	if !ok || s.RevokedAt != nil {
		return ErrNotFound
	}
	s.RevokedAt = &at
	f.sessions[id] = s
	return nil
}

func (f *fakeRepository) RevokeByToken(ctx context.Context, token string, at time.Time) error {
	for id, s := range f.sessions {
		if s.Token == token && s.RevokedAt == nil {
			return f.Revoke(ctx, id, at)
		}
	}
	return ErrNotFound
}

func (f *fakeRepository) RevokeAllForUser(ctx context.Context, userUUID uuid.UUID, except *uuid.UUID, at time.Time) (int64, error) {
	var n int64
	for id, s := range f.sessions {
		if s.UserUUID != userUUID || !s.Active(at) || (except != nil && id == *except) {
			continue
		}
		_ = f.Revoke(ctx, id, at)
		n++
	}
	return n, nil
}

func (f *fakeRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	f.cutoff = before
	return 3, nil
}

func newSession(user model.User, token string, expires time.Time) model.Session {
	return model.Session{UUID: uuid.New(), UserUUID: user.UUID, User: user, Token: token, ExpiresAt: expires}
}

func TestServiceOpenValidates(t *testing.T) {
	repo := &fakeRepository{sessions: map[uuid.UUID]model.Session{}}
	svc := NewService(repo)

	if _, err := svc.Open(context.Background(), model.Session{Token: "t"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v", err)
	}
	s, err := svc.Open(context.Background(), model.Session{UserUUID: uuid.New(), Token: "t", ExpiresAt: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if s.LastActivity.IsZero() {
		t.Error("last_activity must be set on open")
	}
}

func TestServiceCloseAndRevokeAll(t *testing.T) {
	user := model.User{UUID: uuid.New()}
	future := time.Now().Add(time.Hour)
	a := newSession(user, "a", future)
	b := newSession(user, "b", future)
	repo := &fakeRepository{sessions: map[uuid.UUID]model.Session{a.UUID: a, b.UUID: b}}
	svc := NewService(repo)

	if err := svc.Close(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Close(context.Background(), "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second close: %v", err)
	}
	n, err := svc.RevokeAll(context.Background(), user.UUID)
	if err != nil || n != 1 {
		t.Errorf("RevokeAll = %d, %v", n, err)
	}
}

func TestServicePurgeUsesRetention(t *testing.T) {
	repo := &fakeRepository{sessions: map[uuid.UUID]model.Session{}}
	svc := NewService(repo)

	n, err := svc.PurgeExpired(context.Background(), 24*time.Hour)
	if err != nil || n != 3 {
		t.Fatalf("PurgeExpired = %d, %v", n, err)
	}
	if d := time.Since(repo.cutoff); d < 23*time.Hour || d > 25*time.Hour {
		t.Errorf("cutoff = %v", repo.cutoff)
	}
}

func TestControllerScopedListAndRevoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	team := uuid.New()
	caller := model.User{UUID: uuid.New(), TeamUUID: &team}
	mate := model.User{UUID: uuid.New(), TeamUUID: &team}
	stranger := model.User{UUID: uuid.New()}
	future := time.Now().Add(time.Hour)

	mine := newSession(caller, "mine", future)
	mates := newSession(mate, "mate", future)
	foreign := newSession(stranger, "foreign", future)
	repo := &fakeRepository{sessions: map[uuid.UUID]model.Session{mine.UUID: mine, mates.UUID: mates, foreign.UUID: foreign}}

	r := gin.New()
	NewController(NewService(repo), middlewaretest.Grant(caller, permission.ScopeTeam, module)).Routes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))
	var page pagination.Response[SessionResponseDto]
	_ = json.Unmarshal(w.Body.Bytes(), &page)
	if page.Total != 2 {
		t.Errorf("team scope sees %d sessions", page.Total)
	}
	var raw map[string][]map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	for _, item := range raw["items"] {
		if _, leaked := item["token"]; leaked {
			t.Error("token must never be returned")
		}
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+foreign.UUID.String(), nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign revoke = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/sessions/"+mates.UUID.String(), nil))
	if w.Code != http.StatusNoContent || repo.sessions[mates.UUID].RevokedAt == nil {
		t.Errorf("mate revoke = %d", w.Code)
	}
}

func TestControllerRevokeOthersKeepsCurrent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	caller := model.User{UUID: uuid.New()}
	future := time.Now().Add(time.Hour)
	a := newSession(caller, "a", future)
	b := newSession(caller, "b", future)
	repo := &fakeRepository{sessions: map[uuid.UUID]model.Session{a.UUID: a, b.UUID: b}}

	r := gin.New()
	mw := middlewaretest.New(caller, nil)
	mw.Session = a
	NewController(NewService(repo), mw).Routes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions/revoke-others", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var resp RevokeOthersResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Revoked != 1 {
		t.Errorf("revoked = %d", resp.Revoked)
	}
	if repo.sessions[a.UUID].RevokedAt != nil || repo.sessions[b.UUID].RevokedAt == nil {
		t.Error("only the other session must be revoked")
	}
}
