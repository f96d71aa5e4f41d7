package team

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware/middlewaretest"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/iam/permission/permissiontest"
	"case-management-system/internal/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeRepository struct {
	teams map[uuid.UUID]model.Team
	users map[uuid.UUID]model.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{teams: map[uuid.UUID]model.Team{}, users: map[uuid.UUID]model.User{}}
}

func (f *fakeRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	for _, existing := range f.teams {
		if existing.Code == t.Code {
			return model.Team{}, ErrCodeDuplicated
		}
	}
	t.UUID = uuid.New()
	f.teams[t.UUID] = t
	return t, nil
}

func (f *fakeRepository) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Team, error) {
	t, ok := f.teams[id]
	if !ok || !permissiontest.Allows(scope, uuid.Nil, &t.UUID) {
		return model.Team{}, ErrNotFound
	}
	return t, nil
}

func (f *fakeRepository) List(ctx context.Context, search string, page pagination.Request, scope permission.Filter) ([]model.Team, int64, error) {
	var out []model.Team
	for _, t := range f.teams {
		id := t.UUID
		if permissiontest.Allows(scope, uuid.Nil, &id) {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) Update(ctx context.Context, t model.Team) (model.Team, error) {
	f.teams[t.UUID] = t
	return t, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.teams, id)
	return nil
}

func (f *fakeRepository) CountMembers(ctx context.Context, id uuid.UUID) (int64, error) {
	members, _ := f.Members(ctx, id)
	return int64(len(members)), nil
}

func (f *fakeRepository) Members(ctx context.Context, id uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.TeamUUID != nil && *u.TeamUUID == id {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepository) SetMembership(ctx context.Context, userUUID uuid.UUID, teamUUID *uuid.UUID) error {
	u, ok := f.users[userUUID]
	if !ok {
		return ErrUserNotFound
	}
	u.TeamUUID = teamUUID
	f.users[userUUID] = u
	return nil
}

func (f *fakeRepository) FindUser(ctx context.Context, userUUID uuid.UUID) (model.User, error) {
	u, ok := f.users[userUUID]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

func setup(scope permission.Scope, callerTeam *uuid.UUID) (*gin.Engine, *fakeRepository) {
	gin.SetMode(gin.TestMode)
	repo := newFakeRepository()
	caller := model.User{UUID: uuid.New(), TeamUUID: callerTeam}
	r := gin.New()
	NewController(NewService(repo), middlewaretest.Grant(caller, scope, module)).Routes(r.Group("/api"))
	return r, repo
}

func call(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateNormalizesCodeAndRejectsDuplicate(t *testing.T) {
	r, repo := setup(permission.ScopeAll, nil)

	w := call(r, http.MethodPost, "/api/teams", map[string]string{"code": " soporte-n1 ", "name": "Soporte N1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	var resp TeamResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "SOPORTE-N1" || !resp.Live {
		t.Errorf("resp = %+v", resp)
	}
	if len(repo.teams) != 1 {
		t.Fatal("team not stored")
	}

	if w := call(r, http.MethodPost, "/api/teams", map[string]string{"code": "SOPORTE-N1", "name": "Outro"}); w.Code != http.StatusConflict {
		t.Errorf("duplicate = %d", w.Code)
	}
	if w := call(r, http.MethodPost, "/api/teams", map[string]string{"name": "Sem código"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing code = %d", w.Code)
	}
}

func TestTeamScopeSeesOnlyOwnTeam(t *testing.T) {
	mine := uuid.New()
	r, repo := setup(permission.ScopeTeam, &mine)
	other := uuid.New()
	repo.teams[mine] = model.Team{UUID: mine, Code: "A", Name: "A"}
	repo.teams[other] = model.Team{UUID: other, Code: "B", Name: "B"}

	if w := call(r, http.MethodGet, "/api/teams/"+other.String(), nil); w.Code != http.StatusNotFound {
		t.Errorf("other team = %d", w.Code)
	}
	w := call(r, http.MethodGet, "/api/teams", nil)
	var page pagination.Response[TeamResponseDto]
	_ = json.Unmarshal(w.Body.Bytes(), &page)
	if page.Total != 1 || page.Items[0].UUID != mine {
		t.Errorf("list = %+v", page)
	}
}

func TestMembershipLifecycle(t *testing.T) {
	r, repo := setup(permission.ScopeAll, nil)
	teamID := uuid.New()
	repo.teams[teamID] = model.Team{UUID: teamID, Code: "A", Name: "A"}
	member := model.User{UUID: uuid.New(), Name: "Ana", Email: "ana@cms.local"}
	repo.users[member.UUID] = member
	base := "/api/teams/" + teamID.String()

	if w := call(r, http.MethodPost, base+"/members", map[string]string{"user_uuid": member.UUID.String()}); w.Code != http.StatusOK {
		t.Fatalf("add = %d %s", w.Code, w.Body.String())
	}
	if w := call(r, http.MethodPost, base+"/members", map[string]string{"user_uuid": uuid.NewString()}); w.Code != http.StatusNotFound {
		t.Errorf("unknown user = %d", w.Code)
	}

	w := call(r, http.MethodGet, base+"/members", nil)
	var members []MemberResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &members)
	if len(members) != 1 || members[0].UUID != member.UUID {
		t.Fatalf("members = %+v", members)
	}

	if w := call(r, http.MethodDelete, base, nil); w.Code != http.StatusConflict {
		t.Errorf("delete with members = %d", w.Code)
	}

	if w := call(r, http.MethodDelete, base+"/members/"+member.UUID.String(), nil); w.Code != http.StatusNoContent {
		t.Fatalf("remove = %d", w.Code)
	}
	if w := call(r, http.MethodDelete, base+"/members/"+member.UUID.String(), nil); w.Code != http.StatusNotFound {
		t.Errorf("remove twice = %d", w.Code)
	}
	if w := call(r, http.MethodDelete, base, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete empty team = %d", w.Code)
	}
}

func TestUpdatePartial(t *testing.T) {
	r, repo := setup(permission.ScopeAll, nil)
	id := uuid.New()
	repo.teams[id] = model.Team{UUID: id, Code: "A", Name: "Antes", Description: "d", Live: true}

	w := call(r, http.MethodPatch, "/api/teams/"+id.String(), map[string]interface{}{"name": "Depois", "live": false})
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d", w.Code)
	}
	got := repo.teams[id]
	if got.Name != "Depois" || got.Live || got.Code != "A" || got.Description != "d" {
		t.Errorf("team = %+v", got)
	}
}
