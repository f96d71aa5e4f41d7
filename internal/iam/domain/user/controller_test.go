package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware/middlewaretest"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRouter(repo *fakeRepository, caller model.User, scope permission.Scope) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewController(NewService(repo, plainHasher{}), middlewaretest.Grant(caller, scope, module))
	ctrl.Routes(r.Group("/api"))
	return r
}

func request(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
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

func TestCreateValidation(t *testing.T) {
	caller := model.User{UUID: uuid.New()}
	r := newRouter(newFakeRepository(), caller, permission.ScopeAll)

	w := request(r, http.MethodPost, "/api/users", map[string]interface{}{"email": "nope"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d", w.Code)
	}
	var body struct {
		Causes []struct{ Field string } `json:"causes"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	fields := map[string]bool{}
	for _, c := range body.Causes {
		fields[c.Field] = true
	}
	for _, f := range []string{"name", "email", "password", "role_uuid"} {
		if !fields[f] {
			t.Errorf("missing cause for %s: %s", f, w.Body.String())
		}
	}
}

func TestCreateAndConflict(t *testing.T) {
	caller := model.User{UUID: uuid.New()}
	r := newRouter(newFakeRepository(), caller, permission.ScopeAll)
	payload := map[string]interface{}{
		"name": "Ana", "email": "ana@cms.local", "password": "segredo123", "role_uuid": uuid.NewString(),
	}

	w := request(r, http.MethodPost, "/api/users", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if _, leaked := resp["password"]; leaked {
		t.Error("password must not be returned")
	}

	w = request(r, http.MethodPost, "/api/users", payload)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate = %d", w.Code)
	}
}

func TestReadOutOfScopeReturns404(t *testing.T) {
	team := uuid.New()
	caller := model.User{UUID: uuid.New(), TeamUUID: &team}
	otherTeam := uuid.New()
	other := model.User{UUID: uuid.New(), Email: "x@cms.local", TeamUUID: &otherTeam}
	mate := model.User{UUID: uuid.New(), Email: "y@cms.local", TeamUUID: &team}
	r := newRouter(newFakeRepository(other, mate), caller, permission.ScopeTeam)

	if w := request(r, http.MethodGet, "/api/users/"+other.UUID.String(), nil); w.Code != http.StatusNotFound {
		t.Errorf("other team = %d", w.Code)
	}
	if w := request(r, http.MethodGet, "/api/users/"+mate.UUID.String(), nil); w.Code != http.StatusOK {
		t.Errorf("same team = %d", w.Code)
	}
	if w := request(r, http.MethodGet, "/api/users/not-a-uuid", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad uuid = %d", w.Code)
	}
}

func TestListPagination(t *testing.T) {
	caller := model.User{UUID: uuid.New()}
	r := newRouter(newFakeRepository(caller), caller, permission.ScopeOwn)

	w := request(r, http.MethodGet, "/api/users?size=101", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("size above limit = %d", w.Code)
	}

	w = request(r, http.MethodGet, "/api/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	var page pagination.Response[UserResponseDto]
	_ = json.Unmarshal(w.Body.Bytes(), &page)
	if page.Page != 1 || page.Size != 10 || page.Total != 1 || len(page.Items) != 1 {
		t.Errorf("page = %+v", page)
	}
}

func TestUpdateClearsTeamAndStatus(t *testing.T) {
	team := uuid.New()
	target := model.User{UUID: uuid.New(), Name: "Bia", Email: "bia@cms.local", TeamUUID: &team, Live: true}
	repo := newFakeRepository(target)
	r := newRouter(repo, model.User{UUID: uuid.New()}, permission.ScopeAll)

	w := request(r, http.MethodPatch, "/api/users/"+target.UUID.String(), map[string]interface{}{"team_uuid": ""})
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d %s", w.Code, w.Body.String())
	}
	if repo.users[target.UUID].TeamUUID != nil {
		t.Error("team should be cleared")
	}

	if w := request(r, http.MethodPatch, "/api/users/"+target.UUID.String()+"/status", map[string]interface{}{}); w.Code != http.StatusBadRequest {
		t.Errorf("status without live = %d", w.Code)
	}
	w = request(r, http.MethodPatch, "/api/users/"+target.UUID.String()+"/status", map[string]interface{}{"live": false})
	if w.Code != http.StatusOK || repo.users[target.UUID].Live {
		t.Errorf("deactivate = %d live=%v", w.Code, repo.users[target.UUID].Live)
	}
}

func TestDeleteAndForbidden(t *testing.T) {
	target := model.User{UUID: uuid.New(), Email: "bia@cms.local"}
	repo := newFakeRepository(target)
	r := newRouter(repo, model.User{UUID: uuid.New()}, permission.ScopeAll)

	if w := request(r, http.MethodDelete, "/api/users/"+target.UUID.String(), nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
	if w := request(r, http.MethodDelete, "/api/users/"+target.UUID.String(), nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d", w.Code)
	}

	gin.SetMode(gin.TestMode)
	denied := gin.New()
	NewController(NewService(repo, plainHasher{}), middlewaretest.New(model.User{}, nil)).Routes(denied.Group("/api"))
	if w := request(denied, http.MethodGet, "/api/users", nil); w.Code != http.StatusForbidden {
		t.Errorf("without permission = %d", w.Code)
	}
}
