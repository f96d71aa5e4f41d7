package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware/middlewaretest"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/log/auditoria_log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeService struct {
	entries map[uuid.UUID]auditoria_log.AuditLog
	filter  auditoria_log.ListFilter
	scope   auditoria_log.Scope
}

func (f *fakeService) Log(ctx context.Context, entry auditoria_log.AuditLog) error {
	return nil
}

func (f *fakeService) Read(ctx context.Context, id uuid.UUID, scope auditoria_log.Scope) (auditoria_log.AuditLog, error) {
	f.scope = scope
	e, ok := f.entries[id]
	if !ok {
		return auditoria_log.AuditLog{}, auditoria_log.ErrNotFound
	}
	return e, nil
}

func (f *fakeService) List(ctx context.Context, filter auditoria_log.ListFilter, scope auditoria_log.Scope) ([]auditoria_log.AuditLog, int64, error) {
	f.filter, f.scope = filter, scope
	var out []auditoria_log.AuditLog
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func setup(t *testing.T, scope permission.Scope, svc *fakeService) (*gin.Engine, model.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	team := uuid.New()
	caller := model.User{UUID: uuid.New(), TeamUUID: &team}
	r := gin.New()
	NewController(svc, middlewaretest.Grant(caller, scope, module)).Routes(r.Group("/api"))
	return r, caller
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListAppliesFiltersAndOwnScope(t *testing.T) {
	svc := &fakeService{entries: map[uuid.UUID]auditoria_log.AuditLog{}}
	r, caller := setup(t, permission.ScopeOwn, svc)

	w := get(r, "/api/audit?module=cases&action=update&from=2026-01-01&to=2026-01-31&size=5")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d body = %s", w.Code, w.Body.String())
	}
	if svc.filter.Module != "cases" || svc.filter.Action != "update" || svc.filter.PageSize != 5 {
		t.Errorf("filter = %+v", svc.filter)
	}
	if svc.filter.To == nil || svc.filter.To.Day() != 31 || svc.filter.To.Hour() != 23 {
		t.Errorf("to must cover the whole day: %v", svc.filter.To)
	}
	if svc.scope.Query != "user_uuid = ?" || len(svc.scope.Args) != 1 || svc.scope.Args[0] != caller.UUID {
		t.Errorf("scope = %+v", svc.scope)
	}
}

func TestListAllScopeHasNoPredicate(t *testing.T) {
	svc := &fakeService{entries: map[uuid.UUID]auditoria_log.AuditLog{}}
	r, _ := setup(t, permission.ScopeAll, svc)

	if w := get(r, "/api/audit"); w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if svc.scope.Query != "" {
		t.Errorf("scope = %+v", svc.scope)
	}
}

func TestListRejectsBadInput(t *testing.T) {
	svc := &fakeService{entries: map[uuid.UUID]auditoria_log.AuditLog{}}
	r, _ := setup(t, permission.ScopeAll, svc)

	for _, path := range []string{
		"/api/audit?from=ontem",
		"/api/audit?user_uuid=abc",
		"/api/audit?size=500",
	} {
		if w := get(r, path); w.Code != http.StatusBadRequest {
			t.Errorf("%s = %d", path, w.Code)
		}
	}
}

func TestHistoryUsesPathEntity(t *testing.T) {
	svc := &fakeService{entries: map[uuid.UUID]auditoria_log.AuditLog{}}
	r, _ := setup(t, permission.ScopeTeam, svc)

	id := uuid.New().String()
	if w := get(r, "/api/audit/entity/case/"+id); w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if svc.filter.EntityType != "case" || svc.filter.EntityID != id {
		t.Errorf("filter = %+v", svc.filter)
	}
	if svc.scope.Query != "team_uuid = ?" {
		t.Errorf("scope = %+v", svc.scope)
	}
}

func TestReadHidesSensitiveValues(t *testing.T) {
	secret := "hash"
	entry := auditoria_log.AuditLog{
		UUID:      uuid.New(),
		Module:    "users",
		Action:    "update",
		CreatedAt: time.Now(),
		Changes: []auditoria_log.AuditEntityChange{
			{FieldName: "password", NewValue: &secret, IsSensitive: true, ChangeType: auditoria_log.ChangeModified},
		},
	}
	svc := &fakeService{entries: map[uuid.UUID]auditoria_log.AuditLog{entry.UUID: entry}}
	r, _ := setup(t, permission.ScopeAll, svc)

	w := get(r, "/api/audit/"+entry.UUID.String())
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	var got AuditResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Changes) != 1 || got.Changes[0].NewValue != nil {
		t.Errorf("changes = %+v", got.Changes)
	}

	if w := get(r, "/api/audit/"+uuid.New().String()); w.Code != http.StatusNotFound {
		t.Errorf("missing = %d", w.Code)
	}
	if w := get(r, "/api/audit/nope"); w.Code != http.StatusBadRequest {
		t.Errorf("bad uuid = %d", w.Code)
	}
}

func TestWithoutPermissionIsForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := &fakeService{entries: map[uuid.UUID]auditoria_log.AuditLog{}}
	NewController(svc, middlewaretest.New(model.User{UUID: uuid.New()}, nil)).Routes(r.Group("/api"))

	if w := get(r, "/api/audit"); w.Code != http.StatusForbidden {
		t.Errorf("code = %d", w.Code)
	}
}
