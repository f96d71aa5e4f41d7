package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"case-management-system/internal/casework/domain/model"
	iammodel "case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware/middlewaretest"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/iam/permission/permissiontest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeRepository struct {
	todos map[uuid.UUID]model.Todo
	cases map[uuid.UUID]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{todos: map[uuid.UUID]model.Todo{}, cases: map[uuid.UUID]bool{}}
}

func (f *fakeRepository) checkCase(id *uuid.UUID) error {
	if id != nil && !f.cases[*id] {
		return ErrCaseNotFound
	}
	return nil
}

func (f *fakeRepository) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	if err := f.checkCase(t.CaseUUID); err != nil {
		return model.Todo{}, err
	}
	t.UUID = uuid.New()
	f.todos[t.UUID] = t
	return t, nil
}

func (f *fakeRepository) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Todo, error) {
	t, ok := f.todos[id]
	if !ok || !permissiontest.Allows(scope, t.OwnerUUID, t.TeamUUID) {
		return model.Todo{}, ErrNotFound
	}
	return t, nil
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.Todo, int64, error) {
	var out []model.Todo
	for _, t := range f.todos {
		if !permissiontest.Allows(scope, t.OwnerUUID, t.TeamUUID) {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) Update(ctx context.Context, t model.Todo) (model.Todo, error) {
	if err := f.checkCase(t.CaseUUID); err != nil {
		return model.Todo{}, err
	}
	f.todos[t.UUID] = t
	return t, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.todos, id)
	return nil
}

func TestServiceToggleSetsCompletedAt(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	scope := permission.Filter{Scope: permission.ScopeAll}

	created, err := svc.Create(context.Background(), model.Todo{Title: "Ligar para o cliente", OwnerUUID: uuid.New()})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Priority != model.PriorityMedia || created.Completed {
		t.Fatalf("created = %+v", created)
	}

	_, after, err := svc.Toggle(context.Background(), created.UUID, scope)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !after.Completed || after.CompletedAt == nil {
		t.Fatalf("after first toggle = %+v", after)
	}

	_, after, _ = svc.Toggle(context.Background(), created.UUID, scope)
	if after.Completed || after.CompletedAt != nil {
		t.Errorf("after second toggle = %+v", after)
	}
}

func TestServiceUpdateClearsFields(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	caseUUID := uuid.New()
	repo.cases[caseUUID] = true
	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	created, _ := svc.Create(context.Background(), model.Todo{Title: "Revisar", DueDate: &due, CaseUUID: &caseUUID, OwnerUUID: uuid.New()})
	_, after, err := svc.Update(context.Background(), created.UUID, Patch{ClearDue: true, ClearCase: true}, permission.Filter{Scope: permission.ScopeAll})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if after.DueDate != nil || after.CaseUUID != nil {
		t.Errorf("after = %+v", after)
	}
}

func setup(scope permission.Scope, caller iammodel.User) (*gin.Engine, *fakeRepository) {
	gin.SetMode(gin.TestMode)
	repo := newFakeRepository()
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

func TestControllerCreateAndToggle(t *testing.T) {
	caller := iammodel.User{UUID: uuid.New()}
	r, repo := setup(permission.ScopeOwn, caller)

	w := call(r, http.MethodPost, "/api/todos", map[string]interface{}{
		"title": "Enviar retorno", "priority": "alta", "due_date": "2024-08-15",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var created TodoResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.DueDate != "2024-08-15" || created.Priority != model.PriorityAlta || created.OwnerUUID != caller.UUID {
		t.Errorf("created = %+v", created)
	}

	w = call(r, http.MethodPatch, "/api/todos/"+created.UUID.String()+"/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", w.Code)
	}
	if !repo.todos[created.UUID].Completed {
		t.Error("todo not completed after toggle")
	}
}

func TestControllerUnknownCase(t *testing.T) {
	r, _ := setup(permission.ScopeAll, iammodel.User{UUID: uuid.New()})
	w := call(r, http.MethodPost, "/api/todos", map[string]interface{}{"title": "x", "case_uuid": uuid.NewString()})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestControllerValidation(t *testing.T) {
	r, _ := setup(permission.ScopeAll, iammodel.User{UUID: uuid.New()})

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing title", map[string]interface{}{"priority": "baja"}},
		{"bad priority", map[string]interface{}{"title": "x", "priority": "urgente"}},
		{"bad date", map[string]interface{}{"title": "x", "due_date": "amanhã"}},
		{"bad case", map[string]interface{}{"title": "x", "case_uuid": "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := call(r, http.MethodPost, "/api/todos", tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d", w.Code)
			}
		})
	}
}

func TestControllerListFiltersAndScope(t *testing.T) {
	caller := iammodel.User{UUID: uuid.New()}
	r, repo := setup(permission.ScopeOwn, caller)

	mine := model.Todo{UUID: uuid.New(), Title: "minha", OwnerUUID: caller.UUID, Completed: true}
	theirs := model.Todo{UUID: uuid.New(), Title: "alheia", OwnerUUID: uuid.New(), Completed: true}
	open := model.Todo{UUID: uuid.New(), Title: "aberta", OwnerUUID: caller.UUID}
	repo.todos[mine.UUID] = mine
	repo.todos[theirs.UUID] = theirs
	repo.todos[open.UUID] = open

	w := call(r, http.MethodGet, "/api/todos?completed=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Items []TodoResponseDto `json:"items"`
		Total int64             `json:"total"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].UUID != mine.UUID {
		t.Errorf("resp = %+v", resp)
	}

	if w := call(r, http.MethodGet, "/api/todos?priority=urgente", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad priority status = %d", w.Code)
	}
}
