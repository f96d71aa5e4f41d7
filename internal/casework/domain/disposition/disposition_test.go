package disposition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	items map[uuid.UUID]model.Disposition
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: map[uuid.UUID]model.Disposition{}}
}

func (f *fakeRepository) Create(ctx context.Context, d model.Disposition) (model.Disposition, error) {
	d.UUID = uuid.New()
	f.items[d.UUID] = d
	return d, nil
}

func (f *fakeRepository) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Disposition, error) {
	d, ok := f.items[id]
	if !ok || !permissiontest.Allows(scope, d.OwnerUUID, d.TeamUUID) {
		return model.Disposition{}, ErrNotFound
	}
	return d, nil
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.Disposition, int64, error) {
	var out []model.Disposition
	for _, d := range f.items {
		if permissiontest.Allows(scope, d.OwnerUUID, d.TeamUUID) {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) Update(ctx context.Context, d model.Disposition) (model.Disposition, error) {
	f.items[d.UUID] = d
	return d, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeRepository) CountByMonth(ctx context.Context, year int, scope permission.Filter) ([]MonthCount, error) {
	counts := map[int]int64{}
	for _, d := range f.items {
		if d.Fecha.Year() == year && permissiontest.Allows(scope, d.OwnerUUID, d.TeamUUID) {
			counts[int(d.Fecha.Month())]++
		}
	}
	var out []MonthCount
	for m, n := range counts {
		out = append(out, MonthCount{Month: m, Total: n})
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestServiceSummaryFillsAllMonths(t *testing.T) {
	repo := newFakeRepository()
	owner := uuid.New()
	for _, f := range []time.Time{day(2024, 1, 5), day(2024, 1, 20), day(2024, 3, 1), day(2023, 3, 1)} {
		d := model.Disposition{UUID: uuid.New(), Fecha: f, OwnerUUID: owner}
		repo.items[d.UUID] = d
	}

	s, err := NewService(repo).Summary(context.Background(), 2024, permission.Filter{Scope: permission.ScopeAll})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.Total != 3 || s.Months[0] != 2 || s.Months[2] != 1 || s.Months[11] != 0 {
		t.Errorf("summary = %+v", s)
	}
}

func TestServiceSummaryDefaultsAndBounds(t *testing.T) {
	svc := &implService{Repository: newFakeRepository(), now: func() time.Time { return day(2025, 6, 1) }}

	s, err := svc.Summary(context.Background(), 0, permission.Filter{Scope: permission.ScopeAll})
	if err != nil || s.Year != 2025 {
		t.Fatalf("summary = %+v err = %v", s, err)
	}
	if _, err := svc.Summary(context.Background(), 1999, permission.Filter{Scope: permission.ScopeAll}); !errors.Is(err, ErrInvalidYear) {
		t.Errorf("err = %v, want ErrInvalidYear", err)
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

func TestControllerCreateAndSummary(t *testing.T) {
	team := uuid.New()
	caller := iammodel.User{UUID: uuid.New(), TeamUUID: &team}
	r, repo := setup(permission.ScopeTeam, caller)

	w := call(r, http.MethodPost, "/api/dispositions", map[string]interface{}{
		"numero_caso": "CAS-7", "nombre_script": "reprocessa_lote.sql", "fecha": "2024-02-10", "aplicacion": "ERP",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var created DispositionResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created.TeamUUID == nil || *created.TeamUUID != team {
		t.Errorf("team not assigned: %+v", created)
	}

	other := model.Disposition{UUID: uuid.New(), Fecha: day(2024, 2, 11), OwnerUUID: uuid.New()}
	repo.items[other.UUID] = other

	w = call(r, http.MethodGet, "/api/dispositions/summary?year=2024", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d", w.Code)
	}
	var summary SummaryResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &summary)
	if summary.Total != 1 || len(summary.Months) != 12 || summary.Months[1].Total != 1 {
		t.Errorf("summary = %+v", summary)
	}

	if w := call(r, http.MethodGet, "/api/dispositions/summary?year=abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad year status = %d", w.Code)
	}
}

func TestControllerUpdateAndDelete(t *testing.T) {
	caller := iammodel.User{UUID: uuid.New()}
	r, repo := setup(permission.ScopeOwn, caller)

	d := model.Disposition{UUID: uuid.New(), NumeroCaso: "CAS-1", NombreScript: "a.sql", Fecha: day(2024, 1, 1), Aplicacion: "ERP", OwnerUUID: caller.UUID}
	repo.items[d.UUID] = d

	w := call(r, http.MethodPatch, "/api/dispositions/"+d.UUID.String(), map[string]interface{}{"nombre_script": "b.sql"})
	if w.Code != http.StatusOK || repo.items[d.UUID].NombreScript != "b.sql" {
		t.Fatalf("update status = %d stored = %+v", w.Code, repo.items[d.UUID])
	}
	if w := call(r, http.MethodDelete, "/api/dispositions/"+d.UUID.String(), nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := call(r, http.MethodGet, "/api/dispositions/"+d.UUID.String(), nil); w.Code != http.StatusNotFound {
		t.Errorf("read after delete status = %d", w.Code)
	}
}
