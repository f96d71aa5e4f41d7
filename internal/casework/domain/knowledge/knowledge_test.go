package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"case-management-system/internal/casework/domain/model"
	iammodel "case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware/middlewaretest"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/iam/permission/permissiontest"
	"case-management-system/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeRepository struct {
	docs        map[uuid.UUID]model.KnowledgeDocument
	attachments map[uuid.UUID]model.KnowledgeAttachment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{docs: map[uuid.UUID]model.KnowledgeDocument{}, attachments: map[uuid.UUID]model.KnowledgeAttachment{}}
}

func (f *fakeRepository) Create(ctx context.Context, d model.KnowledgeDocument) (model.KnowledgeDocument, error) {
	d.UUID = uuid.New()
	f.docs[d.UUID] = d
	return d, nil
}

func (f *fakeRepository) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.KnowledgeDocument, error) {
	d, ok := f.docs[id]
	if !ok || !permissiontest.Allows(scope, d.OwnerUUID, d.TeamUUID) {
		return model.KnowledgeDocument{}, ErrNotFound
	}
	d.Attachments = nil
	for _, a := range f.attachments {
		if a.DocumentUUID == id {
			d.Attachments = append(d.Attachments, a)
		}
	}
	return d, nil
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.KnowledgeDocument, int64, error) {
	var out []model.KnowledgeDocument
	for _, d := range f.docs {
		if !permissiontest.Allows(scope, d.OwnerUUID, d.TeamUUID) {
			continue
		}
		if filter.Tag != "" && !contains(d.Tags, filter.Tag) {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (f *fakeRepository) Update(ctx context.Context, d model.KnowledgeDocument) (model.KnowledgeDocument, error) {
	d.ViewCount = f.docs[d.UUID].ViewCount
	f.docs[d.UUID] = d
	return d, nil
}

func (f *fakeRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	d := f.docs[id]
	d.ViewCount++
	f.docs[id] = d
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.docs, id)
	for k, a := range f.attachments {
		if a.DocumentUUID == id {
			delete(f.attachments, k)
		}
	}
	return nil
}

func (f *fakeRepository) CreateAttachment(ctx context.Context, a model.KnowledgeAttachment) (model.KnowledgeAttachment, error) {
	a.UUID = uuid.New()
	f.attachments[a.UUID] = a
	return a, nil
}

func (f *fakeRepository) ReadAttachment(ctx context.Context, documentUUID, id uuid.UUID) (model.KnowledgeAttachment, error) {
	a, ok := f.attachments[id]
	if !ok || a.DocumentUUID != documentUUID {
		return model.KnowledgeAttachment{}, ErrAttachmentNotFound
	}
	return a, nil
}

func (f *fakeRepository) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	delete(f.attachments, id)
	return nil
}

func newService(t *testing.T, maxBytes int64) (Service, *fakeRepository, string) {
	t.Helper()
	root := t.TempDir()
	files, err := storage.NewLocal(root, maxBytes)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	repo := newFakeRepository()
	return NewService(repo, files), repo, root
}

func TestServiceVersionBumpsOnlyOnTitleOrContent(t *testing.T) {
	svc, _, _ := newService(t, 0)
	scope := permission.Filter{Scope: permission.ScopeAll}

	d, err := svc.Create(context.Background(), model.KnowledgeDocument{
		Title: "Reprocessar lote", Content: "passos", DocumentType: model.DocumentProcedimiento,
		Tags: []string{" ERP ", "erp", "lote", ""}, OwnerUUID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Version != 1 || len(d.Tags) != 2 || d.Tags[0] != "erp" {
		t.Fatalf("created = %+v", d)
	}

	summary := "resumo"
	_, after, _ := svc.Update(context.Background(), d.UUID, Patch{Summary: &summary}, scope)
	if after.Version != 1 {
		t.Errorf("summary change bumped version to %d", after.Version)
	}

	content := "novos passos"
	_, after, _ = svc.Update(context.Background(), d.UUID, Patch{Content: &content}, scope)
	if after.Version != 2 {
		t.Errorf("content change version = %d, want 2", after.Version)
	}

	same := "novos passos"
	_, after, _ = svc.Update(context.Background(), d.UUID, Patch{Content: &same}, scope)
	if after.Version != 2 {
		t.Errorf("unchanged content bumped version to %d", after.Version)
	}
}

func TestServiceViewCountsReads(t *testing.T) {
	svc, repo, _ := newService(t, 0)
	scope := permission.Filter{Scope: permission.ScopeAll}
	d, _ := svc.Create(context.Background(), model.KnowledgeDocument{Title: "FAQ", Content: "x", DocumentType: model.DocumentFAQ, OwnerUUID: uuid.New()})

	_, _ = svc.View(context.Background(), d.UUID, scope)
	got, _ := svc.View(context.Background(), d.UUID, scope)
	if got.ViewCount != 2 || repo.docs[d.UUID].ViewCount != 2 {
		t.Errorf("view count = %d / %d", got.ViewCount, repo.docs[d.UUID].ViewCount)
	}
}

func TestServiceDeleteRemovesFiles(t *testing.T) {
	svc, _, root := newService(t, 0)
	scope := permission.Filter{Scope: permission.ScopeAll}
	d, _ := svc.Create(context.Background(), model.KnowledgeDocument{Title: "Guia", Content: "x", DocumentType: model.DocumentGuia, OwnerUUID: uuid.New()})

	a, err := svc.AddAttachment(context.Background(), d.UUID, Upload{FileName: "log.txt", Body: bytes.NewBufferString("linha"), UploadedBy: uuid.New()}, scope)
	if err != nil {
		t.Fatalf("AddAttachment: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, a.StorageKey)); err != nil {
		t.Fatalf("file not stored: %v", err)
	}

	if _, err := svc.Delete(context.Background(), d.UUID, scope); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, a.StorageKey)); !os.IsNotExist(err) {
		t.Errorf("file still on disk: %v", err)
	}
}

func setup(t *testing.T, scope permission.Scope, caller iammodel.User, maxBytes int64) (*gin.Engine, *fakeRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	files, err := storage.NewLocal(t.TempDir(), maxBytes)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	repo := newFakeRepository()
	r := gin.New()
	NewController(NewService(repo, files), middlewaretest.Grant(caller, scope, module), maxBytes).Routes(r.Group("/api"))
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

func upload(r http.Handler, path, name string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", name)
	_, _ = part.Write(content)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createDoc(t *testing.T, r http.Handler) DocumentResponseDto {
	t.Helper()
	w := call(r, http.MethodPost, "/api/knowledge", map[string]interface{}{
		"title": "Erro 504 no portal", "content": "Reiniciar o worker", "document_type": "solucion", "tags": []string{"Portal", "timeout"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", w.Code, w.Body.String())
	}
	var d DocumentResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &d)
	return d
}

func TestControllerAttachmentLifecycle(t *testing.T) {
	r, _ := setup(t, permission.ScopeOwn, iammodel.User{UUID: uuid.New()}, 1024)
	doc := createDoc(t, r)
	base := "/api/knowledge/" + doc.UUID.String() + "/attachments"

	w := upload(r, base, "evidencia.txt", []byte("stack trace"))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d body = %s", w.Code, w.Body.String())
	}
	var att AttachmentResponseDto
	_ = json.Unmarshal(w.Body.Bytes(), &att)
	if att.SizeBytes != int64(len("stack trace")) || att.FileName != "evidencia.txt" {
		t.Errorf("attachment = %+v", att)
	}

	w = call(r, http.MethodGet, base+"/"+att.UUID.String(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d", w.Code)
	}
	if body, _ := io.ReadAll(w.Body); string(body) != "stack trace" {
		t.Errorf("download body = %q", body)
	}

	if w := call(r, http.MethodDelete, base+"/"+att.UUID.String(), nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := call(r, http.MethodGet, base+"/"+att.UUID.String(), nil); w.Code != http.StatusNotFound {
		t.Errorf("download after delete status = %d", w.Code)
	}
}

func TestControllerUploadTooLarge(t *testing.T) {
	r, _ := setup(t, permission.ScopeAll, iammodel.User{UUID: uuid.New()}, 8)
	doc := createDoc(t, r)

	w := upload(r, "/api/knowledge/"+doc.UUID.String()+"/attachments", "grande.bin", bytes.Repeat([]byte("x"), 64))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestControllerUploadWithoutFile(t *testing.T) {
	r, _ := setup(t, permission.ScopeAll, iammodel.User{UUID: uuid.New()}, 1024)
	doc := createDoc(t, r)
	if w := call(r, http.MethodPost, "/api/knowledge/"+doc.UUID.String()+"/attachments", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestControllerPublishAndSearchByTag(t *testing.T) {
	r, repo := setup(t, permission.ScopeAll, iammodel.User{UUID: uuid.New()}, 0)
	doc := createDoc(t, r)

	if w := call(r, http.MethodPatch, "/api/knowledge/"+doc.UUID.String()+"/publish", map[string]interface{}{}); w.Code != http.StatusBadRequest {
		t.Errorf("publish without flag status = %d", w.Code)
	}
	w := call(r, http.MethodPatch, "/api/knowledge/"+doc.UUID.String()+"/publish", map[string]interface{}{"published": true})
	if w.Code != http.StatusOK || !repo.docs[doc.UUID].Published {
		t.Fatalf("publish status = %d stored = %+v", w.Code, repo.docs[doc.UUID])
	}

	w = call(r, http.MethodGet, "/api/knowledge?tag=PORTAL", nil)
	var resp struct {
		Total int64 `json:"total"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("tag search total = %d", resp.Total)
	}

	if w := call(r, http.MethodGet, "/api/knowledge?document_type=manual", nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad type status = %d", w.Code)
	}
}
