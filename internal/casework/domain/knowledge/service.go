package knowledge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/storage"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FileStore é satisfeito por *storage.Local.
type FileStore interface {
	Save(r io.Reader, prefix, fileName string) (storage.Saved, error)
	Open(key string) (*os.File, error)
	Delete(key string) error
	MaxBytes() int64
}

type Patch struct {
	Title        *string
	Content      *string
	Summary      *string
	DocumentType *model.DocumentType
	Tags         *[]string
	CaseUUID     *uuid.UUID
	ClearCase    bool
}

type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
	UploadedBy  uuid.UUID
}

type Service interface {
	Create(ctx context.Context, d model.KnowledgeDocument) (model.KnowledgeDocument, error)
	View(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.KnowledgeDocument, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.KnowledgeDocument, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch, scope permission.Filter) (before, after model.KnowledgeDocument, err error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool, scope permission.Filter) (before, after model.KnowledgeDocument, err error)
	Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.KnowledgeDocument, error)
	AddAttachment(ctx context.Context, id uuid.UUID, upload Upload, scope permission.Filter) (model.KnowledgeAttachment, error)
	OpenAttachment(ctx context.Context, id, attachmentUUID uuid.UUID, scope permission.Filter) (model.KnowledgeAttachment, *os.File, error)
	DeleteAttachment(ctx context.Context, id, attachmentUUID uuid.UUID, scope permission.Filter) (model.KnowledgeAttachment, error)
}

type implService struct {
	Repository Repository
	Files      FileStore
}

func NewService(repository Repository, files FileStore) Service {
	return &implService{
		Repository: repository,
		Files:      files,
	}
}

func (s *implService) Create(ctx context.Context, d model.KnowledgeDocument) (model.KnowledgeDocument, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Summary = strings.TrimSpace(d.Summary)
	d.Tags = normalizeTags(d.Tags)
	if d.Title == "" || strings.TrimSpace(d.Content) == "" || !validType(d.DocumentType) {
		return model.KnowledgeDocument{}, ErrInvalidInput
	}
	d.Version = 1
	d.ViewCount = 0
	d.Attachments = nil
	return s.Repository.Create(ctx, d)
}

// View conta a leitura antes de devolver o documento.
func (s *implService) View(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.KnowledgeDocument, error) {
	d, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.KnowledgeDocument{}, err
	}
	if err := s.Repository.IncrementViews(ctx, id); err != nil {
		return model.KnowledgeDocument{}, err
	}
	d.ViewCount++
	return d, nil
}

func (s *implService) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.KnowledgeDocument, int64, error) {
	if f.DocumentType != "" && !validType(f.DocumentType) {
		return nil, 0, ErrInvalidInput
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Tag = strings.ToLower(strings.TrimSpace(f.Tag))
	return s.Repository.List(ctx, f, scope)
}

// Update incrementa a versão somente quando título ou conteúdo mudam.
func (s *implService) Update(ctx context.Context, id uuid.UUID, p Patch, scope permission.Filter) (model.KnowledgeDocument, model.KnowledgeDocument, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.KnowledgeDocument{}, model.KnowledgeDocument{}, err
	}

	next := before
	next.Attachments = nil
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		next.Content = *p.Content
	}
	if p.Summary != nil {
		next.Summary = strings.TrimSpace(*p.Summary)
	}
	if p.DocumentType != nil {
		next.DocumentType = *p.DocumentType
	}
	if p.Tags != nil {
		next.Tags = normalizeTags(*p.Tags)
	}
	switch {
	case p.ClearCase:
		next.CaseUUID = nil
	case p.CaseUUID != nil:
		next.CaseUUID = p.CaseUUID
	}
	if next.Title == "" || strings.TrimSpace(next.Content) == "" || !validType(next.DocumentType) {
		return model.KnowledgeDocument{}, model.KnowledgeDocument{}, ErrInvalidInput
	}
	if next.Title != before.Title || next.Content != before.Content {
		next.Version = before.Version + 1
	}

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.KnowledgeDocument{}, model.KnowledgeDocument{}, err
	}
	return before, after, nil
}

func (s *implService) SetPublished(ctx context.Context, id uuid.UUID, published bool, scope permission.Filter) (model.KnowledgeDocument, model.KnowledgeDocument, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.KnowledgeDocument{}, model.KnowledgeDocument{}, err
	}
	next := before
	next.Published = published

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.KnowledgeDocument{}, model.KnowledgeDocument{}, err
	}
	return before, after, nil
}

// Delete remove o documento (os anexos caem em cascata) e depois os arquivos.
// Falha ao apagar um arquivo não desfaz a exclusão.
func (s *implService) Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.KnowledgeDocument, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.KnowledgeDocument{}, err
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return model.KnowledgeDocument{}, err
	}
	for _, a := range before.Attachments {
		if err := s.Files.Delete(a.StorageKey); err != nil {
			slog.Warn("anexo órfão no disco",
				slog.String("component", "KNOWLEDGE"),
				slog.String("key", a.StorageKey),
				slog.Any("error", err))
		}
	}
	return before, nil
}

func (s *implService) AddAttachment(ctx context.Context, id uuid.UUID, up Upload, scope permission.Filter) (model.KnowledgeAttachment, error) {
	if _, err := s.Repository.Read(ctx, id, scope); err != nil {
		return model.KnowledgeAttachment{}, err
	}
	name := strings.TrimSpace(up.FileName)
	if name == "" {
		return model.KnowledgeAttachment{}, ErrInvalidInput
	}

	saved, err := s.Files.Save(up.Body, id.String(), name)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return model.KnowledgeAttachment{}, ErrFileTooLarge
		}
		return model.KnowledgeAttachment{}, err
	}

	created, err := s.Repository.CreateAttachment(ctx, model.KnowledgeAttachment{
		DocumentUUID: id,
		FileName:     name,
		ContentType:  up.ContentType,
		SizeBytes:    saved.Size,
		Checksum:     saved.Checksum,
		StorageKey:   saved.Key,
		UploadedBy:   up.UploadedBy,
	})
	if err != nil {
		_ = s.Files.Delete(saved.Key)
		return model.KnowledgeAttachment{}, err
	}
	return created, nil
}

func (s *implService) OpenAttachment(ctx context.Context, id, attachmentUUID uuid.UUID, scope permission.Filter) (model.KnowledgeAttachment, *os.File, error) {
	if _, err := s.Repository.Read(ctx, id, scope); err != nil {
		return model.KnowledgeAttachment{}, nil, err
	}
	a, err := s.Repository.ReadAttachment(ctx, id, attachmentUUID)
	if err != nil {
		return model.KnowledgeAttachment{}, nil, err
	}
	f, err := s.Files.Open(a.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.KnowledgeAttachment{}, nil, ErrAttachmentNotFound
		}
		return model.KnowledgeAttachment{}, nil, err
	}
	return a, f, nil
}

func (s *implService) DeleteAttachment(ctx context.Context, id, attachmentUUID uuid.UUID, scope permission.Filter) (model.KnowledgeAttachment, error) {
	if _, err := s.Repository.Read(ctx, id, scope); err != nil {
		return model.KnowledgeAttachment{}, err
	}
	a, err := s.Repository.ReadAttachment(ctx, id, attachmentUUID)
	if err != nil {
		return model.KnowledgeAttachment{}, err
	}
	if err := s.Repository.DeleteAttachment(ctx, a.UUID); err != nil {
		return model.KnowledgeAttachment{}, err
	}
	if err := s.Files.Delete(a.StorageKey); err != nil {
		slog.Warn("anexo órfão no disco",
			slog.String("component", "KNOWLEDGE"),
			slog.String("key", a.StorageKey),
			slog.Any("error", err))
	}
	return a, nil
}

// normalizeTags deixa as tags em minúsculas, sem repetição e sem vazios.
func normalizeTags(tags []string) pq.StringArray {
	seen := make(map[string]bool, len(tags))
	out := make(pq.StringArray, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func validType(t model.DocumentType) bool {
	switch t {
	case model.DocumentGuia, model.DocumentProcedimiento, model.DocumentFAQ, model.DocumentSolucion:
		return true
	default:
		return false
	}
}
