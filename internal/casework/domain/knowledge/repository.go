package knowledge

import (
	"context"
	"errors"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var scopeColumns = permission.Columns{Owner: "knowledge_documents.owner_uuid", Team: "knowledge_documents.team_uuid"}

type ListFilter struct {
	Search       string
	Tag          string
	DocumentType model.DocumentType
	Published    *bool
	CaseUUID     *uuid.UUID
	Page         pagination.Request
}

type Repository interface {
	Create(ctx context.Context, d model.KnowledgeDocument) (model.KnowledgeDocument, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.KnowledgeDocument, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.KnowledgeDocument, int64, error)
	Update(ctx context.Context, d model.KnowledgeDocument) (model.KnowledgeDocument, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateAttachment(ctx context.Context, a model.KnowledgeAttachment) (model.KnowledgeAttachment, error)
	ReadAttachment(ctx context.Context, documentUUID, id uuid.UUID) (model.KnowledgeAttachment, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) scoped(ctx context.Context, scope permission.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.KnowledgeDocument{})
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}
	return query
}

func (r *repositoryImpl) Create(ctx context.Context, d model.KnowledgeDocument) (model.KnowledgeDocument, error) {
	if err := r.db.WithContext(ctx).Omit("Attachments").Create(&d).Error; err != nil {
		return model.KnowledgeDocument{}, mapError(err)
	}
	return d, nil
}

// Read sempre traz os anexos.
func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.KnowledgeDocument, error) {
	var d model.KnowledgeDocument
	err := r.scoped(ctx, scope).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("create_at ASC") }).
		Where("knowledge_documents.uuid = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.KnowledgeDocument{}, ErrNotFound
		}
		return model.KnowledgeDocument{}, err
	}
	return d, nil
}

func (r *repositoryImpl) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.KnowledgeDocument, int64, error) {
	query := r.scoped(ctx, scope)
	if f.Search != "" {
		like := postgres.Contains(f.Search)
		query = query.Where(
			"(knowledge_documents.title ILIKE ? OR knowledge_documents.summary ILIKE ? OR knowledge_documents.content ILIKE ?)",
			like, like, like)
	}
	if f.Tag != "" {
		query = query.Where("? = ANY(knowledge_documents.tags)", f.Tag)
	}
	if f.DocumentType != "" {
		query = query.Where("knowledge_documents.document_type = ?", f.DocumentType)
	}
	if f.Published != nil {
		query = query.Where("knowledge_documents.published = ?", *f.Published)
	}
	if f.CaseUUID != nil {
		query = query.Where("knowledge_documents.case_uuid = ?", *f.CaseUUID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.KnowledgeDocument
	err := query.Order("knowledge_documents.update_at DESC").
		Limit(f.Page.Size).Offset(f.Page.Offset()).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repositoryImpl) Update(ctx context.Context, d model.KnowledgeDocument) (model.KnowledgeDocument, error) {
	result := r.db.WithContext(ctx).Model(&model.KnowledgeDocument{UUID: d.UUID}).
		Updates(map[string]interface{}{
			"title":         d.Title,
			"content":       d.Content,
			"summary":       d.Summary,
			"document_type": d.DocumentType,
			"tags":          d.Tags,
			"published":     d.Published,
			"version":       d.Version,
			"case_uuid":     d.CaseUUID,
		})
	if result.Error != nil {
		return model.KnowledgeDocument{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.KnowledgeDocument{}, ErrNotFound
	}
	return r.Read(ctx, d.UUID, permission.Filter{Scope: permission.ScopeAll})
}

// IncrementViews não toca update_at.
func (r *repositoryImpl) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.KnowledgeDocument{}).
		Where("uuid = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.KnowledgeDocument{}, "uuid = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) CreateAttachment(ctx context.Context, a model.KnowledgeAttachment) (model.KnowledgeAttachment, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return model.KnowledgeAttachment{}, ErrNotFound
		}
		return model.KnowledgeAttachment{}, err
	}
	return a, nil
}

func (r *repositoryImpl) ReadAttachment(ctx context.Context, documentUUID, id uuid.UUID) (model.KnowledgeAttachment, error) {
	var a model.KnowledgeAttachment
	err := r.db.WithContext(ctx).Where("uuid = ? AND document_uuid = ?", id, documentUUID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.KnowledgeAttachment{}, ErrAttachmentNotFound
		}
		return model.KnowledgeAttachment{}, err
	}
	return a, nil
}

func (r *repositoryImpl) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.KnowledgeAttachment{}, "uuid = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}

func mapError(err error) error {
	if postgres.IsForeignKeyViolation(err) {
		return ErrCaseNotFound
	}
	return err
}
