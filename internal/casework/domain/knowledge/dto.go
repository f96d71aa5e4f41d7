package knowledge

import (
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/validation"

	"github.com/google/uuid"
)

const typeRule = "oneof=guia procedimiento faq solucion"

var createRules = validation.Rules{
	"title":         "required,min=1,max=255",
	"content":       "required,min=1",
	"document_type": "required," + typeRule,
	"tags":          "omitempty,max=20,dive,min=1,max=50",
	"case_uuid":     "omitempty,uuid",
	"published":     "omitempty,boolean",
}

var updateRules = validation.Rules{
	"title":         "omitempty,min=1,max=255",
	"content":       "omitempty,min=1",
	"document_type": "omitempty," + typeRule,
	"tags":          "omitempty,max=20,dive,min=1,max=50",
	"case_uuid":     "omitempty,uuid",
}

var publishRules = validation.Rules{
	"published": "boolean",
}

type CreateDocumentRequestDto struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Summary      string   `json:"summary"`
	DocumentType string   `json:"document_type"`
	Tags         []string `json:"tags"`
	CaseUUID     string   `json:"case_uuid"`
	Published    bool     `json:"published"`
}

type UpdateDocumentRequestDto struct {
	Title        *string   `json:"title"`
	Content      *string   `json:"content"`
	Summary      *string   `json:"summary"`
	DocumentType *string   `json:"document_type"`
	Tags         *[]string `json:"tags"`
	CaseUUID     *string   `json:"case_uuid"`
}

type PublishRequestDto struct {
	Published *bool `json:"published"`
}

type ListDocumentRequestDto struct {
	pagination.Request
	Search       string `form:"search"`
	Tag          string `form:"tag"`
	DocumentType string `form:"document_type" binding:"omitempty,oneof=guia procedimiento faq solucion"`
	Published    *bool  `form:"published"`
	CaseUUID     string `form:"case_uuid" binding:"omitempty,uuid"`
}

type AttachmentResponseDto struct {
	UUID        uuid.UUID `json:"uuid"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Checksum    string    `json:"checksum"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	CreateAt    time.Time `json:"create_at"`
}

func toAttachment(a model.KnowledgeAttachment) AttachmentResponseDto {
	return AttachmentResponseDto{
		UUID:        a.UUID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		Checksum:    a.Checksum,
		UploadedBy:  a.UploadedBy,
		CreateAt:    a.CreateAt,
	}
}

type DocumentResponseDto struct {
	UUID         uuid.UUID               `json:"uuid"`
	Title        string                  `json:"title"`
	Content      string                  `json:"content"`
	Summary      string                  `json:"summary"`
	DocumentType model.DocumentType      `json:"document_type"`
	Tags         []string                `json:"tags"`
	Published    bool                    `json:"published"`
	Version      int                     `json:"version"`
	ViewCount    int64                   `json:"view_count"`
	CaseUUID     *uuid.UUID              `json:"case_uuid"`
	OwnerUUID    uuid.UUID               `json:"owner_uuid"`
	TeamUUID     *uuid.UUID              `json:"team_uuid"`
	Attachments  []AttachmentResponseDto `json:"attachments,omitempty"`
	CreateAt     time.Time               `json:"create_at"`
	UpdateAt     time.Time               `json:"update_at"`
}

func ToResponse(d model.KnowledgeDocument) DocumentResponseDto {
	out := DocumentResponseDto{
		UUID:         d.UUID,
		Title:        d.Title,
		Content:      d.Content,
		Summary:      d.Summary,
		DocumentType: d.DocumentType,
		Tags:         []string(d.Tags),
		Published:    d.Published,
		Version:      d.Version,
		ViewCount:    d.ViewCount,
		CaseUUID:     d.CaseUUID,
		OwnerUUID:    d.OwnerUUID,
		TeamUUID:     d.TeamUUID,
		CreateAt:     d.CreateAt,
		UpdateAt:     d.UpdateAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	for _, a := range d.Attachments {
		out.Attachments = append(out.Attachments, toAttachment(a))
	}
	return out
}

// auditView deixa de fora view_count, que muda a cada leitura.
type auditView struct {
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Summary      string             `json:"summary"`
	DocumentType model.DocumentType `json:"document_type"`
	Tags         []string           `json:"tags"`
	Published    bool               `json:"published"`
	Version      int                `json:"version"`
	CaseUUID     *uuid.UUID         `json:"case_uuid"`
}

func toAudit(d *model.KnowledgeDocument) interface{} {
	if d == nil {
		return nil
	}
	return auditView{
		Title:        d.Title,
		Content:      d.Content,
		Summary:      d.Summary,
		DocumentType: d.DocumentType,
		Tags:         []string(d.Tags),
		Published:    d.Published,
		Version:      d.Version,
		CaseUUID:     d.CaseUUID,
	}
}
