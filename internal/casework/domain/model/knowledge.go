package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type DocumentType string

const (
	DocumentGuia          DocumentType = "guia"
	DocumentProcedimiento DocumentType = "procedimiento"
	DocumentFAQ           DocumentType = "faq"
	DocumentSolucion      DocumentType = "solucion"
)

type KnowledgeDocument struct {
	UUID         uuid.UUID             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	Title        string                `gorm:"type:varchar(255);not null" json:"title"`
	Content      string                `gorm:"type:text;not null" json:"content"`
	Summary      string                `gorm:"type:text" json:"summary"`
	DocumentType DocumentType          `gorm:"type:varchar(20);not null;index" json:"document_type"`
	Tags         pq.StringArray        `gorm:"type:text[]" json:"tags"`
	Published    bool                  `gorm:"not null;default:false" json:"published"`
	Version      int                   `gorm:"not null;default:1" json:"version"`
	ViewCount    int64                 `gorm:"not null;default:0" json:"view_count"`
	CaseUUID     *uuid.UUID            `gorm:"type:uuid;index" json:"case_uuid"`
	OwnerUUID    uuid.UUID             `gorm:"type:uuid;not null;index" json:"owner_uuid"`
	TeamUUID     *uuid.UUID            `gorm:"type:uuid;index" json:"team_uuid"`
	Attachments  []KnowledgeAttachment `gorm:"foreignKey:DocumentUUID;references:UUID" json:"attachments,omitempty"`
	CreateAt     time.Time             `gorm:"column:create_at;not null;autoCreateTime" json:"create_at"`
	UpdateAt     time.Time             `gorm:"column:update_at;not null;autoUpdateTime" json:"update_at"`
}

func (KnowledgeDocument) TableName() string {
	return "knowledge_documents"
}

type KnowledgeAttachment struct {
	UUID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	DocumentUUID uuid.UUID `gorm:"type:uuid;not null;index" json:"document_uuid"`
	FileName     string    `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType  string    `gorm:"type:varchar(255)" json:"content_type"`
	SizeBytes    int64     `gorm:"not null" json:"size_bytes"`
	Checksum     string    `gorm:"type:varchar(64);not null" json:"checksum"`
	StorageKey   string    `gorm:"type:text;not null" json:"-"`
	UploadedBy   uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
	CreateAt     time.Time `gorm:"column:create_at;not null;autoCreateTime" json:"create_at"`
}

func (KnowledgeAttachment) TableName() string {
	return "knowledge_attachments"
}
