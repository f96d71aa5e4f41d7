package auditoria_log

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeRemoved  ChangeType = "removed"
)

type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldDate    FieldType = "date"
	FieldObject  FieldType = "object"
)

// AuditLog é gravado uma única vez por operação e nunca editado.
type AuditLog struct {
	UUID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	UserUUID   *uuid.UUID `gorm:"type:uuid;index" json:"user_uuid,omitempty"`
	TeamUUID   *uuid.UUID `gorm:"type:uuid;index" json:"team_uuid,omitempty"`
	Identifier string     `gorm:"type:text" json:"identifier"`

	RayTraceCode string `gorm:"size:100;not null" json:"ray_trace_code"`

	Module     string `gorm:"column:domain;size:100;not null" json:"module"`
	Action     string `gorm:"size:100;not null" json:"action"`
	Function   string `gorm:"size:150;not null" json:"function"`
	EntityType string `gorm:"size:100" json:"entity_type,omitempty"`
	EntityID   string `gorm:"size:100;index" json:"entity_id,omitempty"`
	Success    bool   `gorm:"not null" json:"success"`
	InputData  string `gorm:"type:text" json:"input_data,omitempty"`
	OutputData string `gorm:"type:text" json:"output_data,omitempty"`

	IP        string         `gorm:"type:text" json:"ip,omitempty"`
	UserAgent string         `gorm:"type:text" json:"user_agent,omitempty"`
	Method    string         `gorm:"size:10" json:"method,omitempty"`
	Path      string         `gorm:"type:text" json:"path,omitempty"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`

	Changes []AuditEntityChange `gorm:"foreignKey:AuditLogUUID;references:UUID" json:"changes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

type AuditEntityChange struct {
	UUID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	AuditLogUUID uuid.UUID  `gorm:"type:uuid;index;not null" json:"audit_log_uuid"`
	FieldName    string     `gorm:"size:150;not null" json:"field_name"`
	FieldType    FieldType  `gorm:"size:20;not null" json:"field_type"`
	OldValue     *string    `gorm:"type:text" json:"old_value"`
	NewValue     *string    `gorm:"type:text" json:"new_value"`
	ChangeType   ChangeType `gorm:"size:20;not null" json:"change_type"`
	IsSensitive  bool       `gorm:"not null;default:false" json:"is_sensitive"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditEntityChange) TableName() string {
	return "audit_entity_changes"
}
