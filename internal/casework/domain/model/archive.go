package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ArchivedCase guarda o caso completo como JSON. Dono e equipe são copiados
// do caso original para que o escopo continue valendo após o arquivamento.
type ArchivedCase struct {
	UUID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	OriginalUUID uuid.UUID      `gorm:"type:uuid;not null;index" json:"original_uuid"`
	NumeroCaso   string         `gorm:"column:numero_caso;type:varchar(50);not null;index" json:"numero_caso"`
	Snapshot     datatypes.JSON `gorm:"type:jsonb;not null" json:"snapshot"`
	Reason       string         `gorm:"type:text" json:"reason"`
	ArchivedBy   uuid.UUID      `gorm:"type:uuid;not null" json:"archived_by"`
	OwnerUUID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_uuid"`
	TeamUUID     *uuid.UUID     `gorm:"type:uuid;index" json:"team_uuid"`
	ArchivedAt   time.Time      `gorm:"not null;autoCreateTime" json:"archived_at"`
}

func (ArchivedCase) TableName() string {
	return "archived_cases"
}
