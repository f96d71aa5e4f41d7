package model

import (
	"time"

	"github.com/google/uuid"
)

// Disposition registra a execução de um script de tratamento sobre um caso.
type Disposition struct {
	UUID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	CaseUUID      *uuid.UUID `gorm:"type:uuid;index" json:"case_uuid"`
	NumeroCaso    string     `gorm:"column:numero_caso;type:varchar(50);not null;index" json:"numero_caso"`
	NombreScript  string     `gorm:"column:nombre_script;type:varchar(255);not null" json:"nombre_script"`
	Fecha         time.Time  `gorm:"type:date;not null;index" json:"fecha"`
	Aplicacion    string     `gorm:"type:varchar(100);not null" json:"aplicacion"`
	Observaciones string     `gorm:"type:text" json:"observaciones"`
	OwnerUUID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_uuid"`
	TeamUUID      *uuid.UUID `gorm:"type:uuid;index" json:"team_uuid"`
	CreateAt      time.Time  `gorm:"column:create_at;not null;autoCreateTime" json:"create_at"`
	UpdateAt      time.Time  `gorm:"column:update_at;not null;autoUpdateTime" json:"update_at"`
}

func (Disposition) TableName() string {
	return "dispositions"
}
