package model

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityBaja  Priority = "baja"
	PriorityMedia Priority = "media"
	PriorityAlta  Priority = "alta"
)

type Todo struct {
	UUID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Priority    Priority   `gorm:"type:varchar(10);not null;default:media" json:"priority"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	Completed   bool       `gorm:"not null;default:false;index" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CaseUUID    *uuid.UUID `gorm:"type:uuid;index" json:"case_uuid"`
	OwnerUUID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_uuid"`
	TeamUUID    *uuid.UUID `gorm:"type:uuid;index" json:"team_uuid"`
	CreateAt    time.Time  `gorm:"column:create_at;not null;autoCreateTime" json:"create_at"`
	UpdateAt    time.Time  `gorm:"column:update_at;not null;autoUpdateTime" json:"update_at"`
}

func (Todo) TableName() string {
	return "todos"
}

// SetCompleted mantém completed_at coerente com a flag.
func (t *Todo) SetCompleted(done bool, at time.Time) {
	t.Completed = done
	if done {
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
}
