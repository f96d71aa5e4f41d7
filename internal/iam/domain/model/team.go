package model

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	UUID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	Code        string    `gorm:"type:varchar(50);not null;unique" json:"code"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Live        bool      `gorm:"type:boolean;not null;default:true" json:"live"`
	CreateAt    time.Time `gorm:"column:create_at;not null;autoCreateTime" json:"create_at"`
	UpdateAt    time.Time `gorm:"column:update_at;not null;autoUpdateTime" json:"update_at"`
}

func (Team) TableName() string {
	return "teams"
}
