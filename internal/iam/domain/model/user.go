package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	UUID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoleUUID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	TeamUUID    *uuid.UUID `gorm:"type:uuid;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Email       string     `gorm:"type:varchar(255);not null;unique"`
	Password    string     `gorm:"column:password_hash;type:varchar(255);not null"`
	Live        bool       `gorm:"not null;default:true"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreateAt    time.Time  `gorm:"column:create_at;not null;autoCreateTime"`
	UpdateAt    time.Time  `gorm:"column:update_at;not null;autoUpdateTime"`
	Role        Role       `gorm:"foreignKey:RoleUUID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Team        *Team      `gorm:"foreignKey:TeamUUID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (User) TableName() string {
	return "users"
}
