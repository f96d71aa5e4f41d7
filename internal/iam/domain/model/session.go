package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	UUID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserUUID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Token        string     `gorm:"type:text;not null;unique"`
	IP           string     `gorm:"type:varchar(64)"`
	UserAgent    string     `gorm:"type:text"`
	ExpiresAt    time.Time  `gorm:"column:expires_at;not null"`
	LastActivity time.Time  `gorm:"column:last_activity;not null"`
	RevokedAt    *time.Time `gorm:"column:revoked_at"`
	CreateAt     time.Time  `gorm:"column:create_at;not null;autoCreateTime"`
	User         User       `gorm:"foreignKey:UserUUID"`
}

func (Session) TableName() string {
	return "user_sessions"
}

// Active informa se a sessão ainda pode autenticar requisições.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
