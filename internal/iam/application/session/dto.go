package session

import (
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
)

type ListSessionRequestDto struct {
	pagination.Request
}

// SessionResponseDto nunca expõe o token.
type SessionResponseDto struct {
	UUID         uuid.UUID `json:"uuid"`
	UserUUID     uuid.UUID `json:"user_uuid"`
	UserName     string    `json:"user_name,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	IP           string    `json:"ip"`
	UserAgent    string    `json:"user_agent"`
	ExpiresAt    time.Time `json:"expires_at"`
	LastActivity time.Time `json:"last_activity"`
	CreateAt     time.Time `json:"create_at"`
	Current      bool      `json:"current"`
}

type RevokeOthersResponseDto struct {
	Revoked int64 `json:"revoked"`
}

func ToResponse(s model.Session, current uuid.UUID) SessionResponseDto {
	return SessionResponseDto{
		UUID:         s.UUID,
		UserUUID:     s.UserUUID,
		UserName:     s.User.Name,
		UserEmail:    s.User.Email,
		IP:           s.IP,
		UserAgent:    s.UserAgent,
		ExpiresAt:    s.ExpiresAt,
		LastActivity: s.LastActivity,
		CreateAt:     s.CreateAt,
		Current:      s.UUID == current,
	}
}
