package user

import (
	"time"

	"case-management-system/internal/iam/domain/model"

	"github.com/google/uuid"
)

type UserResponseDto struct {
	UUID        uuid.UUID  `json:"uuid"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	RoleUUID    uuid.UUID  `json:"role_uuid"`
	RoleName    string     `json:"role_name,omitempty"`
	TeamUUID    *uuid.UUID `json:"team_uuid"`
	TeamName    string     `json:"team_name,omitempty"`
	Live        bool       `json:"live"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreateAt    time.Time  `json:"create_at"`
	UpdateAt    time.Time  `json:"update_at"`
}

func ToResponse(u model.User) UserResponseDto {
	resp := UserResponseDto{
		UUID:        u.UUID,
		Name:        u.Name,
		Email:       u.Email,
		RoleUUID:    u.RoleUUID,
		RoleName:    u.Role.Name,
		TeamUUID:    u.TeamUUID,
		Live:        u.Live,
		LastLoginAt: u.LastLoginAt,
		CreateAt:    u.CreateAt,
		UpdateAt:    u.UpdateAt,
	}
	if u.Team != nil {
		resp.TeamName = u.Team.Name
	}
	return resp
}

// auditView inclui o hash da senha para que a troca apareça (mascarada) no diff.
type auditView struct {
	UUID         uuid.UUID  `json:"uuid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	RoleUUID     uuid.UUID  `json:"role_uuid"`
	TeamUUID     *uuid.UUID `json:"team_uuid"`
	Live         bool       `json:"live"`
	PasswordHash string     `json:"password_hash"`
}

func toAudit(u *model.User) interface{} {
	if u == nil {
		return nil
	}
	return auditView{
		UUID:         u.UUID,
		Name:         u.Name,
		Email:        u.Email,
		RoleUUID:     u.RoleUUID,
		TeamUUID:     u.TeamUUID,
		Live:         u.Live,
		PasswordHash: u.Password,
	}
}
