package auth

import (
	"time"

	"case-management-system/internal/iam/domain/user"
	"case-management-system/internal/iam/permission"
)

type LoginResponse struct {
	User   user.UserResponseDto `json:"user"`
	Token  string               `json:"token"`
	Expire time.Time            `json:"expire"`
}

type PermissionDto struct {
	Name   string           `json:"name"`
	Module string           `json:"module"`
	Action string           `json:"action"`
	Scope  permission.Scope `json:"scope"`
}

type HealthcheckResponse struct {
	User        user.UserResponseDto `json:"user"`
	Permissions []PermissionDto      `json:"permissions"`
	SessionExp  time.Time            `json:"session_expires_at"`
	ServerTime  time.Time            `json:"server_time"`
}

func toPermissions(perms []permission.Permission) []PermissionDto {
	out := make([]PermissionDto, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionDto{Name: p.Name(), Module: p.Module, Action: p.Action, Scope: p.Scope})
	}
	return out
}
