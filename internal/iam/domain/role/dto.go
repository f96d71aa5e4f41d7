package role

import (
	"sort"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/validation"

	"github.com/google/uuid"
)

var createRules = validation.Rules{
	"name":             "required,min=3,max=100",
	"description":      "omitempty,max=1000",
	"permission_uuids": "omitempty,dive,uuid",
}

var updateRules = validation.Rules{
	"name":        "omitempty,min=3,max=100",
	"description": "omitempty,max=1000",
}

var grantRules = validation.Rules{
	"permission_uuids": "required,dive,uuid",
}

type CreateRoleRequestDto struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	PermissionUUIDs []string `json:"permission_uuids"`
}

type UpdateRoleRequestDto struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ReplacePermissionsRequestDto struct {
	PermissionUUIDs []string `json:"permission_uuids"`
}

type PermissionResponseDto struct {
	UUID        uuid.UUID        `json:"uuid"`
	Name        string           `json:"name"`
	Module      string           `json:"module"`
	Action      string           `json:"action"`
	Scope       permission.Scope `json:"scope"`
	Description string           `json:"description"`
}

type RoleResponseDto struct {
	UUID        uuid.UUID               `json:"uuid"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	System      bool                    `json:"system"`
	Permissions []PermissionResponseDto `json:"permissions"`
	CreateAt    time.Time               `json:"create_at"`
	UpdateAt    time.Time               `json:"update_at"`
}

func toPermission(p model.Permission) PermissionResponseDto {
	return PermissionResponseDto{
		UUID:        p.UUID,
		Name:        permission.Name(p.Module, p.Action),
		Module:      p.Module,
		Action:      p.Action,
		Scope:       p.Scope,
		Description: p.Description,
	}
}

func ToResponse(r model.Role) RoleResponseDto {
	perms := make([]PermissionResponseDto, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, toPermission(p))
	}
	return RoleResponseDto{
		UUID:        r.UUID,
		Name:        r.Name,
		Description: r.Description,
		System:      r.System,
		Permissions: perms,
		CreateAt:    r.CreateAt,
		UpdateAt:    r.UpdateAt,
	}
}

// auditView reduz as permissões a uma lista ordenada "module:action:scope".
func auditView(r *model.Role) interface{} {
	if r == nil {
		return nil
	}
	grants := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		grants = append(grants, p.Module+":"+p.Action+":"+string(p.Scope))
	}
	sort.Strings(grants)
	return map[string]interface{}{
		"uuid":        r.UUID.String(),
		"name":        r.Name,
		"description": r.Description,
		"permissions": grants,
	}
}
