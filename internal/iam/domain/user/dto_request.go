package user

import (
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/validation"
)

var createRules = validation.Rules{
	"name":      "required,min=2,max=255",
	"email":     "required,email,max=255",
	"password":  "required,min=8,max=128",
	"role_uuid": "required,uuid",
	"team_uuid": "omitempty,uuid",
}

// team_uuid vazio ("") remove o usuário da equipe.
var updateRules = validation.Rules{
	"name":      "omitempty,min=2,max=255",
	"email":     "omitempty,email,max=255",
	"password":  "omitempty,min=8,max=128",
	"role_uuid": "omitempty,uuid",
	"team_uuid": "omitempty,uuid",
}

type CreateUserRequestDto struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleUUID string `json:"role_uuid"`
	TeamUUID string `json:"team_uuid"`
}

type UpdateUserRequestDto struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	RoleUUID *string `json:"role_uuid"`
	TeamUUID *string `json:"team_uuid"`
}

type StatusUserRequestDto struct {
	Live *bool `json:"live"`
}

type ListUserRequestDto struct {
	pagination.Request
	Search   string `form:"search"`
	RoleUUID string `form:"role_uuid" binding:"omitempty,uuid"`
	TeamUUID string `form:"team_uuid" binding:"omitempty,uuid"`
	Live     *bool  `form:"live"`
}
