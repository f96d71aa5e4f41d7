package team

import (
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/validation"
)

var createRules = validation.Rules{
	"code":        "required,min=2,max=50",
	"name":        "required,min=2,max=255",
	"description": "omitempty,max=1000",
}

var updateRules = validation.Rules{
	"code":        "omitempty,min=2,max=50",
	"name":        "omitempty,min=2,max=255",
	"description": "omitempty,max=1000",
}

var memberRules = validation.Rules{
	"user_uuid": "required,uuid",
}

type CreateTeamRequestDto struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateTeamRequestDto struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Live        *bool   `json:"live"`
}

type AddMemberRequestDto struct {
	UserUUID string `json:"user_uuid"`
}

type ListTeamRequestDto struct {
	pagination.Request
	Search string `form:"search"`
}
