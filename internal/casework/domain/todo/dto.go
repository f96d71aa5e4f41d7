package todo

import (
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/validation"

	"github.com/google/uuid"
)

var createRules = validation.Rules{
	"title":     "required,min=1,max=255",
	"priority":  "omitempty,oneof=baja media alta",
	"due_date":  "omitempty,datetime=2006-01-02",
	"case_uuid": "omitempty,uuid",
}

// due_date e case_uuid vazios ("") limpam o campo.
var updateRules = validation.Rules{
	"title":     "omitempty,min=1,max=255",
	"priority":  "omitempty,oneof=baja media alta",
	"due_date":  "omitempty,datetime=2006-01-02",
	"case_uuid": "omitempty,uuid",
}

type CreateTodoRequestDto struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	CaseUUID    string `json:"case_uuid"`
}

type UpdateTodoRequestDto struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	CaseUUID    *string `json:"case_uuid"`
	Completed   *bool   `json:"completed"`
}

type ListTodoRequestDto struct {
	pagination.Request
	Completed *bool  `form:"completed"`
	Priority  string `form:"priority" binding:"omitempty,oneof=baja media alta"`
	CaseUUID  string `form:"case_uuid" binding:"omitempty,uuid"`
}

type TodoResponseDto struct {
	UUID        uuid.UUID      `json:"uuid"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority"`
	DueDate     string         `json:"due_date,omitempty"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completed_at"`
	CaseUUID    *uuid.UUID     `json:"case_uuid"`
	OwnerUUID   uuid.UUID      `json:"owner_uuid"`
	TeamUUID    *uuid.UUID     `json:"team_uuid"`
	CreateAt    time.Time      `json:"create_at"`
	UpdateAt    time.Time      `json:"update_at"`
}

func ToResponse(t model.Todo) TodoResponseDto {
	return TodoResponseDto{
		UUID:        t.UUID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     model.FormatDate(t.DueDate),
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		CaseUUID:    t.CaseUUID,
		OwnerUUID:   t.OwnerUUID,
		TeamUUID:    t.TeamUUID,
		CreateAt:    t.CreateAt,
		UpdateAt:    t.UpdateAt,
	}
}
