package audit

import (
	"time"

	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
)

type ListAuditRequestDto struct {
	pagination.Request
	Module     string `form:"module"`
	Action     string `form:"action"`
	UserUUID   string `form:"user_uuid" binding:"omitempty,uuid"`
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type ChangeResponseDto struct {
	FieldName   string                   `json:"field_name"`
	FieldType   auditoria_log.FieldType  `json:"field_type"`
	OldValue    *string                  `json:"old_value"`
	NewValue    *string                  `json:"new_value"`
	ChangeType  auditoria_log.ChangeType `json:"change_type"`
	IsSensitive bool                     `json:"is_sensitive"`
}

type AuditResponseDto struct {
	UUID         uuid.UUID           `json:"uuid"`
	UserUUID     *uuid.UUID          `json:"user_uuid"`
	TeamUUID     *uuid.UUID          `json:"team_uuid"`
	Identifier   string              `json:"identifier"`
	RayTraceCode string              `json:"ray_trace_code"`
	Module       string              `json:"module"`
	Action       string              `json:"action"`
	Function     string              `json:"function"`
	EntityType   string              `json:"entity_type"`
	EntityID     string              `json:"entity_id"`
	Success      bool                `json:"success"`
	InputData    string              `json:"input_data,omitempty"`
	OutputData   string              `json:"output_data,omitempty"`
	IP           string              `json:"ip,omitempty"`
	UserAgent    string              `json:"user_agent,omitempty"`
	Method       string              `json:"method,omitempty"`
	Path         string              `json:"path,omitempty"`
	Changes      []ChangeResponseDto `json:"changes"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ToResponse nunca expõe o valor de campos sensíveis.
func ToResponse(a auditoria_log.AuditLog) AuditResponseDto {
	out := AuditResponseDto{
		UUID:         a.UUID,
		UserUUID:     a.UserUUID,
		TeamUUID:     a.TeamUUID,
		Identifier:   a.Identifier,
		RayTraceCode: a.RayTraceCode,
		Module:       a.Module,
		Action:       a.Action,
		Function:     a.Function,
		EntityType:   a.EntityType,
		EntityID:     a.EntityID,
		Success:      a.Success,
		InputData:    a.InputData,
		OutputData:   a.OutputData,
		IP:           a.IP,
		UserAgent:    a.UserAgent,
		Method:       a.Method,
		Path:         a.Path,
		Changes:      make([]ChangeResponseDto, 0, len(a.Changes)),
		CreatedAt:    a.CreatedAt,
	}
	for _, ch := range a.Changes {
		item := ChangeResponseDto{
			FieldName:   ch.FieldName,
			FieldType:   ch.FieldType,
			OldValue:    ch.OldValue,
			NewValue:    ch.NewValue,
			ChangeType:  ch.ChangeType,
			IsSensitive: ch.IsSensitive,
		}
		if ch.IsSensitive {
			item.OldValue, item.NewValue = nil, nil
		}
		out.Changes = append(out.Changes, item)
	}
	return out
}
