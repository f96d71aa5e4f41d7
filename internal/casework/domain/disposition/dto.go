package disposition

import (
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/validation"

	"github.com/google/uuid"
)

var createRules = validation.Rules{
	"case_uuid":     "omitempty,uuid",
	"numero_caso":   "required,min=1,max=50",
	"nombre_script": "required,min=1,max=255",
	"fecha":         "required,datetime=2006-01-02",
	"aplicacion":    "required,min=1,max=100",
}

var updateRules = validation.Rules{
	"case_uuid":     "omitempty,uuid",
	"numero_caso":   "omitempty,min=1,max=50",
	"nombre_script": "omitempty,min=1,max=255",
	"fecha":         "omitempty,datetime=2006-01-02",
	"aplicacion":    "omitempty,min=1,max=100",
}

type CreateDispositionRequestDto struct {
	CaseUUID      string `json:"case_uuid"`
	NumeroCaso    string `json:"numero_caso"`
	NombreScript  string `json:"nombre_script"`
	Fecha         string `json:"fecha"`
	Aplicacion    string `json:"aplicacion"`
	Observaciones string `json:"observaciones"`
}

type UpdateDispositionRequestDto struct {
	CaseUUID      *string `json:"case_uuid"`
	NumeroCaso    *string `json:"numero_caso"`
	NombreScript  *string `json:"nombre_script"`
	Fecha         *string `json:"fecha"`
	Aplicacion    *string `json:"aplicacion"`
	Observaciones *string `json:"observaciones"`
}

type ListDispositionRequestDto struct {
	pagination.Request
	Search     string `form:"search"`
	Aplicacion string `form:"aplicacion"`
	CaseUUID   string `form:"case_uuid" binding:"omitempty,uuid"`
	FechaDesde string `form:"fecha_desde"`
	FechaHasta string `form:"fecha_hasta"`
}

type SummaryRequestDto struct {
	Year int `form:"year"`
}

type DispositionResponseDto struct {
	UUID          uuid.UUID  `json:"uuid"`
	CaseUUID      *uuid.UUID `json:"case_uuid"`
	NumeroCaso    string     `json:"numero_caso"`
	NombreScript  string     `json:"nombre_script"`
	Fecha         string     `json:"fecha"`
	Aplicacion    string     `json:"aplicacion"`
	Observaciones string     `json:"observaciones"`
	OwnerUUID     uuid.UUID  `json:"owner_uuid"`
	TeamUUID      *uuid.UUID `json:"team_uuid"`
	CreateAt      time.Time  `json:"create_at"`
	UpdateAt      time.Time  `json:"update_at"`
}

func ToResponse(d model.Disposition) DispositionResponseDto {
	return DispositionResponseDto{
		UUID:          d.UUID,
		CaseUUID:      d.CaseUUID,
		NumeroCaso:    d.NumeroCaso,
		NombreScript:  d.NombreScript,
		Fecha:         model.FormatDate(&d.Fecha),
		Aplicacion:    d.Aplicacion,
		Observaciones: d.Observaciones,
		OwnerUUID:     d.OwnerUUID,
		TeamUUID:      d.TeamUUID,
		CreateAt:      d.CreateAt,
		UpdateAt:      d.UpdateAt,
	}
}

type MonthCountDto struct {
	Month int   `json:"month"`
	Total int64 `json:"total"`
}

type SummaryResponseDto struct {
	Year   int             `json:"year"`
	Total  int64           `json:"total"`
	Months []MonthCountDto `json:"months"`
}
