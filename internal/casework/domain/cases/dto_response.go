package cases

import (
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/casework/scoring"

	"github.com/google/uuid"
)

type CaseResponseDto struct {
	UUID                uuid.UUID              `json:"uuid"`
	NumeroCaso          string                 `json:"numero_caso"`
	Descripcion         string                 `json:"descripcion"`
	Fecha               string                 `json:"fecha"`
	Aplicacion          string                 `json:"aplicacion"`
	Estado              model.Estado           `json:"estado"`
	Observaciones       string                 `json:"observaciones"`
	HistorialCaso       int                    `json:"historial_caso"`
	ConocimientoModulo  int                    `json:"conocimiento_modulo"`
	ManipulacionDatos   int                    `json:"manipulacion_datos"`
	ClaridadDescripcion int                    `json:"claridad_descripcion"`
	CausaFallo          int                    `json:"causa_fallo"`
	Puntuacion          int                    `json:"puntuacion"`
	Clasificacion       scoring.Classification `json:"clasificacion"`
	OwnerUUID           uuid.UUID              `json:"owner_uuid"`
	TeamUUID            *uuid.UUID             `json:"team_uuid"`
	CreateAt            time.Time              `json:"create_at"`
	UpdateAt            time.Time              `json:"update_at"`
}

func ToResponse(c model.Case) CaseResponseDto {
	return CaseResponseDto{
		UUID:                c.UUID,
		NumeroCaso:          c.NumeroCaso,
		Descripcion:         c.Descripcion,
		Fecha:               model.FormatDate(&c.Fecha),
		Aplicacion:          c.Aplicacion,
		Estado:              c.Estado,
		Observaciones:       c.Observaciones,
		HistorialCaso:       c.HistorialCaso,
		ConocimientoModulo:  c.ConocimientoModulo,
		ManipulacionDatos:   c.ManipulacionDatos,
		ClaridadDescripcion: c.ClaridadDescripcion,
		CausaFallo:          c.CausaFallo,
		Puntuacion:          c.Puntuacion,
		Clasificacion:       c.Clasificacion,
		OwnerUUID:           c.OwnerUUID,
		TeamUUID:            c.TeamUUID,
		CreateAt:            c.CreateAt,
		UpdateAt:            c.UpdateAt,
	}
}

type StatsResponseDto struct {
	Total             int64            `json:"total"`
	AveragePuntuacion float64          `json:"average_puntuacion"`
	ByClasificacion   map[string]int64 `json:"by_clasificacion"`
	ByEstado          map[string]int64 `json:"by_estado"`
}
