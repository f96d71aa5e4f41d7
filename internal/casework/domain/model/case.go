package model

import (
	"time"

	"case-management-system/internal/casework/scoring"

	"github.com/google/uuid"
)

type Estado string

const (
	EstadoNuevo      Estado = "nuevo"
	EstadoEnProgreso Estado = "en_progreso"
	EstadoPendiente  Estado = "pendiente"
	EstadoResuelto   Estado = "resuelto"
	EstadoCerrado    Estado = "cerrado"
)

// Estados na ordem do fluxo de atendimento.
var Estados = []Estado{EstadoNuevo, EstadoEnProgreso, EstadoPendiente, EstadoResuelto, EstadoCerrado}

func IsValidEstado(e Estado) bool {
	for _, v := range Estados {
		if v == e {
			return true
		}
	}
	return false
}

// Case é o registro de atendimento. Puntuacion e Clasificacion são sempre
// gravados junto com os critérios que os originaram.
type Case struct {
	UUID                uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	NumeroCaso          string                 `gorm:"column:numero_caso;type:varchar(50);not null;unique" json:"numero_caso"`
	Descripcion         string                 `gorm:"type:text;not null" json:"descripcion"`
	Fecha               time.Time              `gorm:"type:date;not null" json:"fecha"`
	Aplicacion          string                 `gorm:"type:varchar(100);not null;index" json:"aplicacion"`
	Estado              Estado                 `gorm:"type:varchar(20);not null;default:nuevo;index" json:"estado"`
	Observaciones       string                 `gorm:"type:text" json:"observaciones"`
	HistorialCaso       int                    `gorm:"not null" json:"historial_caso"`
	ConocimientoModulo  int                    `gorm:"not null" json:"conocimiento_modulo"`
	ManipulacionDatos   int                    `gorm:"not null" json:"manipulacion_datos"`
	ClaridadDescripcion int                    `gorm:"not null" json:"claridad_descripcion"`
	CausaFallo          int                    `gorm:"not null" json:"causa_fallo"`
	Puntuacion          int                    `gorm:"not null" json:"puntuacion"`
	Clasificacion       scoring.Classification `gorm:"type:varchar(30);not null;index" json:"clasificacion"`
	OwnerUUID           uuid.UUID              `gorm:"type:uuid;not null;index" json:"owner_uuid"`
	TeamUUID            *uuid.UUID             `gorm:"type:uuid;index" json:"team_uuid"`
	CreateAt            time.Time              `gorm:"column:create_at;not null;autoCreateTime" json:"create_at"`
	UpdateAt            time.Time              `gorm:"column:update_at;not null;autoUpdateTime" json:"update_at"`
}

func (Case) TableName() string {
	return "cases"
}

func (c Case) Criteria() scoring.Criteria {
	return scoring.Criteria{
		HistorialCaso:       c.HistorialCaso,
		ConocimientoModulo:  c.ConocimientoModulo,
		ManipulacionDatos:   c.ManipulacionDatos,
		ClaridadDescripcion: c.ClaridadDescripcion,
		CausaFallo:          c.CausaFallo,
	}
}

// ApplyScore grava os critérios e o resultado calculado no registro.
func (c *Case) ApplyScore(criteria scoring.Criteria) scoring.Result {
	c.HistorialCaso = criteria.HistorialCaso
	c.ConocimientoModulo = criteria.ConocimientoModulo
	c.ManipulacionDatos = criteria.ManipulacionDatos
	c.ClaridadDescripcion = criteria.ClaridadDescripcion
	c.CausaFallo = criteria.CausaFallo

	result := scoring.Score(criteria)
	c.Puntuacion = result.Total
	c.Clasificacion = result.Classification
	return result
}

// DateLayout é o formato das datas de calendário trafegadas na API.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseOptionalDate trata "" como ausente.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
