package cases

import (
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/validation"
)

const estadoRule = "oneof=nuevo en_progreso pendiente resuelto cerrado"

var criteriaRules = validation.Rules{
	"historial_caso":       "required,min=1,max=3",
	"conocimiento_modulo":  "required,min=1,max=3",
	"manipulacion_datos":   "required,min=1,max=3",
	"claridad_descripcion": "required,min=1,max=3",
	"causa_fallo":          "required,min=1,max=3",
}

var createRules = merge(validation.Rules{
	"numero_caso":   "required,min=1,max=50",
	"descripcion":   "required,min=1",
	"fecha":         "required,datetime=2006-01-02",
	"aplicacion":    "required,min=1,max=100",
	"estado":        "omitempty," + estadoRule,
}, criteriaRules)

// Critérios ausentes mantêm a pontuação atual.
var updateRules = validation.Rules{
	"numero_caso":          "omitempty,min=1,max=50",
	"descripcion":          "omitempty,min=1",
	"fecha":                "omitempty,datetime=2006-01-02",
	"aplicacion":           "omitempty,min=1,max=100",
	"estado":               "omitempty," + estadoRule,
	"historial_caso":       "omitempty,min=1,max=3",
	"conocimiento_modulo":  "omitempty,min=1,max=3",
	"manipulacion_datos":   "omitempty,min=1,max=3",
	"claridad_descripcion": "omitempty,min=1,max=3",
	"causa_fallo":          "omitempty,min=1,max=3",
}

func merge(a, b validation.Rules) validation.Rules {
	out := make(validation.Rules, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

type CriteriaRequestDto struct {
	HistorialCaso       int `json:"historial_caso"`
	ConocimientoModulo  int `json:"conocimiento_modulo"`
	ManipulacionDatos   int `json:"manipulacion_datos"`
	ClaridadDescripcion int `json:"claridad_descripcion"`
	CausaFallo          int `json:"causa_fallo"`
}

type CreateCaseRequestDto struct {
	NumeroCaso    string `json:"numero_caso"`
	Descripcion   string `json:"descripcion"`
	Fecha         string `json:"fecha"`
	Aplicacion    string `json:"aplicacion"`
	Estado        string `json:"estado"`
	Observaciones string `json:"observaciones"`
	CriteriaRequestDto
}

type UpdateCaseRequestDto struct {
	NumeroCaso          *string `json:"numero_caso"`
	Descripcion         *string `json:"descripcion"`
	Fecha               *string `json:"fecha"`
	Aplicacion          *string `json:"aplicacion"`
	Estado              *string `json:"estado"`
	Observaciones       *string `json:"observaciones"`
	HistorialCaso       *int    `json:"historial_caso"`
	ConocimientoModulo  *int    `json:"conocimiento_modulo"`
	ManipulacionDatos   *int    `json:"manipulacion_datos"`
	ClaridadDescripcion *int    `json:"claridad_descripcion"`
	CausaFallo          *int    `json:"causa_fallo"`
}

type ListCaseRequestDto struct {
	pagination.Request
	Estado        string `form:"estado"`
	Clasificacion string `form:"clasificacion"`
	Aplicacion    string `form:"aplicacion"`
	Search        string `form:"search"`
	FechaDesde    string `form:"fecha_desde"`
	FechaHasta    string `form:"fecha_hasta"`
}
