// Package scoring calcula a pontuação de complexidade de um caso e a sua
// classificação em três níveis.
package scoring

type Classification string

const (
	Baja  Classification = "Baja Complejidad"
	Media Classification = "Media Complejidad"
	Alta  Classification = "Alta Complejidad"
)

const (
	MinCriterion = 1
	MaxCriterion = 3

	MinTotal = 5 * MinCriterion
	MaxTotal = 5 * MaxCriterion

	mediaThreshold = 7
	altaThreshold  = 12
)

// Criteria agrupa os cinco critérios avaliados em cada caso (1 a 3 cada).
type Criteria struct {
	HistorialCaso       int `json:"historial_caso"`
	ConocimientoModulo  int `json:"conocimiento_modulo"`
	ManipulacionDatos   int `json:"manipulacion_datos"`
	ClaridadDescripcion int `json:"claridad_descripcion"`
	CausaFallo          int `json:"causa_fallo"`
}

type Result struct {
	Total          int            `json:"puntuacion"`
	Classification Classification `json:"clasificacion"`
}

// Score soma os critérios e classifica o total. A validação do domínio {1,2,3}
// é responsabilidade de quem chama.
func Score(c Criteria) Result {
	total := c.HistorialCaso +
		c.ConocimientoModulo +
		c.ManipulacionDatos +
		c.ClaridadDescripcion +
		c.CausaFallo

	return Result{
		Total:          total,
		Classification: Classify(total),
	}
}

func Classify(total int) Classification {
	switch {
	case total >= altaThreshold:
		return Alta
	case total >= mediaThreshold:
		return Media
	default:
		return Baja
	}
}

// Valid informa se todos os critérios estão dentro do intervalo permitido.
func (c Criteria) Valid() bool {
	for _, v := range c.values() {
		if v < MinCriterion || v > MaxCriterion {
			return false
		}
	}
	return true
}

func (c Criteria) values() []int {
	return []int{
		c.HistorialCaso,
		c.ConocimientoModulo,
		c.ManipulacionDatos,
		c.ClaridadDescripcion,
		c.CausaFallo,
	}
}

func IsValidClassification(c Classification) bool {
	switch c {
	case Baja, Media, Alta:
		return true
	default:
		return false
	}
}
