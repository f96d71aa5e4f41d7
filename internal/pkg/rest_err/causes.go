package rest_err

import "sort"

// Causes detalha a falha de um campo específico do payload.
type Causes struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewCause(field, message string) Causes {
	return Causes{
		Field:   field,
		Message: message,
	}
}

// NewCauses converte um mapa campo->mensagem em lista ordenada pelo campo.
func NewCauses(fields map[string]string) []Causes {
	if len(fields) == 0 {
		return nil
	}
	causes := make([]Causes, 0, len(fields))
	for field, message := range fields {
		causes = append(causes, NewCause(field, message))
	}
	sort.Slice(causes, func(i, j int) bool { return causes[i].Field < causes[j].Field })
	return causes
}
