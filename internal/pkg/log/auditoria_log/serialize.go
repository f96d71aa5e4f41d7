package auditoria_log

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SerializeData tenta converter o payload para JSON; se falhar, retorna a
// representação formatada com fmt.
func SerializeData(data interface{}) string {
	if data == nil {
		return ""
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%+v", data)
	}

	return string(raw)
}

// Snapshot converte uma entidade em mapa de campos usando a mesma
// serialização JSON das respostas. nil representa "registro inexistente".
func Snapshot(entity interface{}) map[string]interface{} {
	if entity == nil {
		return nil
	}
	if m, ok := entity.(map[string]interface{}); ok {
		return m
	}

	raw, err := json.Marshal(entity)
	if err != nil {
		return nil
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		// entidades que não serializam como objeto não geram diff
		return nil
	}
	return fields
}

// serializeValue gera a representação textual estável de um valor já
// decodificado de JSON. nil não possui representação.
func serializeValue(v interface{}) *string {
	var s string
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		s = val
	case bool:
		s = strconv.FormatBool(val)
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		s = val.String()
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			s = fmt.Sprintf("%v", val)
		} else {
			s = string(raw)
		}
	}
	return &s
}

func inferType(v interface{}) FieldType {
	switch val := v.(type) {
	case string:
		if _, err := time.Parse(time.RFC3339Nano, val); err == nil {
			return FieldDate
		}
		return FieldString
	case bool:
		return FieldBoolean
	case float64, json.Number, int, int64:
		return FieldNumber
	default:
		return FieldObject
	}
}
