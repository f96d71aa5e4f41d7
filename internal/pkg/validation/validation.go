// Package validation aplica tabelas de regras (campo -> tag do validator)
// sobre o payload JSON bruto antes de convertê-lo para o DTO tipado.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"case-management-system/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Rules associa o nome do campo JSON às tags do validator.
// Números chegam como float64, portanto use min/max em vez de oneof.
type Rules map[string]interface{}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func use() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate devolve as causas ordenadas por campo; nil quando o payload é válido.
func Validate(data map[string]interface{}, rules Rules) []rest_err.Causes {
	if data == nil {
		data = map[string]interface{}{}
	}

	errs := use().ValidateMap(data, rules)
	if len(errs) == 0 {
		return nil
	}

	fields := make(map[string]string, len(errs))
	for field, v := range errs {
		fields[field] = describeValue(v)
	}
	return rest_err.NewCauses(fields)
}

// BindJSON lê o corpo como mapa, valida com rules e decodifica em dst.
func BindJSON(c *gin.Context, rules Rules, dst interface{}, traceID *string) *rest_err.RestErr {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		return rest_err.NewBadRequestError(traceID, "Corpo JSON inválido ou mal formatado.")
	}
	return Decode(body, rules, dst, traceID)
}

// Decode valida um payload já lido e o converte para dst.
func Decode(body map[string]interface{}, rules Rules, dst interface{}, traceID *string) *rest_err.RestErr {
	if causes := Validate(body, rules); causes != nil {
		return rest_err.NewBadRequestValidationError(traceID, "Dados de entrada inválidos.", causes)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return rest_err.NewBadRequestError(traceID, "Corpo JSON inválido ou mal formatado.")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return rest_err.NewBadRequestValidationError(traceID, "Dados de entrada inválidos.",
			[]rest_err.Causes{rest_err.NewCause(fieldOf(err), "tipo de dado incorreto")})
	}
	return nil
}

// describeValue trata o retorno de ValidateMap: um error por campo simples,
// ou um mapa aninhado quando a regra também é um mapa.
func describeValue(v interface{}) string {
	if err, ok := v.(error); ok {
		return describe(err)
	}
	return fmt.Sprint(v)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return message(fe.Tag(), fe.Param())
}

func message(tag, param string) string {
	switch tag {
	case "required":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "uuid", "uuid4":
		return "uuid inválido"
	case "min":
		return fmt.Sprintf("valor mínimo: %s", param)
	case "max":
		return fmt.Sprintf("valor máximo: %s", param)
	case "len":
		return fmt.Sprintf("tamanho exato: %s", param)
	case "oneof":
		return fmt.Sprintf("valores permitidos: %s", strings.ReplaceAll(param, " ", ", "))
	case "datetime":
		return fmt.Sprintf("data inválida, formato esperado: %s", param)
	case "boolean":
		return "valor booleano inválido"
	case "number", "numeric":
		return "valor numérico inválido"
	default:
		return fmt.Sprintf("falhou na regra '%s'", tag)
	}
}

func fieldOf(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	return "body"
}
