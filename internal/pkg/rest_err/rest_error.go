package rest_err

import "net/http"

// Valores do campo "error", estáveis para o cliente.
const (
	ErrBadRequest          = "bad_request"
	ErrUnauthorized        = "unauthorized"
	ErrForbidden           = "forbidden"
	ErrNotFound            = "not_found"
	ErrConflict            = "conflict"
	ErrPayloadTooLarge     = "payload_too_large"
	ErrInternalServerError = "internal_server_error"
	ErrExternalProvider    = "external_provider_error"
)

// RestErr é o corpo padrão de erro de todas as rotas da API.
type RestErr struct {
	Message string   `json:"message"`
	Err     string   `json:"error"`
	Code    int      `json:"code"`
	TraceID string   `json:"trace_id,omitempty"`
	Causes  []Causes `json:"causes,omitempty"`
}

func (r *RestErr) Error() string {
	return r.Message
}

func NewRestErr(traceID *string, message, err string, code int, causes []Causes) *RestErr {
	restErr := &RestErr{
		Message: message,
		Err:     err,
		Code:    code,
		Causes:  causes,
	}
	if traceID != nil {
		restErr.TraceID = *traceID
	}
	return restErr
}

func NewBadRequestError(traceID *string, message string) *RestErr {
	return NewRestErr(traceID, message, ErrBadRequest, http.StatusBadRequest, nil)
}

func NewBadRequestValidationError(traceID *string, message string, causes []Causes) *RestErr {
	return NewRestErr(traceID, message, ErrBadRequest, http.StatusBadRequest, causes)
}

func NewInternalServerError(traceID *string, message string, causes []Causes) *RestErr {
	return NewRestErr(traceID, message, ErrInternalServerError, http.StatusInternalServerError, causes)
}

func NewNotFoundError(traceID *string, message string) *RestErr {
	return NewRestErr(traceID, message, ErrNotFound, http.StatusNotFound, nil)
}

func NewUnauthorizedError(traceID *string, message string) *RestErr {
	return NewRestErr(traceID, message, ErrUnauthorized, http.StatusUnauthorized, nil)
}

func NewForbiddenError(traceID *string, message string) *RestErr {
	return NewRestErr(traceID, message, ErrForbidden, http.StatusForbidden, nil)
}

func NewExternalProviderError(traceID *string, message string, causes []Causes) *RestErr {
	return NewRestErr(traceID, message, ErrExternalProvider, http.StatusBadGateway, causes)
}

func NewConflictValidationError(traceID *string, message string, causes []Causes) *RestErr {
	return NewRestErr(traceID, message, ErrConflict, http.StatusConflict, causes)
}

func NewPayloadTooLargeError(traceID *string, message string) *RestErr {
	return NewRestErr(traceID, message, ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, nil)
}
