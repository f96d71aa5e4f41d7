package pagination

import "errors"

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

var ErrPageSize = errors.New("page size above limit")

// Request é embutido nos DTOs de listagem (?page=&size=).
type Request struct {
	Page int `form:"page" json:"page"`
	Size int `form:"size" json:"size"`
}

// Normalize aplica os padrões; size acima de MaxSize é erro, não truncamento.
func (r Request) Normalize() (Request, error) {
	if r.Size > MaxSize {
		return r, ErrPageSize
	}
	if r.Page <= 0 {
		r.Page = DefaultPage
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	return r, nil
}

func (r Request) Offset() int {
	if r.Page <= 0 {
		return 0
	}
	return (r.Page - 1) * r.Size
}

type Response[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

func NewResponse[T any](items []T, req Request, total int64) Response[T] {
	if items == nil {
		items = []T{}
	}
	return Response[T]{Items: items, Page: req.Page, Size: req.Size, Total: total}
}
