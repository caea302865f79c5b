package paginate

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"mytube.com/pkg/aggregate"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Params struct {
	Page  int
	Limit int
}

// ParseParams reads raw query values. Missing or non-numeric values fall
// back to the defaults, page is clamped to 1 and limit to (0, MaxLimit].
func ParseParams(page, limit string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(page); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil {
		p.Limit = n
	}
	return p.normalize()
}

func (p Params) normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the page envelope returned by every paginated read.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Runner executes pipelines. Count sees only the pipeline's count stages.
type Runner interface {
	Run(ctx context.Context, p aggregate.Pipeline, offset, limit int, dest any) error
	Count(ctx context.Context, p aggregate.Pipeline) (int64, error)
}

// Paginate runs p for one page. The total is computed over the filter and
// visibility stages only, so it reflects the whole matching set.
func Paginate[T any](ctx context.Context, r Runner, p aggregate.Pipeline, params Params) (*Page[T], error) {
	params = params.normalize()
	total, err := r.Count(ctx, p.ForCount())
	if err != nil {
		return nil, errors.WithMessage(err, "count page")
	}

	items := make([]T, 0, params.Limit)
	if int64(params.Offset()) < total {
		if err := r.Run(ctx, p, params.Offset(), params.Limit, &items); err != nil {
			return nil, errors.WithMessage(err, "run page")
		}
	}
	if items == nil {
		items = []T{}
	}
	return NewPage(items, params, total), nil
}

func NewPage[T any](items []T, params Params, total int64) *Page[T] {
	pages := (total + int64(params.Limit) - 1) / int64(params.Limit)
	return &Page[T]{
		Items:       items,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalItems:  total,
		TotalPages:  pages,
		HasNextPage: int64(params.Page) < pages,
		HasPrevPage: params.Page > 1,
	}
}
