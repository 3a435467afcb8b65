// Package repository contains data access abstractions. Implementations live in
// subpackages (postgres).
package repository

import (
	"context"
	"errors"
	"math"
)

// ErrInvalidSort is returned when a sort order names a property the store does not know.
var ErrInvalidSort = errors.New("invalid sort property")

// Repository is the persistence contract for one entity kind. No business logic:
// strictly SQL operations.
type Repository[D any] interface {
	// Create inserts a new row; the returned record carries the generated id.
	Create(ctx context.Context, rec *D) (*D, error)

	// Update overwrites every column of the row identified by id.
	// Returns sql.ErrNoRows when the row does not exist.
	Update(ctx context.Context, id int64, rec *D) (*D, error)

	// FindByID returns the row or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*D, error)

	// FindAll returns every row ordered by id.
	FindAll(ctx context.Context) ([]D, error)

	// List returns one page of rows and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[D], error)

	// ExistsByID reports whether a row with the id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Delete removes a row by id. It returns nil if the row did not exist.
	Delete(ctx context.Context, id int64) error
}

// Direction of a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order sorts by one property (a JSON field name of the entity).
type Order struct {
	Property  string
	Direction Direction
}

// PageQuery holds zero-based page/size pagination and sort orders.
type PageQuery struct {
	Page int
	Size int
	Sort []Order
}

// Limit is the SQL LIMIT for the page.
func (pq PageQuery) Limit() int {
	return pq.Size
}

// Offset is the SQL OFFSET for the page, saturating at math.MaxInt.
func (pq PageQuery) Offset() int {
	if pq.Page <= 0 || pq.Size <= 0 {
		return 0
	}
	if pq.Page > math.MaxInt/pq.Size {
		return math.MaxInt
	}
	return pq.Page * pq.Size
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int64
}

// TotalPages is ceil(Total/Size), zero when Size is zero.
func (p *PageResult[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}
