// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) and contain no business logic.
package repository

import "linkmono/internal/model"

// PageQuery holds limit/offset pagination parameters and the creation-time order.
type PageQuery struct {
	Limit  int
	Offset int
	Sort   model.SortOrder
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
