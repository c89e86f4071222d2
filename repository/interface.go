package repository

import (
	"context"
	"errors"

	"boutique-backoffice/models"
)

// ErrOrderNotFound is returned when the order does not exist in the source
var ErrOrderNotFound = errors.New("order not found")

// OrderRepositoryInterface defines the contract for order sources
type OrderRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (models.Order, error)
	// Update persists the given fields on the order keyed by id
	Update(ctx context.Context, id string, fields map[string]any) error
}
