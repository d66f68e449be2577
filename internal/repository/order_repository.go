package repository

import (
	"context"

	"reunion-shop/internal/domain"
)

// OrderTx is the set of operations checkout performs inside one transaction.
type OrderTx interface {
	// FindActiveVariantsByIDs locks and returns the requested variants that are
	// active and belong to an active product, with Product populated.
	FindActiveVariantsByIDs(ctx context.Context, ids []string) ([]domain.Variant, error)
	OrderCodeExists(ctx context.Context, code string) (bool, error)
	InsertOrder(ctx context.Context, order *domain.Order) error
	DecrementVariantInventory(ctx context.Context, variantID string, amount int) error
}

type OrderFilter struct {
	Search            string
	PaymentStatus     domain.PaymentStatus
	FulfillmentStatus domain.FulfillmentStatus
	DeliveryMethod    domain.DeliveryMethod
	Page              int
	PageSize          int
}

type OrderRepository interface {
	// WithinTransaction commits when fn returns nil and rolls back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx OrderTx) error) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByCode(ctx context.Context, code string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Order, error)
}
