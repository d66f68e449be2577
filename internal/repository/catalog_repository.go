package repository

import (
	"context"

	"reunion-shop/internal/domain"
)

type CatalogRepository interface {
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)
	ListAllProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	FindProductByID(ctx context.Context, id string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, fields map[string]any) (*domain.Product, error)
	CreateVariant(ctx context.Context, variant *domain.Variant) error
	FindVariantByID(ctx context.Context, id string) (*domain.Variant, error)
	UpdateVariant(ctx context.Context, id string, fields map[string]any) (*domain.Variant, error)
}
