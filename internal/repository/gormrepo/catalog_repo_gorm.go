package gormrepo

import (
	"context"
	"errors"
	"log"

	"reunion-shop/internal/domain"
	"reunion-shop/internal/repository"

	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("created_at ASC")
		}).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("ListActiveProducts error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("ListAllProducts error: %v", err)
		return nil, err
	}
	return out, nil
}

// CreateProduct inserts the product together with any variants attached to it.
func (r *catalogRepo) CreateProduct(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *catalogRepo) FindProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindProductByID error: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *catalogRepo) UpdateProduct(ctx context.Context, id string, fields map[string]any) (*domain.Product, error) {
	existing, err := r.FindProductByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			log.Printf("UpdateProduct error: %v", err)
			return nil, err
		}
	}
	return r.FindProductByID(ctx, id)
}

func (r *catalogRepo) CreateVariant(ctx context.Context, variant *domain.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *catalogRepo) FindVariantByID(ctx context.Context, id string) (*domain.Variant, error) {
	var v domain.Variant
	if err := r.db.WithContext(ctx).Preload("Product").Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindVariantByID error: %v", err)
		return nil, err
	}
	return &v, nil
}

func (r *catalogRepo) UpdateVariant(ctx context.Context, id string, fields map[string]any) (*domain.Variant, error) {
	existing, err := r.FindVariantByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&domain.Variant{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			log.Printf("UpdateVariant error: %v", err)
			return nil, err
		}
	}
	return r.FindVariantByID(ctx, id)
}
