package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"reunion-shop/internal/domain"
	"reunion-shop/internal/infra/cache"
	"reunion-shop/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	catalogCacheKey    = "catalog:products"
	catalogLoadTimeout = 10 * time.Second
)

// pricePendingLabel is accepted from the admin console in place of a price.
const pricePendingLabel = "待定"

// MaxPriceCents caps a variant price at 1,000,000.00 so that a full cart
// total always fits in int64.
const MaxPriceCents int64 = 100_000_000

type CatalogService struct {
	repo  repository.CatalogRepository
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCatalogService(r repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: r, ttl: time.Minute}
}

func (s *CatalogService) SetCache(c cache.Cache, ttl time.Duration) {
	s.cache = c
	if ttl > 0 {
		s.ttl = ttl
	}
}

// ListActiveProducts serves the public catalog, reading through the cache.
// Concurrent misses share one database load, which is not tied to the
// cancellation of whichever request started it.
func (s *CatalogService) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
			var products []domain.Product
			if err := json.Unmarshal(b, &products); err == nil {
				return products, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Printf("[CatalogService] cache read failed: %v", err)
		}
	}

	v, err, _ := s.group.Do(catalogCacheKey, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogLoadTimeout)
		defer cancel()
		return s.loadAndCache(loadCtx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (s *CatalogService) loadAndCache(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	if s.cache != nil {
		if data, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, data, s.ttl); err != nil {
				log.Printf("[CatalogService] cache write failed: %v", err)
			}
		}
	}
	return products, nil
}

// Warmup reloads the cached catalog from the database.
func (s *CatalogService) Warmup(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	_, err := s.loadAndCache(ctx)
	return err
}

func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, catalogCacheKey)
}

func (s *CatalogService) invalidateQuietly(ctx context.Context) {
	if err := s.Invalidate(ctx); err != nil {
		log.Printf("[CatalogService] failed to invalidate cache: %v", err)
	}
}

func (s *CatalogService) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// ParsePriceToCents converts an admin-entered amount such as "12.5" to cents.
// Blank input or the pending label yields nil.
func ParsePriceToCents(input string) (*int64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.EqualFold(trimmed, pricePendingLabel) {
		return nil, nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPrice, input)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %q is negative", domain.ErrInvalidPrice, input)
	}
	shifted := d.Shift(2).Round(0)
	if shifted.GreaterThan(decimal.NewFromInt(MaxPriceCents)) {
		return nil, fmt.Errorf("%w: %q exceeds %s", domain.ErrInvalidPrice, input, decimal.New(MaxPriceCents, -2).StringFixed(2))
	}
	cents := shifted.IntPart()
	return &cents, nil
}

type NewVariantInput struct {
	Name      string  `json:"name"`
	Price     *string `json:"price"`
	Inventory *int    `json:"inventory"`
}

func (in NewVariantInput) build(field string, verr *domain.ValidationError) domain.Variant {
	v := domain.Variant{
		Name:      strings.TrimSpace(in.Name),
		Inventory: in.Inventory,
		IsActive:  true,
	}
	if v.Name == "" {
		verr.Add(field+"name", "is required")
	}
	if in.Inventory != nil && *in.Inventory < 0 {
		verr.Add(field+"inventory", "must not be negative")
	}
	if in.Price != nil {
		price, err := ParsePriceToCents(*in.Price)
		if err != nil {
			verr.Add(field+"price", err.Error())
		}
		v.Price = price
	}
	return v
}

type NewProductInput struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	CoverImage  *string           `json:"coverImage"`
	Variants    []NewVariantInput `json:"variants"`
}

func (s *CatalogService) CreateProduct(ctx context.Context, in NewProductInput) (*domain.Product, error) {
	verr := domain.NewValidationError()
	p := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: trimmedOptional(in.Description),
		CoverImage:  trimmedOptional(in.CoverImage),
		IsActive:    true,
	}
	if p.Name == "" {
		verr.Add("name", "is required")
	}
	if len(in.Variants) == 0 {
		verr.Add("variants", "must contain at least 1 items")
	}
	for i, vin := range in.Variants {
		p.Variants = append(p.Variants, vin.build(fmt.Sprintf("variants[%d].", i), verr))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateQuietly(ctx)
	log.Printf("[CatalogService] product %s created with %d variants", p.ID, len(p.Variants))
	return p, nil
}

type ProductPatch struct {
	Name        *string          `json:"name"`
	Description Optional[string] `json:"description"`
	CoverImage  Optional[string] `json:"coverImage"`
	IsActive    *bool            `json:"isActive"`
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error) {
	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			verr := domain.NewValidationError()
			verr.Add("name", "is required")
			return nil, verr
		}
		fields["name"] = name
	}
	if patch.Description.Set {
		fields["description"] = trimmedOptional(patch.Description.Value)
	}
	if patch.CoverImage.Set {
		fields["cover_image"] = trimmedOptional(patch.CoverImage.Value)
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	p, err := s.repo.UpdateProduct(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	s.invalidateQuietly(ctx)
	return p, nil
}

// DeactivateProduct is a soft delete; orders keep referencing the product.
func (s *CatalogService) DeactivateProduct(ctx context.Context, id string) error {
	inactive := false
	_, err := s.UpdateProduct(ctx, id, ProductPatch{IsActive: &inactive})
	return err
}

func (s *CatalogService) AddVariant(ctx context.Context, productID string, in NewVariantInput) (*domain.Variant, error) {
	verr := domain.NewValidationError()
	v := in.build("", verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	p, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}

	v.ProductID = p.ID
	if err := s.repo.CreateVariant(ctx, &v); err != nil {
		return nil, err
	}
	s.invalidateQuietly(ctx)
	return &v, nil
}

// VariantPatch: price is a decimal string in currency units; null or the
// pending label clears it. A null inventory means stock is not tracked.
type VariantPatch struct {
	Name      *string          `json:"name"`
	Price     Optional[string] `json:"price"`
	Inventory Optional[int]    `json:"inventory"`
	IsActive  *bool            `json:"isActive"`
}

func (s *CatalogService) UpdateVariant(ctx context.Context, id string, patch VariantPatch) (*domain.Variant, error) {
	verr := domain.NewValidationError()
	fields := map[string]any{}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			verr.Add("name", "is required")
		}
		fields["name"] = name
	}
	if patch.Price.Set {
		var price *int64
		if patch.Price.Value != nil {
			p, err := ParsePriceToCents(*patch.Price.Value)
			if err != nil {
				verr.Add("price", err.Error())
			}
			price = p
		}
		fields["price"] = price
	}
	if patch.Inventory.Set {
		if patch.Inventory.Value != nil && *patch.Inventory.Value < 0 {
			verr.Add("inventory", "must not be negative")
		}
		fields["inventory"] = patch.Inventory.Value
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	v, err := s.repo.UpdateVariant(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVariantNotFound
	}
	s.invalidateQuietly(ctx)
	return v, nil
}

func (s *CatalogService) DeactivateVariant(ctx context.Context, id string) error {
	inactive := false
	_, err := s.UpdateVariant(ctx, id, VariantPatch{IsActive: &inactive})
	return err
}

func trimmedOptional(s *string) *string {
	if s == nil {
		return nil
	}
	return trimmedPtr(*s)
}
