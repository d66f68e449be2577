package gormrepo

import (
	"context"
	"errors"
	"log"
	"strings"

	"reunion-shop/internal/domain"
	"reunion-shop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) WithinTransaction(ctx context.Context, fn func(tx repository.OrderTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderTx{db: tx})
	})
}

type orderTx struct {
	db *gorm.DB
}

// FindActiveVariantsByIDs takes FOR UPDATE locks on the variant rows in id
// order so that concurrent checkouts touching the same variants serialize
// instead of deadlocking.
func (t *orderTx) FindActiveVariantsByIDs(ctx context.Context, ids []string) ([]domain.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var variants []domain.Variant
	err := lockActiveVariants(t.db.WithContext(ctx), ids).
		Preload("Product").
		Find(&variants).Error
	if err != nil {
		log.Printf("FindActiveVariantsByIDs error: %v", err)
		return nil, err
	}

	active := variants[:0]
	for _, v := range variants {
		if v.Purchasable() {
			active = append(active, v)
		}
	}
	return active, nil
}

func lockActiveVariants(db *gorm.DB, ids []string) *gorm.DB {
	return db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND is_active = ?", ids, true).
		Order("id")
}

func (t *orderTx) OrderCodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	if err := t.db.WithContext(ctx).Model(&domain.Order{}).Where("order_code = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *orderTx) InsertOrder(ctx context.Context, order *domain.Order) error {
	result := t.db.WithContext(ctx).Create(order)
	if result.Error != nil {
		log.Printf("InsertOrder error: %v", result.Error)
		return result.Error
	}
	if order.ID == "" {
		return errors.New("failed to assign order ID")
	}
	return nil
}

// DecrementVariantInventory never takes inventory below zero and leaves
// untracked (NULL) inventory alone.
func (t *orderTx) DecrementVariantInventory(ctx context.Context, variantID string, amount int) error {
	return t.db.WithContext(ctx).
		Model(&domain.Variant{}).
		Where("id = ? AND inventory IS NOT NULL", variantID).
		Update("inventory", gorm.Expr("CASE WHEN inventory > ? THEN inventory - ? ELSE 0 END", amount, amount)).
		Error
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items.Variant.Product")
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := withItems(r.db.WithContext(ctx)).Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	var o domain.Order
	if err := withItems(r.db.WithContext(ctx)).Where("order_code = ?", code).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("FindByCode error: %v", err)
		return nil, err
	}
	return &o, nil
}

func filterOrders(db *gorm.DB, f repository.OrderFilter) *gorm.DB {
	q := db.Model(&domain.Order{})
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(order_code) LIKE ? OR LOWER(nickname) LIKE ? OR phone LIKE ?", like, like, like)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.FulfillmentStatus != "" {
		q = q.Where("fulfillment_status = ?", f.FulfillmentStatus)
	}
	if f.DeliveryMethod != "" {
		q = q.Where("delivery_method = ?", f.DeliveryMethod)
	}
	return q
}

func (r *orderRepo) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := filterOrders(db, f).Count(&total).Error; err != nil {
		log.Printf("List count error: %v", err)
		return nil, 0, err
	}

	var out []domain.Order
	err := withItems(filterOrders(db, f)).
		Order("created_at DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&out).Error
	if err != nil {
		log.Printf("List error: %v", err)
		return nil, 0, err
	}
	return out, total, nil
}

func (r *orderRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.Order, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			log.Printf("Update order error: %v", err)
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}
