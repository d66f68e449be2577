package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"reunion-shop/internal/domain"
	rabbit "reunion-shop/internal/infra/rabbitmq"
	"reunion-shop/internal/repository"
)

const EventOrderPlaced = "order.placed"

// CatalogInvalidator drops cached catalog data after stock changes.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

type OrderService struct {
	repo      repository.OrderRepository
	codes     *CodeGenerator
	publisher rabbit.PublisherInterface
	catalog   CatalogInvalidator
	now       func() time.Time
}

func NewOrderService(r repository.OrderRepository, codes *CodeGenerator, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      r,
		codes:     codes,
		publisher: pub,
		now:       time.Now,
	}
}

func (s *OrderService) SetCatalogInvalidator(c CatalogInvalidator) {
	s.catalog = c
}

// PlaceOrder validates the cart, then in a single transaction locks the
// variants, checks stock, allocates an order code, writes the order with its
// items and decrements inventory. Any failure leaves the store untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var placed *domain.Order
	err := s.repo.WithinTransaction(ctx, func(tx repository.OrderTx) error {
		variants, err := tx.FindActiveVariantsByIDs(ctx, in.variantIDs())
		if err != nil {
			return err
		}

		byID := make(map[string]*domain.Variant, len(variants))
		for i := range variants {
			byID[variants[i].ID] = &variants[i]
		}
		for _, item := range in.Items {
			v, ok := byID[item.VariantID]
			if !ok || !v.Purchasable() {
				return domain.ErrStaleCatalog
			}
		}

		for _, item := range in.Items {
			v := byID[item.VariantID]
			if v.Inventory != nil && *v.Inventory < item.Quantity {
				return fmt.Errorf("%s: %w", v.DisplayName(), domain.ErrInsufficientStock)
			}
		}

		code, err := s.codes.Allocate(ctx, tx.OrderCodeExists)
		if err != nil {
			return err
		}

		order := s.newOrder(in, code, byID)
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}

		for _, item := range in.Items {
			if byID[item.VariantID].Inventory == nil {
				continue
			}
			if err := tx.DecrementVariantInventory(ctx, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}

		placed = order
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCodeAllocationExhausted) {
			log.Printf("[OrderService] WARNING: %v; order code keyspace collision rate is abnormal", err)
		}
		return nil, err
	}

	log.Printf("[OrderService] order %s placed (%d lines)", placed.OrderCode, len(placed.Items))

	if s.catalog != nil {
		if err := s.catalog.Invalidate(ctx); err != nil {
			log.Printf("[OrderService] failed to invalidate catalog cache: %v", err)
		}
	}

	if s.publisher != nil {
		go s.publishOrderPlacedEvent(context.Background(), domain.NewOrderPlacedEvent(placed))
	}

	return placed, nil
}

func (s *OrderService) newOrder(in PlaceOrderInput, code string, byID map[string]*domain.Variant) *domain.Order {
	name, phone, address := in.deliveryFields()

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		var unitPrice *int64
		if p := byID[item.VariantID].Price; p != nil {
			price := *p
			unitPrice = &price
		}
		items = append(items, domain.OrderItem{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
	}

	return &domain.Order{
		OrderCode:         code,
		Nickname:          strings.TrimSpace(in.Nickname),
		Phone:             strings.TrimSpace(in.Phone),
		DeliveryMethod:    in.DeliveryMethod,
		DeliveryName:      name,
		DeliveryPhone:     phone,
		DeliveryAddress:   address,
		PaymentStatus:     domain.PaymentPending,
		FulfillmentStatus: domain.FulfillmentPresale,
		Note:              trimmedPtr(in.Note),
		TotalAmount:       orderTotal(items),
		CreatedAt:         s.now(),
		Items:             items,
	}
}

// orderTotal is nil as soon as one line has no price yet.
func orderTotal(items []domain.OrderItem) *int64 {
	var total int64
	for _, item := range items {
		if item.UnitPrice == nil {
			return nil
		}
		total += *item.UnitPrice * int64(item.Quantity)
	}
	return &total
}

func (s *OrderService) publishOrderPlacedEvent(ctx context.Context, evt domain.OrderPlacedEvent) {
	if err := s.publisher.Publish(ctx, EventOrderPlaced, evt); err != nil {
		log.Printf("[OrderService] failed to publish %s for %s: %v", EventOrderPlaced, evt.OrderCode, err)
	}
}

// LookupOrder returns the order only when both code and phone match, so a
// guessed code alone reveals nothing.
func (s *OrderService) LookupOrder(ctx context.Context, code, phone string) (*domain.Order, error) {
	code = strings.TrimSpace(code)
	phone = strings.TrimSpace(phone)

	verr := domain.NewValidationError()
	if utf8.RuneCountInString(code) < minLookupInput {
		verr.Add("orderCode", fmt.Sprintf("must be at least %d characters", minLookupInput))
	}
	if utf8.RuneCountInString(phone) < minLookupInput {
		verr.Add("phone", fmt.Sprintf("must be at least %d characters", minLookupInput))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	o, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if o == nil || o.Phone != phone {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) GetOrderById(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

type OrderQuery struct {
	Search            string
	PaymentStatus     string
	FulfillmentStatus string
	DeliveryMethod    string
	Page              int
	PageSize          int
}

type OrderPage struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Orders   []domain.Order `json:"orders"`
}

// ListOrders ignores unknown status filters rather than rejecting them.
func (s *OrderService) ListOrders(ctx context.Context, q OrderQuery) (*OrderPage, error) {
	f := repository.OrderFilter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	if ps := domain.PaymentStatus(q.PaymentStatus); ps.Valid() {
		f.PaymentStatus = ps
	}
	if fs := domain.FulfillmentStatus(q.FulfillmentStatus); fs.Valid() {
		f.FulfillmentStatus = fs
	}
	if dm := domain.DeliveryMethod(q.DeliveryMethod); dm.Valid() {
		f.DeliveryMethod = dm
	}

	orders, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return &OrderPage{Total: total, Page: f.Page, PageSize: f.PageSize, Orders: orders}, nil
}

// OrderPatch is an admin status edit. Order code, buyer and items are fixed.
type OrderPatch struct {
	PaymentStatus     *domain.PaymentStatus     `json:"paymentStatus"`
	FulfillmentStatus *domain.FulfillmentStatus `json:"fulfillmentStatus"`
	Note              Optional[string]          `json:"note"`
}

func (p OrderPatch) fields() (map[string]any, error) {
	verr := domain.NewValidationError()
	fields := map[string]any{}

	if p.PaymentStatus != nil {
		if !p.PaymentStatus.Valid() {
			verr.Add("paymentStatus", "must be one of: pending, paid, cancelled")
		}
		fields["payment_status"] = *p.PaymentStatus
	}
	if p.FulfillmentStatus != nil {
		if !p.FulfillmentStatus.Valid() {
			verr.Add("fulfillmentStatus", "must be one of: presale, not_shipped, shipped, not_picked_up, picked_up")
		}
		fields["fulfillment_status"] = *p.FulfillmentStatus
	}
	if p.Note.Set {
		if p.Note.Value == nil {
			fields["note"] = nil
		} else if utf8.RuneCountInString(*p.Note.Value) > maxNoteLength {
			verr.Add("note", fmt.Sprintf("must be at most %d characters", maxNoteLength))
		} else {
			fields["note"] = *p.Note.Value
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id string, patch OrderPatch) (*domain.Order, error) {
	fields, err := patch.fields()
	if err != nil {
		return nil, err
	}

	o, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	log.Printf("[OrderService] order %s updated: %v", o.OrderCode, fields)
	return o, nil
}
