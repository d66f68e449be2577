package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryShipping DeliveryMethod = "delivery"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryPickup || m == DeliveryShipping
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

type FulfillmentStatus string

const (
	FulfillmentPresale     FulfillmentStatus = "presale"
	FulfillmentNotShipped  FulfillmentStatus = "not_shipped"
	FulfillmentShipped     FulfillmentStatus = "shipped"
	FulfillmentNotPickedUp FulfillmentStatus = "not_picked_up"
	FulfillmentPickedUp    FulfillmentStatus = "picked_up"
)

func (s FulfillmentStatus) Valid() bool {
	switch s {
	case FulfillmentPresale, FulfillmentNotShipped, FulfillmentShipped, FulfillmentNotPickedUp, FulfillmentPickedUp:
		return true
	}
	return false
}

// Order amounts are in cents. TotalAmount is nil when any item was bought
// while its price was still pending.
type Order struct {
	ID                string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderCode         string            `json:"orderCode" gorm:"type:varchar(16);not null;uniqueIndex"`
	Nickname          string            `json:"nickname" gorm:"type:varchar(50);not null"`
	Phone             string            `json:"phone" gorm:"type:varchar(20);not null;index"`
	DeliveryMethod    DeliveryMethod    `json:"deliveryMethod" gorm:"type:varchar(16);not null"`
	DeliveryName      *string           `json:"deliveryName" gorm:"type:varchar(50)"`
	DeliveryPhone     *string           `json:"deliveryPhone" gorm:"type:varchar(20)"`
	DeliveryAddress   *string           `json:"deliveryAddress" gorm:"type:varchar(200)"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus" gorm:"type:varchar(16);not null;index"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus" gorm:"type:varchar(16);not null;index"`
	Note              *string           `json:"note" gorm:"type:varchar(500)"`
	TotalAmount       *int64            `json:"totalAmount"`
	CreatedAt         time.Time         `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt         time.Time         `json:"updatedAt" gorm:"autoUpdateTime"`
	Items             []OrderItem       `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is immutable once written; UnitPrice is the variant price at purchase time.
type OrderItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `json:"orderId" gorm:"type:varchar(36);not null;index"`
	VariantID string    `json:"variantId" gorm:"type:varchar(36);not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice *int64    `json:"unitPrice"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	Variant   *Variant  `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderSummary is what a buyer gets back after checkout.
type OrderSummary struct {
	OrderCode      string         `json:"orderCode"`
	Nickname       string         `json:"nickname"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		OrderCode:      o.OrderCode,
		Nickname:       o.Nickname,
		DeliveryMethod: o.DeliveryMethod,
		CreatedAt:      o.CreatedAt,
	}
}
