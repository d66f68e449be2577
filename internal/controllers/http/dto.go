package http

import (
	"time"

	"reunion-shop/internal/domain"
)

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type CheckResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type OrderStatusItem struct {
	ProductName string `json:"productName"`
	VariantName string `json:"variantName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   *int64 `json:"unitPrice"`
}

// OrderStatusResponse is what a buyer sees when looking up their order. It
// leaves out the recipient address and admin notes.
type OrderStatusResponse struct {
	OrderCode         string                   `json:"orderCode"`
	Nickname          string                   `json:"nickname"`
	DeliveryMethod    domain.DeliveryMethod    `json:"deliveryMethod"`
	PaymentStatus     domain.PaymentStatus     `json:"paymentStatus"`
	FulfillmentStatus domain.FulfillmentStatus `json:"fulfillmentStatus"`
	TotalAmount       *int64                   `json:"totalAmount"`
	CreatedAt         time.Time                `json:"createdAt"`
	Items             []OrderStatusItem        `json:"items"`
}

func newOrderStatusResponse(o *domain.Order) OrderStatusResponse {
	items := make([]OrderStatusItem, 0, len(o.Items))
	for _, item := range o.Items {
		line := OrderStatusItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
		if v := item.Variant; v != nil {
			line.VariantName = v.Name
			if v.Product != nil {
				line.ProductName = v.Product.Name
			}
		}
		items = append(items, line)
	}
	return OrderStatusResponse{
		OrderCode:         o.OrderCode,
		Nickname:          o.Nickname,
		DeliveryMethod:    o.DeliveryMethod,
		PaymentStatus:     o.PaymentStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		TotalAmount:       o.TotalAmount,
		CreatedAt:         o.CreatedAt,
		Items:             items,
	}
}
