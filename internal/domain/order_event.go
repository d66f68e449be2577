package domain

import "time"

type OrderPlacedEvent struct {
	OrderID     string    `json:"orderId"`
	OrderCode   string    `json:"orderCode"`
	TotalAmount *int64    `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return OrderPlacedEvent{
		OrderID:     o.ID,
		OrderCode:   o.OrderCode,
		TotalAmount: o.TotalAmount,
		ItemCount:   count,
		CreatedAt:   o.CreatedAt,
	}
}
