package services

import (
	"bytes"

	"reunion-shop/internal/domain"
)

const (
	TestVariantID   = "variant-1"
	TestVariantID2  = "variant-2"
	TestProductName = "Reunion Tee"
	TestPhone       = "13800138000"
)

func ptr[T any](v T) *T { return &v }

func activeVariant(id, name string, price *int64, inventory *int) domain.Variant {
	return domain.Variant{
		ID:        id,
		ProductID: "product-1",
		Name:      name,
		Price:     price,
		Inventory: inventory,
		IsActive:  true,
		Product:   &domain.Product{ID: "product-1", Name: TestProductName, IsActive: true},
	}
}

func pickupInput(items ...CartItem) PlaceOrderInput {
	return PlaceOrderInput{
		Nickname:       "Alice",
		Phone:          TestPhone,
		DeliveryMethod: domain.DeliveryPickup,
		Items:          items,
	}
}

// fixedCodes yields codes built from the given alphabet offsets, one code per
// OrderCodeLength bytes.
func fixedCodes(maxAttempts int, offsets ...byte) *CodeGenerator {
	return NewCodeGeneratorWithSource(bytes.NewReader(offsets), maxAttempts)
}

func repeatByte(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}
