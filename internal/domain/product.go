package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	CoverImage  *string   `json:"coverImage" gorm:"type:varchar(500)"`
	IsActive    bool      `json:"isActive" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
	Variants    []Variant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Variant is a purchasable SKU. A nil Price means the price is still pending,
// a nil Inventory means stock is not tracked.
type Variant struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"productId" gorm:"type:varchar(36);not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Price     *int64    `json:"price"`
	Inventory *int      `json:"inventory"`
	IsActive  bool      `json:"isActive" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (Variant) TableName() string { return "product_variants" }

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Purchasable reports whether both the variant and its parent product are live.
func (v *Variant) Purchasable() bool {
	return v.IsActive && v.Product != nil && v.Product.IsActive
}

// DisplayName is the "product - variant" label shown to buyers.
func (v *Variant) DisplayName() string {
	if v.Product == nil {
		return v.Name
	}
	return v.Product.Name + " - " + v.Name
}
