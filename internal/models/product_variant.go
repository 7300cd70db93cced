package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is one purchasable configuration of a product (ring size,
// chain length). Price and stock override the product when set; stock
// tracking and backorder policy are inherited from the product.
type ProductVariant struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                                      // primary key
	ProductID      uint           `gorm:"not null;index;uniqueIndex:idx_variant_sku" json:"product_id"`              // owning product
	SKUCode        string         `gorm:"column:sku_code;type:varchar(64);not null;uniqueIndex:idx_variant_sku" json:"sku_code"` // merchant SKU, unique per product
	Options        StringMap      `gorm:"type:json" json:"options"`                                                  // option selections, e.g. {"size":"M"}
	PriceAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`                 // price override, 0 means inherit
	CompareAtPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"compare_at_price"`             // strike-through override, 0 means inherit
	StockQuantity  int            `gorm:"not null;default:0" json:"stock_quantity"`                                  // on-hand quantity for this variant
	HasOwnStock    bool           `gorm:"default:false" json:"has_own_stock"`                                        // variant tracks its own stock row
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                                       // purchasable or not
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                                         // sort weight
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                                   // creation time
	UpdatedAt      time.Time      `json:"updated_at"`                                                                // update time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                            // soft delete time

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // owning product
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}
