package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is one catalog entry: a piece of jewelry or a small collection
// item. Stock fields drive the availability policy; variants may override
// price and stock per purchasable configuration.
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                           // primary key
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                               // unique handle
	Name           string         `gorm:"type:varchar(200);not null" json:"name"`                         // display name
	Description    string         `gorm:"type:text" json:"description"`                                   // long description
	Images         StringArray    `gorm:"type:json" json:"images"`                                        // image paths
	Tags           StringArray    `gorm:"type:json" json:"tags"`                                          // material/collection tags
	PriceAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`      // base price
	CompareAtPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"compare_at_price"`  // strike-through price, 0 when unset
	TrackQuantity  bool           `gorm:"default:false" json:"track_quantity"`                            // stock tracking enabled
	AllowBackorder bool           `gorm:"default:false" json:"allow_backorder"`                           // sell past zero stock
	StockQuantity  int            `gorm:"not null;default:0" json:"stock_quantity"`                       // on-hand quantity when tracked
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                            // listed or not
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                              // sort weight
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                        // creation time
	UpdatedAt      time.Time      `json:"updated_at"`                                                     // update time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                 // soft delete time

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"` // variant list
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
