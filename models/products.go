package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockStatus is stored in the postgres enum type status_enum.
type StockStatus string

const (
	StockOutOfStock  StockStatus = "oos"
	StockInStock     StockStatus = "is"
	StockOnBackOrder StockStatus = "obo"
)

// Product represents a sellable item in the catalog.
// It belongs to a category and optionally to a seasonal event.
type Product struct {
	ID              uint        `gorm:"primaryKey"`
	Pid             uuid.UUID   `gorm:"type:uuid;not null;default:gen_random_uuid();uniqueIndex:uq_product_pid"`
	Name            string      `gorm:"size:200;not null;uniqueIndex:uq_product_name;check:product_name_length_check,LENGTH(name) > 0"`
	Slug            string      `gorm:"size:220;not null;uniqueIndex:uq_product_slug;check:product_slug_length_check,LENGTH(slug) > 0"`
	Description     *string     `gorm:"type:text"`
	IsDigital       bool        `gorm:"not null;default:false"`
	CreatedAt       time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"`
	IsActive        bool        `gorm:"not null;default:false"`
	StockStatus     StockStatus `gorm:"type:status_enum;not null;default:'oos'"`
	CategoryID      uint        `gorm:"not null"`
	Category        Category    `gorm:"foreignKey:CategoryID"`
	SeasonalEventID *uint
	SeasonalEvent   *SeasonalEvent `gorm:"foreignKey:SeasonalEventID"`
	Lines           []ProductLine  `gorm:"foreignKey:ProductID"`
}

func (p *Product) TableName() string {
	return "product"
}

// BeforeCreate assigns the public identifier when the caller left it empty,
// so inserts do not depend on the database default.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Pid == uuid.Nil {
		p.Pid = uuid.New()
	}
	return nil
}

// ProductLine is a purchasable variant of a product with its own price and stock.
type ProductLine struct {
	ID        uint            `gorm:"primaryKey"`
	Price     decimal.Decimal `gorm:"type:decimal(5,2);not null;check:product_line_max_value,price >= 0 AND price <= 999.99"`
	SKU       uuid.UUID       `gorm:"column:sku;type:uuid;not null;default:gen_random_uuid();uniqueIndex:uq_product_line_sku"`
	StockQty  int             `gorm:"not null;default:0"`
	IsActive  bool            `gorm:"not null;default:false"`
	OrderNum  int             `gorm:"not null;uniqueIndex:uq_product_line_order_product_id;check:product_order_line_range,order_num >= 1 AND order_num <= 20"`
	Weight    float64         `gorm:"not null"`
	ProductID uint            `gorm:"not null;uniqueIndex:uq_product_line_order_product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Images    []ProductImage  `gorm:"foreignKey:ProductLineID"`
}

func (l *ProductLine) TableName() string {
	return "product_line"
}

func (l *ProductLine) BeforeCreate(tx *gorm.DB) error {
	if l.SKU == uuid.Nil {
		l.SKU = uuid.New()
	}
	return nil
}

// ProductImage is the picture attached to a product line.
type ProductImage struct {
	ID              uint   `gorm:"primaryKey"`
	AlternativeText string `gorm:"size:100;not null;check:product_image_alt_text_length_check,LENGTH(alternative_text) > 0"`
	URL             string `gorm:"column:url;size:100;not null;check:product_image_url_length_check,LENGTH(url) > 0"`
	Order           int    `gorm:"not null;uniqueIndex:uq_product_image_order_product_line_id;check:product_image_order_range,\"order\" >= 1 AND \"order\" <= 20"`
	ProductLineID   uint   `gorm:"not null;uniqueIndex:uq_product_image_order_product_line_id;uniqueIndex:uq_product_image_product_line_id"`
}

func (i *ProductImage) TableName() string {
	return "product_image"
}
