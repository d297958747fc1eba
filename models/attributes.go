package models

import "time"

// SeasonalEvent groups products sold during a bounded period.
type SeasonalEvent struct {
	ID        uint      `gorm:"primaryKey"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:uq_seasonal_event_name;check:seasonal_event_name_length_check,LENGTH(name) > 0"`
}

func (e *SeasonalEvent) TableName() string {
	return "seasonal_event"
}

// Attribute is a named product line property such as colour or size.
type Attribute struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null;uniqueIndex:uq_attribute_name;check:attribute_name_length_check,LENGTH(name) > 0"`
	Description *string `gorm:"type:text"`
}

func (a *Attribute) TableName() string {
	return "attribute"
}

// AttributeValue is one allowed value of an Attribute.
type AttributeValue struct {
	ID             uint       `gorm:"primaryKey"`
	AttributeValue string     `gorm:"size:100;not null;uniqueIndex:uq_attribute_value_attr_value_attr_id;check:attribute_value_length_check,LENGTH(attribute_value) > 0"`
	AttributeID    uint       `gorm:"not null;uniqueIndex:uq_attribute_value_attr_value_attr_id"`
	Attribute      *Attribute `gorm:"foreignKey:AttributeID"`
}

func (v *AttributeValue) TableName() string {
	return "attribute_value"
}

// ProductType is a hierarchy parallel to Category; (Name, Level) is unique.
type ProductType struct {
	ID       uint         `gorm:"primaryKey"`
	Name     string       `gorm:"size:100;not null;uniqueIndex:uq_product_type_name_level;check:product_type_name_length_check,LENGTH(name) > 0"`
	Level    int          `gorm:"not null;uniqueIndex:uq_product_type_name_level"`
	ParentID *uint        `gorm:"column:parent"`
	Parent   *ProductType `gorm:"foreignKey:ParentID"`
}

func (t *ProductType) TableName() string {
	return "product_type"
}

type ProductLineAttributeValue struct {
	ID               uint            `gorm:"primaryKey"`
	AttributeValueID uint            `gorm:"not null;uniqueIndex:uq_attrval_prodline_attribute_value_id_produ_line_id"`
	AttributeValue   *AttributeValue `gorm:"foreignKey:AttributeValueID"`
	ProductLineID    uint            `gorm:"not null;uniqueIndex:uq_attrval_prodline_attribute_value_id_produ_line_id"`
	ProductLine      *ProductLine    `gorm:"foreignKey:ProductLineID"`
}

func (v *ProductLineAttributeValue) TableName() string {
	return "product_line_attribute_value"
}

type ProductProductType struct {
	ID            uint         `gorm:"primaryKey"`
	ProductID     uint         `gorm:"not null;uniqueIndex:uq_prod_prodtype_prod_id_prod_type_id"`
	Product       *Product     `gorm:"foreignKey:ProductID"`
	ProductTypeID uint         `gorm:"not null;uniqueIndex:uq_prod_prodtype_prod_id_prod_type_id"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID"`
}

func (p *ProductProductType) TableName() string {
	return "product_product_type"
}
