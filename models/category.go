package models

// Category represents a node in the product classification tree.
// The pair (Name, Level) is unique, and Slug is unique on its own.
// Level carries no gorm default: gorm would replace an explicit 0 with it on
// insert. The column default of 100 is set by Migrate.
type Category struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:100;not null;uniqueIndex:uq_category_name_level;check:category_name_length_check,LENGTH(name) > 0"`
	Slug     string `gorm:"size:120;not null;uniqueIndex:uq_category_slug;check:category_slug_length_check,LENGTH(slug) > 0"`
	IsActive bool   `gorm:"not null;default:false"`
	Level    int    `gorm:"not null;uniqueIndex:uq_category_name_level"`
	ParentID *uint
	Parent   *Category `gorm:"foreignKey:ParentID"`
}

func (c *Category) TableName() string {
	return "category"
}
