package models

import (
	"fmt"

	"gorm.io/gorm"
)

const createStatusEnum = `DO $$ BEGIN
	CREATE TYPE status_enum AS ENUM ('oos', 'is', 'obo');
EXCEPTION
	WHEN duplicate_object THEN NULL;
END $$;`

const categoryLevelDefault = `ALTER TABLE category ALTER COLUMN level SET DEFAULT 100`

// Migrate creates or updates every catalog table. It targets postgres:
// the product tables rely on gen_random_uuid() and the status_enum type.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(createStatusEnum).Error; err != nil {
		return fmt.Errorf("create status_enum: %w", err)
	}

	// Referenced tables first so foreign keys resolve.
	if err := db.AutoMigrate(
		&Category{},
		&SeasonalEvent{},
		&Product{},
		&ProductLine{},
		&ProductImage{},
		&Attribute{},
		&AttributeValue{},
		&ProductType{},
		&ProductLineAttributeValue{},
		&ProductProductType{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(categoryLevelDefault).Error; err != nil {
		return fmt.Errorf("set category level default: %w", err)
	}
	return nil
}
