package categories

import "github.com/mytheresa/go-catalog/models"

const (
	defaultLevel    = 100
	defaultIsActive = false
)

// CategoryCreate is the body of POST /api/category.
// Omitted optional fields take their defaults in ToModel.
type CategoryCreate struct {
	Name     string `json:"name" binding:"required,max=100"`
	Slug     string `json:"slug" binding:"required,max=120"`
	IsActive *bool  `json:"is_active"`
	Level    *int   `json:"level"`
	ParentID *uint  `json:"parent_id"`
}

func (in CategoryCreate) ToModel() *models.Category {
	category := &models.Category{
		Name:     in.Name,
		Slug:     in.Slug,
		IsActive: defaultIsActive,
		Level:    defaultLevel,
		ParentID: in.ParentID,
	}
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	if in.Level != nil {
		category.Level = *in.Level
	}
	return category
}

// CategoryUpdate is the body of PUT /api/category/:id. It replaces the whole
// row: every field except parent_id is required, and a missing parent_id
// clears the parent.
type CategoryUpdate struct {
	Name     string `json:"name" binding:"required,max=100"`
	Slug     string `json:"slug" binding:"required,max=120"`
	IsActive *bool  `json:"is_active" binding:"required"`
	Level    *int   `json:"level" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// ApplyTo overwrites every mutable field of category.
func (in CategoryUpdate) ApplyTo(category *models.Category) {
	category.Name = in.Name
	category.Slug = in.Slug
	category.IsActive = *in.IsActive
	category.Level = *in.Level
	category.ParentID = in.ParentID
}

type CategoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`
	Level    int    `json:"level"`
	ParentID *uint  `json:"parent_id"`
}

// CategoryDeleteResponse confirms a deletion with the id and name only.
type CategoryDeleteResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func toResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		IsActive: c.IsActive,
		Level:    c.Level,
		ParentID: c.ParentID,
	}
}
