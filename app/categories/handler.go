package categories

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mytheresa/go-catalog/models"
	"go.uber.org/zap"
)

const internalErrorDetail = "Internal Server Error"

// conflictDetails holds the 400 messages for rejected writes.
var conflictDetails = []struct {
	err    error
	detail string
}{
	{ErrNameLevelExists, "Category with this name and level exists"},
	{ErrSlugExists, "Category with this slug exists"},
	{ErrCategoryExists, "Category already exists"},
	{ErrParentNotFound, "Parent category does not exist"},
	{ErrCyclicParent, "Category cannot be its own ancestor"},
	{ErrCategoryInUse, "Category is referenced by other records"},
}

type CategoryProvider interface {
	Create(ctx context.Context, in CategoryCreate) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Update(ctx context.Context, id uint, in CategoryUpdate) (*models.Category, error)
	Delete(ctx context.Context, id uint) (*models.Category, error)
}

type CategoryHandler struct {
	provider CategoryProvider
	logger   *zap.Logger
}

func NewCategoryHandler(p CategoryProvider, log *zap.Logger) *CategoryHandler {
	useJSONFieldNames()
	return &CategoryHandler{
		provider: p,
		logger:   log,
	}
}

// Register mounts the category routes on rg. The collection routes answer
// with and without the trailing slash.
func (h *CategoryHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.HandleCreate)
	rg.POST("/", h.HandleCreate)
	rg.GET("", h.HandleGetAll)
	rg.GET("/", h.HandleGetAll)
	rg.GET("/slug/:slug", h.HandleGetBySlug)
	rg.PUT("/:id", h.HandleUpdate)
	rg.DELETE("/:id", h.HandleDelete)
}

func (h *CategoryHandler) HandleCreate(c *gin.Context) {
	var input CategoryCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: bodyErrors(err)})
		return
	}

	category, err := h.provider.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "creating category", err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(category))
}

func (h *CategoryHandler) HandleGetAll(c *gin.Context) {
	categories, err := h.provider.List(c.Request.Context())
	if err != nil {
		h.fail(c, "retrieving categories", err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i := range categories {
		response[i] = toResponse(&categories[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *CategoryHandler) HandleGetBySlug(c *gin.Context) {
	category, err := h.provider.GetBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, models.ErrCategoryNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Category does not exist"})
		return
	}
	if err != nil {
		h.fail(c, "retrieving category", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(category))
}

// HandleUpdate answers 201 on success, not 200.
func (h *CategoryHandler) HandleUpdate(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}
	var input CategoryUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: bodyErrors(err)})
		return
	}

	category, err := h.provider.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, "updating category", err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(category))
}

func (h *CategoryHandler) HandleDelete(c *gin.Context) {
	id, ok := categoryID(c)
	if !ok {
		return
	}

	category, err := h.provider.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "deleting category", err)
		return
	}
	c.JSON(http.StatusOK, CategoryDeleteResponse{ID: category.ID, Name: category.Name})
}

// fail writes the error response for err. Anything that is not a known
// conflict or a missing row is logged and hidden behind a generic 500.
func (h *CategoryHandler) fail(c *gin.Context, action string, err error) {
	if errors.Is(err, models.ErrCategoryNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Category not found"})
		return
	}
	for _, cd := range conflictDetails {
		if errors.Is(err, cd.err) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Detail: cd.detail})
			return
		}
	}

	h.logger.Error("unexpected error while "+action, zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: internalErrorDetail})
}

func categoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, pathError("category_id"))
		return 0, false
	}
	return uint(id), true
}
