package admin

import (
	"errors"
	"strings"

	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{Slug: r.Slug, Name: r.Name, Icon: r.Icon, SortOrder: r.SortOrder}
}

// GetAdminCategories 获取分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondCategoryError(c, err, "error.category_create_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondCategoryError(c, err, "error.category_update_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondCategoryError(c, err, "error.category_delete_failed")
		return
	}
	h.audit(c, "category_delete", "category", idString(id), nil)
	response.Success(c, gin.H{"deleted": true})
}

func respondCategoryError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrCategoryInvalid):
		respondError(c, response.CodeBadRequest, "error.category_invalid", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeConflict, "error.slug_exists", nil)
	case errors.Is(err, service.ErrCategoryInUse):
		respondError(c, response.CodeConflict, "error.category_in_use", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// ProductRequest 拍品请求
type ProductRequest struct {
	CategoryID  uint         `json:"category_id" binding:"required"`
	Slug        string       `json:"slug" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Images      []string     `json:"images"`
	BasePrice   models.Money `json:"base_price"`
	IsActive    *bool        `json:"is_active"`
	SortOrder   int          `json:"sort_order"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:  r.CategoryID,
		Slug:        r.Slug,
		Title:       r.Title,
		Description: r.Description,
		Images:      r.Images,
		BasePrice:   r.BasePrice,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

// GetAdminProducts 获取拍品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	categoryID, ok := handlershared.ParseQueryUint(c, "category_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	pageResponse(c, products, page, pageSize, total)
}

// GetAdminProduct 获取拍品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id)
	if err != nil {
		respondProductError(c, err, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建拍品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err, "error.product_create_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新拍品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductError(c, err, "error.product_update_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除拍品，存在拍卖场次时拒绝
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondProductError(c, err, "error.product_delete_failed")
		return
	}
	h.audit(c, "product_delete", "product", idString(id), nil)
	response.Success(c, gin.H{"deleted": true})
}

func respondProductError(c *gin.Context, err error, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeConflict, "error.slug_exists", nil)
	case errors.Is(err, service.ErrProductInUse):
		respondError(c, response.CodeConflict, "error.product_in_use", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
