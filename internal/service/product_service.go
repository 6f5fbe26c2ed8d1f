package service

import (
	"strings"

	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
)

// ProductService 拍品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建拍品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ProductInput 创建/更新拍品输入
type ProductInput struct {
	CategoryID  uint
	Slug        string
	Title       string
	Description string
	Images      []string
	BasePrice   models.Money
	IsActive    *bool
	SortOrder   int
}

// List 拍品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// Get 获取拍品
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建拍品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validate(input, 0); err != nil {
		return nil, err
	}
	product := models.Product{IsActive: true}
	applyProductInput(&product, input)
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return &product, nil
}

// Update 更新拍品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.validate(input, id); err != nil {
		return nil, err
	}
	applyProductInput(product, input)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除拍品，存在拍卖场次时拒绝，不做级联删除
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	count, err := s.repo.CountAuctions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductInUse
	}
	return s.repo.Delete(id)
}

func (s *ProductService) validate(input ProductInput, excludeID uint) error {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" || strings.TrimSpace(input.Title) == "" || input.BasePrice.IsNegative() {
		return ErrProductInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.CategoryID = input.CategoryID
	product.Slug = strings.TrimSpace(input.Slug)
	product.Title = strings.TrimSpace(input.Title)
	product.Description = strings.TrimSpace(input.Description)
	product.Images = models.StringArray(input.Images)
	product.BasePrice = input.BasePrice
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}
