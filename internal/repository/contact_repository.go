package repository

import (
	"github.com/bidmart-admin/internal/models"

	"gorm.io/gorm"
)

// ContactRepository 留言数据访问接口
type ContactRepository interface {
	List(filter ContactListFilter) ([]models.ContactMessage, int64, error)
	GetByID(id uint) (*models.ContactMessage, error)
	Create(message *models.ContactMessage) error
	Update(message *models.ContactMessage) error
	Delete(id uint) error
	CountByStatus(status string) (int64, error)
}

// GormContactRepository GORM 实现
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建留言仓库
func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// List 留言列表
func (r *GormContactRepository) List(filter ContactListFilter) ([]models.ContactMessage, int64, error) {
	var messages []models.ContactMessage
	query := r.db.Model(&models.ContactMessage{})

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = applySearch(query, filter.Search, "name", "email", "subject")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// GetByID 根据 ID 获取留言
func (r *GormContactRepository) GetByID(id uint) (*models.ContactMessage, error) {
	return firstOrNil[models.ContactMessage](r.db, id)
}

// Create 创建留言
func (r *GormContactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// Update 更新留言
func (r *GormContactRepository) Update(message *models.ContactMessage) error {
	return r.db.Save(message).Error
}

// Delete 删除留言（软删除）
func (r *GormContactRepository) Delete(id uint) error {
	return r.db.Delete(&models.ContactMessage{}, id).Error
}

// CountByStatus 按状态统计
func (r *GormContactRepository) CountByStatus(status string) (int64, error) {
	return countOf(r.db.Model(&models.ContactMessage{}).Where("status = ?", status))
}
