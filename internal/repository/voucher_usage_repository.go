package repository

import (
	"github.com/bidmart-admin/internal/models"

	"gorm.io/gorm"
)

// VoucherUsageRepository 优惠码使用记录数据访问接口
type VoucherUsageRepository interface {
	List(filter VoucherUsageListFilter) ([]models.VoucherUsage, int64, error)
	CountByVoucher(voucherID uint) (int64, error)
}

// GormVoucherUsageRepository GORM 实现
type GormVoucherUsageRepository struct {
	db *gorm.DB
}

// NewVoucherUsageRepository 创建使用记录仓库
func NewVoucherUsageRepository(db *gorm.DB) *GormVoucherUsageRepository {
	return &GormVoucherUsageRepository{db: db}
}

// List 按优惠码分页查询使用记录（按使用时间升序）
func (r *GormVoucherUsageRepository) List(filter VoucherUsageListFilter) ([]models.VoucherUsage, int64, error) {
	var rows []models.VoucherUsage
	query := r.db.Model(&models.VoucherUsage{})
	if filter.VoucherID > 0 {
		query = query.Where("voucher_id = ?", filter.VoucherID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("used_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountByVoucher 统计优惠码使用次数
func (r *GormVoucherUsageRepository) CountByVoucher(voucherID uint) (int64, error) {
	return countOf(r.db.Model(&models.VoucherUsage{}).Where("voucher_id = ?", voucherID))
}
