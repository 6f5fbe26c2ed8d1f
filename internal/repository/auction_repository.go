package repository

import (
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"

	"gorm.io/gorm"
)

// AuctionRepository 拍卖数据访问接口
type AuctionRepository interface {
	GetByID(id uint) (*models.Auction, error)
	ListByProduct(productID uint) ([]models.Auction, error)
	List(filter AuctionListFilter) ([]models.Auction, int64, error)
	Create(auction *models.Auction) error
	Update(auction *models.Auction) error
	Delete(id uint) error
	SetActive(id uint, active bool) error
	UpdateStatus(id uint, status string) (bool, error)
	SyncStatuses(now time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormAuctionRepository
}

// GormAuctionRepository GORM 实现
type GormAuctionRepository struct {
	db *gorm.DB
}

// NewAuctionRepository 创建拍卖仓库
func NewAuctionRepository(db *gorm.DB) *GormAuctionRepository {
	return &GormAuctionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAuctionRepository) WithTx(tx *gorm.DB) *GormAuctionRepository {
	if tx == nil {
		return r
	}
	return &GormAuctionRepository{db: tx}
}

// Transaction 执行事务
func (r *GormAuctionRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 根据ID获取拍卖（含拍品）
func (r *GormAuctionRepository) GetByID(id uint) (*models.Auction, error) {
	return firstOrNil[models.Auction](r.db.Preload("Product"), id)
}

// ListByProduct 获取同一拍品下的全部拍卖
func (r *GormAuctionRepository) ListByProduct(productID uint) ([]models.Auction, error) {
	auctions := make([]models.Auction, 0)
	if err := r.db.Where("product_id = ?", productID).Order("auction_number ASC").Find(&auctions).Error; err != nil {
		return nil, err
	}
	return auctions, nil
}

// List 获取拍卖列表
func (r *GormAuctionRepository) List(filter AuctionListFilter) ([]models.Auction, int64, error) {
	var auctions []models.Auction
	query := r.db.Model(&models.Auction{})

	if filter.WithProduct {
		query = query.Preload("Product")
	}
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Status != "" {
		query = applyAuctionStatusFilter(query, filter.Status, filter.Now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("start_time DESC, id DESC").Find(&auctions).Error; err != nil {
		return nil, 0, err
	}
	return auctions, total, nil
}

// applyAuctionStatusFilter 按时间窗口筛选，与 rules.ResolveStatus 的边界一致
func applyAuctionStatusFilter(query *gorm.DB, status string, now time.Time) *gorm.DB {
	now = now.UTC()
	switch status {
	case constants.AuctionStatusUpcoming:
		return query.Where("start_time > ?", now)
	case constants.AuctionStatusLive:
		return query.Where("start_time <= ? AND end_time >= ?", now, now)
	case constants.AuctionStatusEnded:
		return query.Where("start_time <= ? AND end_time < ?", now, now)
	default:
		return query.Where("1 = 0")
	}
}

// Create 创建拍卖
func (r *GormAuctionRepository) Create(auction *models.Auction) error {
	active := auction.IsActive
	if err := r.db.Omit("Product").Create(auction).Error; err != nil {
		return err
	}
	if err := persistInactive(r.db, auction, active); err != nil {
		return err
	}
	auction.IsActive = active
	return nil
}

// Update 更新拍卖
func (r *GormAuctionRepository) Update(auction *models.Auction) error {
	return r.db.Omit("Product").Save(auction).Error
}

// Delete 删除拍卖，不影响拍品
func (r *GormAuctionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Auction{}, id).Error
}

// SetActive 切换启用状态
func (r *GormAuctionRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Auction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()}).Error
}

// UpdateStatus 写入状态缓存，返回是否有变化
func (r *GormAuctionRepository) UpdateStatus(id uint, status string) (bool, error) {
	result := r.db.Model(&models.Auction{}).
		Where("id = ? AND status <> ?", id, status).
		UpdateColumn("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SyncStatuses 按时间窗口批量校正状态缓存，返回更新行数
func (r *GormAuctionRepository) SyncStatuses(now time.Time) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, status := range []string{
			constants.AuctionStatusUpcoming,
			constants.AuctionStatusLive,
			constants.AuctionStatusEnded,
		} {
			query := applyAuctionStatusFilter(tx.Model(&models.Auction{}), status, now)
			result := query.Where("status <> ?", status).UpdateColumn("status", status)
			if result.Error != nil {
				return result.Error
			}
			affected += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
