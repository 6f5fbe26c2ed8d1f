package repository

import (
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview(now time.Time) (DashboardOverviewRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	ProductsTotal     int64
	ActiveProducts    int64
	AuctionsUpcoming  int64
	AuctionsLive      int64
	AuctionsEnded     int64
	AuctionsInactive  int64
	VouchersActive    int64
	VouchersExpired   int64
	VouchersMaxed     int64
	VouchersInactive  int64
	VoucherRedemption int64
	ContactsNew       int64
	FeedbackTotal     int64
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 统计总览，拍卖与优惠码状态按 now 推导
func (r *GormDashboardRepository) GetOverview(now time.Time) (DashboardOverviewRow, error) {
	var row DashboardOverviewRow

	counters := []struct {
		target *int64
		query  func() *gorm.DB
	}{
		{&row.ProductsTotal, func() *gorm.DB { return r.db.Model(&models.Product{}) }},
		{&row.ActiveProducts, func() *gorm.DB { return r.db.Model(&models.Product{}).Where("is_active = ?", true) }},
		{&row.AuctionsUpcoming, func() *gorm.DB {
			return applyAuctionStatusFilter(r.db.Model(&models.Auction{}), constants.AuctionStatusUpcoming, now)
		}},
		{&row.AuctionsLive, func() *gorm.DB {
			return applyAuctionStatusFilter(r.db.Model(&models.Auction{}), constants.AuctionStatusLive, now)
		}},
		{&row.AuctionsEnded, func() *gorm.DB {
			return applyAuctionStatusFilter(r.db.Model(&models.Auction{}), constants.AuctionStatusEnded, now)
		}},
		{&row.AuctionsInactive, func() *gorm.DB { return r.db.Model(&models.Auction{}).Where("is_active = ?", false) }},
		{&row.VouchersActive, func() *gorm.DB {
			return applyVoucherStatusFilter(r.db.Model(&models.Voucher{}), constants.VoucherStatusActive, now)
		}},
		{&row.VouchersExpired, func() *gorm.DB {
			return applyVoucherStatusFilter(r.db.Model(&models.Voucher{}), constants.VoucherStatusExpired, now)
		}},
		{&row.VouchersMaxed, func() *gorm.DB {
			return applyVoucherStatusFilter(r.db.Model(&models.Voucher{}), constants.VoucherStatusMaxed, now)
		}},
		{&row.VouchersInactive, func() *gorm.DB {
			return applyVoucherStatusFilter(r.db.Model(&models.Voucher{}), constants.VoucherStatusInactive, now)
		}},
		{&row.VoucherRedemption, func() *gorm.DB { return r.db.Model(&models.VoucherUsage{}) }},
		{&row.ContactsNew, func() *gorm.DB {
			return r.db.Model(&models.ContactMessage{}).Where("status = ?", constants.ContactStatusNew)
		}},
		{&row.FeedbackTotal, func() *gorm.DB {
			return r.db.Model(&models.ContactMessage{}).Where("kind = ?", constants.ContactKindFeedback)
		}},
	}

	for _, c := range counters {
		if err := c.query().Count(c.target).Error; err != nil {
			return DashboardOverviewRow{}, err
		}
	}
	return row, nil
}
