package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"

	"gorm.io/gorm"
)

// VoucherRepository 优惠码数据访问接口
type VoucherRepository interface {
	GetByID(id uint) (*models.Voucher, error)
	GetByCode(code string) (*models.Voucher, error)
	List(filter VoucherListFilter) ([]models.Voucher, int64, error)
	CountByCode(code string, excludeID uint) (int64, error)
	Create(voucher *models.Voucher) error
	Update(voucher *models.Voucher) (bool, error)
	Delete(id uint) error
	SetActive(id uint, active bool) error
	AppendUsage(usage *models.VoucherUsage) (bool, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormVoucherRepository
}

// voucherEditableColumns 后台编辑允许写入的列，不含使用计数
var voucherEditableColumns = []string{
	"code",
	"type",
	"discount_amount",
	"applicable_products",
	"max_uses",
	"expiry_date",
	"is_active",
	"updated_at",
}

// GormVoucherRepository GORM 实现
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository 创建优惠码仓库
func NewVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherRepository) WithTx(tx *gorm.DB) *GormVoucherRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherRepository{db: tx}
}

// Transaction 执行事务
func (r *GormVoucherRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func preloadUsages(db *gorm.DB) *gorm.DB {
	return db.Order("used_at ASC, id ASC")
}

// GetByID 根据ID获取优惠码（含使用记录）
func (r *GormVoucherRepository) GetByID(id uint) (*models.Voucher, error) {
	return firstOrNil[models.Voucher](r.db.Preload("UsedBy", preloadUsages), id)
}

// GetByCode 根据优惠码获取（不区分大小写）
func (r *GormVoucherRepository) GetByCode(code string) (*models.Voucher, error) {
	query := r.db.Preload("UsedBy", preloadUsages).
		Where("LOWER(code) = ?", strings.ToLower(strings.TrimSpace(code))).
		Order("id ASC")
	return firstOrNil[models.Voucher](query)
}

// List 获取优惠码列表
func (r *GormVoucherRepository) List(filter VoucherListFilter) ([]models.Voucher, int64, error) {
	var vouchers []models.Voucher
	query := r.db.Model(&models.Voucher{})

	query = applySearch(query, filter.Code, "code")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = applyVoucherStatusFilter(query, filter.Status, filter.Now)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("UsedBy", preloadUsages).Order("id DESC").Find(&vouchers).Error; err != nil {
		return nil, 0, err
	}
	return vouchers, total, nil
}

// applyVoucherStatusFilter 与 rules.EvaluateVoucher 的优先级一致：inactive > expired > maxed > active
func applyVoucherStatusFilter(query *gorm.DB, status string, now time.Time) *gorm.DB {
	now = now.UTC()
	switch status {
	case constants.VoucherStatusInactive:
		return query.Where("is_active = ?", false)
	case constants.VoucherStatusExpired:
		return query.Where("is_active = ? AND expiry_date < ?", true, now)
	case constants.VoucherStatusMaxed:
		return query.Where("is_active = ? AND expiry_date >= ? AND used_count >= max_uses", true, now)
	case constants.VoucherStatusActive:
		return query.Where("is_active = ? AND expiry_date >= ? AND used_count < max_uses", true, now)
	default:
		return query.Where("1 = 0")
	}
}

// CountByCode 统计同码数量（不区分大小写），excludeID 为 0 时不排除
func (r *GormVoucherRepository) CountByCode(code string, excludeID uint) (int64, error) {
	query := r.db.Model(&models.Voucher{}).Where("LOWER(code) = ?", strings.ToLower(strings.TrimSpace(code)))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	return countOf(query)
}

// Create 创建优惠码，使用记录从零开始
func (r *GormVoucherRepository) Create(voucher *models.Voucher) error {
	voucher.UsedCount = 0
	active := voucher.IsActive
	if err := r.db.Omit("UsedBy").Create(voucher).Error; err != nil {
		return err
	}
	if err := persistInactive(r.db, voucher, active); err != nil {
		return err
	}
	voucher.IsActive = active
	return nil
}

// Update 更新可编辑字段，不触碰使用记录与计数。
// 写入以 used_count <= max_uses 为条件，返回 false 表示新上限已低于库中实际使用次数（或记录不存在）。
func (r *GormVoucherRepository) Update(voucher *models.Voucher) (bool, error) {
	result := r.db.Model(voucher).
		Where("used_count <= ?", voucher.MaxUses).
		Select(voucherEditableColumns).
		Omit("UsedBy").
		Updates(voucher)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除优惠码（软删除）
func (r *GormVoucherRepository) Delete(id uint) error {
	return r.db.Delete(&models.Voucher{}, id).Error
}

// SetActive 切换启用状态
func (r *GormVoucherRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()}).Error
}

// AppendUsage 条件追加使用记录：仅当 used_count < max_uses 时计数加一并写入记录。
// 返回 false 表示容量已被并发占用。需在事务中调用。
func (r *GormVoucherRepository) AppendUsage(usage *models.VoucherUsage) (bool, error) {
	if usage == nil || usage.VoucherID == 0 {
		return false, errors.New("invalid voucher usage")
	}
	result := r.db.Model(&models.Voucher{}).
		Where("id = ? AND used_count < max_uses", usage.VoucherID).
		UpdateColumn("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if err := r.db.Create(usage).Error; err != nil {
		return false, err
	}
	return true, nil
}
