package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/rules"
)

// VoucherAdminService 优惠码管理服务
type VoucherAdminService struct {
	repo        repository.VoucherRepository
	usageRepo   repository.VoucherUsageRepository
	productRepo repository.ProductRepository
	clock       clock.Clock
}

// NewVoucherAdminService 创建优惠码管理服务
func NewVoucherAdminService(repo repository.VoucherRepository, usageRepo repository.VoucherUsageRepository, productRepo repository.ProductRepository, clk clock.Clock) *VoucherAdminService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &VoucherAdminService{
		repo:        repo,
		usageRepo:   usageRepo,
		productRepo: productRepo,
		clock:       clk,
	}
}

// VoucherInput 创建/更新优惠码输入
type VoucherInput struct {
	Candidate rules.VoucherCandidate
	IsActive  *bool
}

// VoucherListQuery 优惠码列表查询
type VoucherListQuery struct {
	Page     int
	PageSize int
	Code     string
	Type     string
	Status   string
}

// VoucherView 优惠码视图，附带实时状态与使用进度
type VoucherView struct {
	*models.Voucher
	Status       string  `json:"status"`
	UsageCount   int     `json:"usage_count"`
	UsagePercent float64 `json:"usage_percent"`
}

// Create 创建优惠码
func (s *VoucherAdminService) Create(input VoucherInput) (*VoucherView, error) {
	now := s.clock.Now()
	errs := rules.ValidateVoucher(input.Candidate, now)
	if err := s.checkReferences(errs, input.Candidate, 0); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, newValidationError(ErrVoucherInvalid, errs)
	}

	voucher := &models.Voucher{IsActive: true}
	applyVoucherValues(voucher, input.Candidate.Values())
	if input.IsActive != nil {
		voucher.IsActive = *input.IsActive
	}
	if err := s.repo.Create(voucher); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrVoucherCodeExists
		}
		return nil, err
	}
	logger.Infow("voucher_created", "voucher_id", voucher.ID, "code", voucher.Code, "type", voucher.Type)
	return NewVoucherView(voucher, now), nil
}

// Update 更新优惠码；使用记录只增不改
func (s *VoucherAdminService) Update(id uint, input VoucherInput) (*VoucherView, error) {
	now := s.clock.Now()
	voucher, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrNotFound
	}

	errs := rules.ValidateVoucher(input.Candidate, now)
	if err := s.checkReferences(errs, input.Candidate, id); err != nil {
		return nil, err
	}
	values := input.Candidate.Values()
	if !errs.Has(rules.FieldMaxUses) {
		if used := rules.UsageCount(voucher); values.MaxUses < used {
			errs.Add(rules.FieldMaxUses, maxUsesBelowUsage(used))
		}
	}
	if !errs.Empty() {
		return nil, newValidationError(ErrVoucherInvalid, errs)
	}

	applyVoucherValues(voucher, values)
	if input.IsActive != nil {
		voucher.IsActive = *input.IsActive
	}
	voucher.UpdatedAt = now
	written, err := s.repo.Update(voucher)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrVoucherCodeExists
		}
		return nil, err
	}
	current, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	// 读取之后有核销落库，使用次数已超过新上限
	if !written {
		errs.Add(rules.FieldMaxUses, maxUsesBelowUsage(rules.UsageCount(current)))
		return nil, newValidationError(ErrVoucherInvalid, errs)
	}
	logger.Infow("voucher_updated", "voucher_id", current.ID, "code", current.Code)
	return NewVoucherView(current, now), nil
}

func maxUsesBelowUsage(used int) string {
	return fmt.Sprintf("max uses cannot be lower than current usage (%d)", used)
}

// Delete 删除优惠码
func (s *VoucherAdminService) Delete(id uint) error {
	voucher, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if voucher == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logger.Infow("voucher_deleted", "voucher_id", id, "code", voucher.Code)
	return nil
}

// Get 获取优惠码详情
func (s *VoucherAdminService) Get(id uint) (*VoucherView, error) {
	voucher, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrNotFound
	}
	return NewVoucherView(voucher, s.clock.Now()), nil
}

// List 优惠码列表
func (s *VoucherAdminService) List(query VoucherListQuery) ([]VoucherView, int64, error) {
	now := s.clock.Now()
	rows, total, err := s.repo.List(repository.VoucherListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Code:     query.Code,
		Type:     strings.ToLower(strings.TrimSpace(query.Type)),
		Status:   strings.ToLower(strings.TrimSpace(query.Status)),
		Now:      now,
	})
	if err != nil {
		return nil, 0, err
	}
	views := make([]VoucherView, 0, len(rows))
	for i := range rows {
		views = append(views, *NewVoucherView(&rows[i], now))
	}
	return views, total, nil
}

// SetActive 启用/停用优惠码
func (s *VoucherAdminService) SetActive(id uint, active bool) (*VoucherView, error) {
	voucher, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.SetActive(id, active); err != nil {
		return nil, err
	}
	voucher.IsActive = active
	logger.Infow("voucher_active_changed", "voucher_id", id, "is_active", active)
	return NewVoucherView(voucher, s.clock.Now()), nil
}

// ListUsages 分页查询使用记录
func (s *VoucherAdminService) ListUsages(id uint, page, pageSize int) ([]models.VoucherUsage, int64, error) {
	voucher, err := s.repo.GetByID(id)
	if err != nil {
		return nil, 0, err
	}
	if voucher == nil {
		return nil, 0, ErrNotFound
	}
	return s.usageRepo.List(repository.VoucherUsageListFilter{
		Page:      page,
		PageSize:  pageSize,
		VoucherID: id,
	})
}

// checkReferences 校验优惠码唯一（不区分大小写）与适用拍品存在
func (s *VoucherAdminService) checkReferences(errs rules.FieldErrors, candidate rules.VoucherCandidate, excludeID uint) error {
	if !errs.Has(rules.FieldCode) {
		count, err := s.repo.CountByCode(candidate.Code, excludeID)
		if err != nil {
			return err
		}
		if count > 0 {
			errs.Add(rules.FieldCode, "code already exists")
		}
	}
	if errs.Has(rules.FieldApplicableProducts) {
		return nil
	}
	ids := models.UintArray(candidate.ApplicableProducts).Normalize()
	if len(ids) == 0 {
		return nil
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return err
	}
	if len(products) != len(ids) {
		errs.Add(rules.FieldApplicableProducts, "applicable products contain an unknown product")
	}
	return nil
}

// NewVoucherView 按 now 计算状态与使用进度
func NewVoucherView(voucher *models.Voucher, now time.Time) *VoucherView {
	if voucher.UsedBy == nil {
		voucher.UsedBy = []models.VoucherUsage{}
	}
	return &VoucherView{
		Voucher:      voucher,
		Status:       rules.EvaluateVoucher(voucher, now),
		UsageCount:   rules.UsageCount(voucher),
		UsagePercent: rules.UsagePercent(voucher),
	}
}

func applyVoucherValues(voucher *models.Voucher, values rules.VoucherValues) {
	voucher.Code = values.Code
	voucher.Type = values.Type
	voucher.DiscountAmount = values.DiscountAmount
	voucher.MaxUses = values.MaxUses
	voucher.ExpiryDate = values.ExpiryDate.UTC()
	voucher.ApplicableProducts = values.ApplicableProducts
}
