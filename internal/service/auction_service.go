package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/queue"
	"github.com/bidmart-admin/internal/repository"
	"github.com/bidmart-admin/internal/rules"

	"gorm.io/gorm"
)

// AuctionService 拍卖场次管理服务
// 所有返回给调用方的拍卖都会按当前时间重算 Status。
type AuctionService struct {
	repo          repository.AuctionRepository
	productRepo   repository.ProductRepository
	queueClient   *queue.Client
	clock         clock.Clock
	scheduleTasks bool
}

// NewAuctionService 创建拍卖服务
func NewAuctionService(repo repository.AuctionRepository, productRepo repository.ProductRepository, queueClient *queue.Client, clk clock.Clock, scheduleTasks bool) *AuctionService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &AuctionService{
		repo:          repo,
		productRepo:   productRepo,
		queueClient:   queueClient,
		clock:         clk,
		scheduleTasks: scheduleTasks,
	}
}

// AuctionInput 创建/更新拍卖输入
type AuctionInput struct {
	Candidate        rules.AuctionCandidate
	IsActive         *bool
	LastOfferEnabled *bool
}

// AuctionListQuery 拍卖列表查询
type AuctionListQuery struct {
	Page      int
	PageSize  int
	ProductID uint
	Status    string
	IsActive  *bool
}

// Create 创建拍卖
func (s *AuctionService) Create(input AuctionInput) (*models.Auction, error) {
	now := s.clock.Now()
	siblings, errs, err := s.prepare(input.Candidate)
	if err != nil {
		return nil, err
	}
	for field, msg := range rules.ValidateAuction(input.Candidate, siblings, 0, nil, now) {
		errs.Add(field, msg)
	}
	if !errs.Empty() {
		return nil, newValidationError(ErrAuctionInvalid, errs)
	}

	auction := &models.Auction{IsActive: true}
	applyAuctionValues(auction, input.Candidate.Values())
	applyAuctionToggles(auction, input)
	auction.Status = rules.AuctionStatus(now, auction)

	if err := s.repo.Create(auction); err != nil {
		return nil, translateAuctionWriteError(err)
	}
	logger.Infow("auction_created",
		"auction_id", auction.ID,
		"product_id", auction.ProductID,
		"auction_number", auction.AuctionNumber,
	)
	s.scheduleStatusTasks(auction, now)
	return s.present(auction, now), nil
}

// Update 更新拍卖；开始时间未改动时不受“不得早于当前时间”限制
func (s *AuctionService) Update(id uint, input AuctionInput) (*models.Auction, error) {
	now := s.clock.Now()
	prior, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return nil, ErrNotFound
	}

	siblings, errs, err := s.prepare(input.Candidate)
	if err != nil {
		return nil, err
	}
	for field, msg := range rules.ValidateAuction(input.Candidate, siblings, id, prior, now) {
		errs.Add(field, msg)
	}
	if !errs.Empty() {
		return nil, newValidationError(ErrAuctionInvalid, errs)
	}

	updated := *prior
	updated.Product = nil
	applyAuctionValues(&updated, input.Candidate.Values())
	applyAuctionToggles(&updated, input)
	updated.Status = rules.AuctionStatus(now, &updated)

	if err := s.repo.Update(&updated); err != nil {
		return nil, translateAuctionWriteError(err)
	}
	logger.Infow("auction_updated", "auction_id", updated.ID, "product_id", updated.ProductID)
	if !updated.StartTime.Equal(prior.StartTime) || !updated.EndTime.Equal(prior.EndTime) {
		s.scheduleStatusTasks(&updated, now)
	}
	return s.present(&updated, now), nil
}

// Delete 删除拍卖，不影响所属拍品
func (s *AuctionService) Delete(id uint) error {
	auction, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if auction == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logger.Infow("auction_deleted", "auction_id", id, "product_id", auction.ProductID)
	return nil
}

// Get 获取拍卖详情
func (s *AuctionService) Get(id uint) (*models.Auction, error) {
	auction, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, ErrNotFound
	}
	return s.present(auction, s.clock.Now()), nil
}

// List 拍卖列表，状态筛选按当前时间推导
func (s *AuctionService) List(query AuctionListQuery) ([]models.Auction, int64, error) {
	now := s.clock.Now()
	rows, total, err := s.repo.List(repository.AuctionListFilter{
		Page:        query.Page,
		PageSize:    query.PageSize,
		ProductID:   query.ProductID,
		Status:      strings.ToLower(strings.TrimSpace(query.Status)),
		Now:         now,
		IsActive:    query.IsActive,
		WithProduct: true,
	})
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		s.present(&rows[i], now)
	}
	return rows, total, nil
}

// SetActive 启用/停用拍卖
func (s *AuctionService) SetActive(id uint, active bool) (*models.Auction, error) {
	auction, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if auction == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.SetActive(id, active); err != nil {
		return nil, err
	}
	auction.IsActive = active
	logger.Infow("auction_active_changed", "auction_id", id, "is_active", active)
	return s.present(auction, s.clock.Now()), nil
}

// PreviewStatus 按表单时间预览状态，仅供展示
func (s *AuctionService) PreviewStatus(candidate rules.AuctionCandidate) (string, bool) {
	return rules.PreviewStatus(candidate, s.clock.Now())
}

// RefreshStatuses 批量校正状态缓存列
func (s *AuctionService) RefreshStatuses() (int64, error) {
	affected, err := s.repo.SyncStatuses(s.clock.Now())
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		logger.Infow("auction_status_synced", "affected", affected)
	}
	return affected, nil
}

// RefreshStatus 校正单个拍卖的状态缓存
func (s *AuctionService) RefreshStatus(id uint) (string, error) {
	auction, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	if auction == nil {
		return "", ErrNotFound
	}
	status := rules.AuctionStatus(s.clock.Now(), auction)
	changed, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return "", err
	}
	if changed {
		logger.Infow("auction_status_refreshed", "auction_id", id, "status", status)
	}
	return status, nil
}

// prepare 加载同拍品的兄弟场次并确认拍品存在
func (s *AuctionService) prepare(candidate rules.AuctionCandidate) ([]models.Auction, rules.FieldErrors, error) {
	errs := rules.FieldErrors{}
	productID, err := strconv.ParseUint(strings.TrimSpace(candidate.ProductID), 10, 64)
	if err != nil || productID == 0 {
		return nil, errs, nil
	}
	product, err := s.productRepo.GetByID(uint(productID))
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		errs.Add(rules.FieldProductID, "product does not exist")
		return nil, errs, nil
	}
	siblings, err := s.repo.ListByProduct(uint(productID))
	if err != nil {
		return nil, nil, err
	}
	return siblings, errs, nil
}

func (s *AuctionService) present(auction *models.Auction, now time.Time) *models.Auction {
	auction.Status = rules.AuctionStatus(now, auction)
	return auction
}

// scheduleStatusTasks 在开始时刻与结束后一秒投递刷新任务，失败只记录日志
func (s *AuctionService) scheduleStatusTasks(auction *models.Auction, now time.Time) {
	if !s.scheduleTasks || s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	for _, at := range []time.Time{auction.StartTime, auction.EndTime.Add(time.Second)} {
		if at.Before(now) {
			continue
		}
		if err := s.queueClient.EnqueueAuctionStatusRefresh(auction.ID, at); err != nil {
			logger.Warnw("auction_status_task_enqueue_failed", "auction_id", auction.ID, "due_at", at, "error", err)
		}
	}
}

func applyAuctionValues(auction *models.Auction, values rules.AuctionValues) {
	auction.ProductID = values.ProductID
	auction.AuctionNumber = values.AuctionNumber
	auction.StartingPrice = values.StartingPrice
	auction.MinimumIncrement = values.MinimumIncrement
	auction.BidType = values.BidType
	auction.FixedBidValue = values.FixedBidValue
	auction.StartTime = values.StartTime.UTC()
	auction.EndTime = values.EndTime.UTC()
	auction.EntryType = values.EntryType
	auction.EntryFee = values.EntryFee
}

func applyAuctionToggles(auction *models.Auction, input AuctionInput) {
	if input.IsActive != nil {
		auction.IsActive = *input.IsActive
	}
	if input.LastOfferEnabled != nil {
		auction.LastOfferEnabled = *input.LastOfferEnabled
	}
}

// translateAuctionWriteError 唯一索引冲突（并发写入同编号）转为字段错误
func translateAuctionWriteError(err error) error {
	if isUniqueViolation(err) {
		return newValidationError(ErrAuctionInvalid, rules.FieldErrors{
			rules.FieldAuctionNumber: "auction number already exists for this product",
		})
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
