package service

import (
	"context"
	"time"

	"github.com/bidmart-admin/internal/cache"
	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/repository"
)

const (
	dashboardCacheTTL = 30 * time.Second
	dashboardCacheKey = "dashboard:overview"
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页的拍品、拍卖、优惠码与留言统计。
type DashboardService struct {
	repo  repository.DashboardRepository
	clock clock.Clock
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, clk clock.Clock) *DashboardService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &DashboardService{repo: repo, clock: clk}
}

// DashboardOverviewResponse 仪表盘总览响应
type DashboardOverviewResponse struct {
	GeneratedAt string            `json:"generated_at"`
	Products    DashboardProducts `json:"products"`
	Auctions    DashboardAuctions `json:"auctions"`
	Vouchers    DashboardVouchers `json:"vouchers"`
	Contacts    DashboardContacts `json:"contacts"`
}

// DashboardProducts 拍品统计
type DashboardProducts struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// DashboardAuctions 拍卖统计（按实时推导状态，停用单独计数）
type DashboardAuctions struct {
	Upcoming int64 `json:"upcoming"`
	Live     int64 `json:"live"`
	Ended    int64 `json:"ended"`
	Inactive int64 `json:"inactive"`
}

// DashboardVouchers 优惠码统计
type DashboardVouchers struct {
	Active      int64 `json:"active"`
	Expired     int64 `json:"expired"`
	Maxed       int64 `json:"maxed"`
	Inactive    int64 `json:"inactive"`
	Redemptions int64 `json:"redemptions"`
}

// DashboardContacts 留言统计
type DashboardContacts struct {
	Unread   int64 `json:"unread"`
	Feedback int64 `json:"feedback"`
}

// GetOverview 获取总览，forceRefresh 为 true 时跳过缓存
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{}, nil
	}
	if !forceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	now := s.clock.Now()
	row, err := s.repo.GetOverview(now)
	if err != nil {
		return nil, err
	}
	response := &DashboardOverviewResponse{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Products: DashboardProducts{
			Total:  row.ProductsTotal,
			Active: row.ActiveProducts,
		},
		Auctions: DashboardAuctions{
			Upcoming: row.AuctionsUpcoming,
			Live:     row.AuctionsLive,
			Ended:    row.AuctionsEnded,
			Inactive: row.AuctionsInactive,
		},
		Vouchers: DashboardVouchers{
			Active:      row.VouchersActive,
			Expired:     row.VouchersExpired,
			Maxed:       row.VouchersMaxed,
			Inactive:    row.VouchersInactive,
			Redemptions: row.VoucherRedemption,
		},
		Contacts: DashboardContacts{
			Unread:   row.ContactsNew,
			Feedback: row.FeedbackTotal,
		},
	}
	_ = cache.SetJSON(ctx, dashboardCacheKey, response, dashboardCacheTTL)
	return response, nil
}

// InvalidateOverview 清除总览缓存
func (s *DashboardService) InvalidateOverview(ctx context.Context) {
	_ = cache.Del(ctx, dashboardCacheKey)
}
