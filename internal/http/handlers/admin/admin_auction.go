package admin

import (
	"errors"

	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/rules"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// AuctionRequest 创建/更新拍卖请求，数值字段接受数字或字符串
type AuctionRequest struct {
	ProductID        formValue `json:"product_id"`
	AuctionNumber    formValue `json:"auction_number"`
	StartingPrice    formValue `json:"starting_price"`
	MinimumIncrement formValue `json:"minimum_increment"`
	BidType          formValue `json:"bid_type"`
	FixedBidValue    formValue `json:"fixed_bid_value"`
	StartTime        formValue `json:"start_time"`
	EndTime          formValue `json:"end_time"`
	EntryType        formValue `json:"entry_type"`
	EntryFee         formValue `json:"entry_fee"`
	IsActive         *bool     `json:"is_active"`
	LastOfferEnabled *bool     `json:"last_offer_enabled"`
}

func (r AuctionRequest) candidate() rules.AuctionCandidate {
	return rules.AuctionCandidate{
		ProductID:        r.ProductID.String(),
		AuctionNumber:    r.AuctionNumber.String(),
		StartingPrice:    r.StartingPrice.String(),
		MinimumIncrement: r.MinimumIncrement.String(),
		BidType:          r.BidType.String(),
		FixedBidValue:    r.FixedBidValue.String(),
		StartTime:        r.StartTime.String(),
		EndTime:          r.EndTime.String(),
		EntryType:        r.EntryType.String(),
		EntryFee:         r.EntryFee.String(),
	}
}

func (r AuctionRequest) toInput() service.AuctionInput {
	return service.AuctionInput{
		Candidate:        r.candidate(),
		IsActive:         r.IsActive,
		LastOfferEnabled: r.LastOfferEnabled,
	}
}

// ActiveRequest 启用/停用请求
type ActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// GetAdminAuctions 拍卖列表，status 按当前时间推导
func (h *Handler) GetAdminAuctions(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	productID, ok := handlershared.ParseQueryUint(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	isActive, ok := handlershared.ParseQueryBool(c, "is_active")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	auctions, total, err := h.AuctionService.List(service.AuctionListQuery{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
		Status:    c.Query("status"),
		IsActive:  isActive,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.auction_fetch_failed", err)
		return
	}
	pageResponse(c, auctions, page, pageSize, total)
}

// GetAdminAuction 拍卖详情
func (h *Handler) GetAdminAuction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	auction, err := h.AuctionService.Get(id)
	if err != nil {
		respondAuctionError(c, err, "error.auction_fetch_failed")
		return
	}
	response.Success(c, auction)
}

// CreateAuction 创建拍卖
func (h *Handler) CreateAuction(c *gin.Context) {
	var req AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	auction, err := h.AuctionService.Create(req.toInput())
	if err != nil {
		respondAuctionError(c, err, "error.auction_create_failed")
		return
	}
	response.Success(c, auction)
}

// UpdateAuction 更新拍卖
func (h *Handler) UpdateAuction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	auction, err := h.AuctionService.Update(id, req.toInput())
	if err != nil {
		respondAuctionError(c, err, "error.auction_update_failed")
		return
	}
	response.Success(c, auction)
}

// DeleteAuction 删除拍卖
func (h *Handler) DeleteAuction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.AuctionService.Delete(id); err != nil {
		respondAuctionError(c, err, "error.auction_delete_failed")
		return
	}
	h.audit(c, "auction_delete", "auction", idString(id), nil)
	response.Success(c, gin.H{"deleted": true})
}

// SetAuctionActive 启用/停用拍卖
func (h *Handler) SetAuctionActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	auction, err := h.AuctionService.SetActive(id, *req.IsActive)
	if err != nil {
		respondAuctionError(c, err, "error.auction_update_failed")
		return
	}
	response.Success(c, auction)
}

// PreviewAuctionStatus 按表单时间预览状态；时间不完整时 status 为空
func (h *Handler) PreviewAuctionStatus(c *gin.Context) {
	var req AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	status, ok := h.AuctionService.PreviewStatus(req.candidate())
	response.Success(c, gin.H{"status": status, "available": ok})
}

func respondAuctionError(c *gin.Context, err error, fallbackKey string) {
	if respondValidation(c, "error.auction_invalid", err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.auction_not_found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}
