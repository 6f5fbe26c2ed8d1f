package public

import (
	"time"

	"github.com/bidmart-admin/internal/constants"
	handlershared "github.com/bidmart-admin/internal/http/handlers/shared"
	"github.com/bidmart-admin/internal/http/response"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicAuctionView 公开拍卖响应结构
type PublicAuctionView struct {
	ID               uint         `json:"id"`
	ProductID        uint         `json:"product_id"`
	ProductTitle     string       `json:"product_title,omitempty"`
	ProductSlug      string       `json:"product_slug,omitempty"`
	AuctionNumber    int          `json:"auction_number"`
	StartTime        time.Time    `json:"start_time"`
	EndTime          time.Time    `json:"end_time"`
	Status           string       `json:"status"`
	StartingPrice    models.Money `json:"starting_price"`
	MinimumIncrement models.Money `json:"minimum_increment"`
	CurrentBid       models.Money `json:"current_bid"`
	BidType          string       `json:"bid_type"`
	FixedBidValue    models.Money `json:"fixed_bid_value"`
	EntryType        string       `json:"entry_type"`
	EntryFee         models.Money `json:"entry_fee"`
	LastOfferEnabled bool         `json:"last_offer_enabled"`
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok", "time": h.Clock.Now().UTC().Format(time.RFC3339)})
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetAuctions 获取启用中的拍卖，未指定状态时仅返回进行中的场次
func (h *Handler) GetAuctions(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	productID, ok := handlershared.ParseQueryUint(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	status := c.DefaultQuery("status", constants.AuctionStatusLive)
	switch status {
	case constants.AuctionStatusUpcoming, constants.AuctionStatusLive, constants.AuctionStatusEnded:
	default:
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	active := true
	auctions, total, err := h.AuctionService.List(service.AuctionListQuery{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
		Status:    status,
		IsActive:  &active,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.auction_fetch_failed", err)
		return
	}

	items := make([]PublicAuctionView, 0, len(auctions))
	for _, auction := range auctions {
		view := PublicAuctionView{
			ID:               auction.ID,
			ProductID:        auction.ProductID,
			AuctionNumber:    auction.AuctionNumber,
			StartTime:        auction.StartTime,
			EndTime:          auction.EndTime,
			Status:           auction.Status,
			StartingPrice:    auction.StartingPrice,
			MinimumIncrement: auction.MinimumIncrement,
			CurrentBid:       auction.CurrentBid,
			BidType:          auction.BidType,
			FixedBidValue:    auction.FixedBidValue,
			EntryType:        auction.EntryType,
			EntryFee:         auction.EntryFee,
			LastOfferEnabled: auction.LastOfferEnabled,
		}
		if auction.Product != nil {
			view.ProductTitle = auction.Product.Title
			view.ProductSlug = auction.Product.Slug
		}
		items = append(items, view)
	}
	pageResponse(c, items, page, pageSize, total)
}
