package rules

import (
	"strconv"
	"strings"
	"time"

	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/models"

	"github.com/shopspring/decimal"
)

// 拍卖表单字段名
const (
	FieldProductID        = "product_id"
	FieldAuctionNumber    = "auction_number"
	FieldStartingPrice    = "starting_price"
	FieldMinimumIncrement = "minimum_increment"
	FieldBidType          = "bid_type"
	FieldFixedBidValue    = "fixed_bid_value"
	FieldStartTime        = "start_time"
	FieldEndTime          = "end_time"
	FieldEntryType        = "entry_type"
	FieldEntryFee         = "entry_fee"
)

// AuctionCandidate 待校验的拍卖表单，保留原始字符串由校验器负责转换
type AuctionCandidate struct {
	ProductID        string
	AuctionNumber    string
	StartingPrice    string
	MinimumIncrement string
	BidType          string
	FixedBidValue    string
	StartTime        string
	EndTime          string
	EntryType        string
	EntryFee         string
}

// AuctionValues 校验通过后的拍卖字段
type AuctionValues struct {
	ProductID        uint
	AuctionNumber    int
	StartingPrice    models.Money
	MinimumIncrement models.Money
	BidType          string
	FixedBidValue    models.Money
	StartTime        time.Time
	EndTime          time.Time
	EntryType        string
	EntryFee         models.Money
}

// ValidateAuction 校验拍卖表单。
// siblings 为同一拍品下的已有拍卖，excludingID 为正在编辑的记录（新建传 0）；
// prior 为编辑前的记录，开始时间未改动时不做“不得早于当前时间”的检查。
func ValidateAuction(candidate AuctionCandidate, siblings []models.Auction, excludingID uint, prior *models.Auction, now time.Time) FieldErrors {
	errs := FieldErrors{}

	if raw := strings.TrimSpace(candidate.ProductID); raw == "" {
		errs.Add(FieldProductID, "product is required")
	} else if id, err := strconv.ParseUint(raw, 10, 64); err != nil || id == 0 {
		errs.Add(FieldProductID, "product is invalid")
	}

	number, present, ok := parseWholeNumber(candidate.AuctionNumber)
	switch {
	case !present:
		errs.Add(FieldAuctionNumber, "auction number is required")
	case !ok || number <= 0:
		errs.Add(FieldAuctionNumber, "auction number must be a positive integer")
	default:
		for i := range siblings {
			if siblings[i].ID == excludingID {
				continue
			}
			if int64(siblings[i].AuctionNumber) == number {
				errs.Add(FieldAuctionNumber, "auction number already exists for this product")
				break
			}
		}
	}

	checkNonNegative(errs, FieldStartingPrice, "starting price", candidate.StartingPrice)
	checkNonNegative(errs, FieldMinimumIncrement, "minimum increment", candidate.MinimumIncrement)

	switch normalizeBidType(candidate.BidType) {
	case constants.BidTypeFixed:
		checkPositive(errs, FieldFixedBidValue, "fixed bid value", candidate.FixedBidValue)
	case constants.BidTypeFree:
	default:
		errs.Add(FieldBidType, "bid type must be fixed or free")
	}

	start, startOK := ParseInstant(candidate.StartTime)
	switch {
	case strings.TrimSpace(candidate.StartTime) == "":
		errs.Add(FieldStartTime, "start time is required")
	case !startOK:
		errs.Add(FieldStartTime, "start time is invalid")
	case startChanged(start, prior) && start.Before(now):
		errs.Add(FieldStartTime, "start time cannot be in the past")
	}

	end, endOK := ParseInstant(candidate.EndTime)
	switch {
	case strings.TrimSpace(candidate.EndTime) == "":
		errs.Add(FieldEndTime, "end time is required")
	case !endOK:
		errs.Add(FieldEndTime, "end time is invalid")
	case startOK && !end.After(start):
		errs.Add(FieldEndTime, "end time must be after start time")
	}

	switch normalizeEntryType(candidate.EntryType) {
	case constants.EntryTypePaid:
		checkPositive(errs, FieldEntryFee, "entry fee", candidate.EntryFee)
	case constants.EntryTypeFree:
	default:
		errs.Add(FieldEntryType, "entry type must be free or paid")
	}

	return errs
}

// PreviewStatus 根据表单时间预览状态，仅供展示，不参与校验
func PreviewStatus(candidate AuctionCandidate, now time.Time) (string, bool) {
	start, ok := ParseInstant(candidate.StartTime)
	if !ok {
		return "", false
	}
	end, ok := ParseInstant(candidate.EndTime)
	if !ok {
		return "", false
	}
	return ResolveStatus(now, start, end), true
}

// Values 转换表单字段；仅应在 ValidateAuction 通过后调用。
// 出价方式/入场方式不需要的金额被清零。
func (c AuctionCandidate) Values() AuctionValues {
	productID, _ := strconv.ParseUint(strings.TrimSpace(c.ProductID), 10, 64)
	number, _, _ := parseWholeNumber(c.AuctionNumber)
	start, _ := ParseInstant(c.StartTime)
	end, _ := ParseInstant(c.EndTime)

	values := AuctionValues{
		ProductID:        uint(productID),
		AuctionNumber:    int(number),
		StartingPrice:    moneyOf(c.StartingPrice),
		MinimumIncrement: moneyOf(c.MinimumIncrement),
		BidType:          normalizeBidType(c.BidType),
		StartTime:        start,
		EndTime:          end,
		EntryType:        normalizeEntryType(c.EntryType),
	}
	if values.BidType == constants.BidTypeFixed {
		values.FixedBidValue = moneyOf(c.FixedBidValue)
	}
	if values.EntryType == constants.EntryTypePaid {
		values.EntryFee = moneyOf(c.EntryFee)
	}
	return values
}

func startChanged(start time.Time, prior *models.Auction) bool {
	if prior == nil {
		return true
	}
	return !start.Equal(prior.StartTime)
}

func normalizeBidType(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return constants.BidTypeFree
	}
	return raw
}

func normalizeEntryType(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return constants.EntryTypeFree
	}
	return raw
}

func checkNonNegative(errs FieldErrors, field, label, raw string) {
	d, present, ok := parseDecimal(raw)
	switch {
	case !present:
		errs.Add(field, label+" is required")
	case !ok:
		errs.Add(field, label+" must be a number")
	case d.LessThan(decimal.Zero):
		errs.Add(field, label+" cannot be negative")
	}
}

func checkPositive(errs FieldErrors, field, label, raw string) {
	d, present, ok := parseDecimal(raw)
	switch {
	case !present:
		errs.Add(field, label+" is required")
	case !ok:
		errs.Add(field, label+" must be a number")
	case !d.GreaterThan(decimal.Zero):
		errs.Add(field, label+" must be greater than 0")
	}
}

func moneyOf(raw string) models.Money {
	d, _, ok := parseDecimal(raw)
	if !ok {
		return models.Money{}
	}
	return models.NewMoneyFromDecimal(d)
}
