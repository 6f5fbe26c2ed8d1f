package main

import (
	"flag"
	"os"
	"time"

	"github.com/bidmart-admin/internal/app"
	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/constants"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/rules"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	var fixturePath string
	flag.StringVar(&fixturePath, "fixtures", "cmd/seed/fixtures.yml", "种子数据文件路径")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		stdLog.Fatalf("Failed to read fixtures: %v", err)
	}
	var data fixtureFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		stdLog.Fatalf("Failed to parse fixtures: %v", err)
	}

	if err := app.OpenDatabase(cfg.Database); err != nil {
		stdLog.Fatalf("Failed to prepare database: %v", err)
	}

	now := time.Now().UTC()
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		return seed(tx, data, now)
	}); err != nil {
		stdLog.Fatalf("Seed failed: %v", err)
	}
	logger.Infow("seed_completed",
		"categories", len(data.Categories),
		"products", len(data.Products),
		"vouchers", len(data.Vouchers),
	)
}

func seed(tx *gorm.DB, data fixtureFile, now time.Time) error {
	categoryIDs := make(map[string]uint, len(data.Categories))
	for _, item := range data.Categories {
		category := models.Category{Slug: item.Slug, Name: item.Name, Icon: item.Icon, SortOrder: item.SortOrder}
		if err := tx.Where(models.Category{Slug: item.Slug}).FirstOrCreate(&category).Error; err != nil {
			return err
		}
		categoryIDs[item.Slug] = category.ID
	}

	for _, item := range data.Products {
		price, _, err := models.ParseMoney(item.BasePrice)
		if err != nil {
			return err
		}
		product := models.Product{
			CategoryID:  categoryIDs[item.Category],
			Slug:        item.Slug,
			Title:       item.Title,
			Description: item.Description,
			Images:      item.Images,
			BasePrice:   price,
			IsActive:    true,
		}
		if err := tx.Where(models.Product{Slug: item.Slug}).FirstOrCreate(&product).Error; err != nil {
			return err
		}
		for _, fixture := range item.Auctions {
			if err := seedAuction(tx, product.ID, fixture, now); err != nil {
				return err
			}
		}
	}

	for _, item := range data.Vouchers {
		if err := seedVoucher(tx, item, now); err != nil {
			return err
		}
	}
	return nil
}

func seedAuction(tx *gorm.DB, productID uint, item auctionFixture, now time.Time) error {
	var count int64
	if err := tx.Model(&models.Auction{}).Where("product_id = ? AND auction_number = ?", productID, item.Number).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debugw("seed_auction_exists", "product_id", productID, "auction_number", item.Number)
		return nil
	}
	start := now.Add(item.StartOffset)
	end := start.Add(item.Duration)
	starting, _, err := models.ParseMoney(item.StartingPrice)
	if err != nil {
		return err
	}
	increment, _, err := models.ParseMoney(item.MinimumIncrement)
	if err != nil {
		return err
	}
	auction := models.Auction{
		ProductID:        productID,
		AuctionNumber:    item.Number,
		StartTime:        start,
		EndTime:          end,
		StartingPrice:    starting,
		MinimumIncrement: increment,
		BidType:          constants.BidTypeFree,
		EntryType:        constants.EntryTypeFree,
		IsActive:         true,
		LastOfferEnabled: item.LastOffer,
	}
	auction.Status = rules.AuctionStatus(now, &auction)
	return tx.Create(&auction).Error
}

func seedVoucher(tx *gorm.DB, item voucherFixture, now time.Time) error {
	var count int64
	if err := tx.Model(&models.Voucher{}).Where("LOWER(code) = LOWER(?)", item.Code).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debugw("seed_voucher_exists", "code", item.Code)
		return nil
	}
	discount, _, err := models.ParseMoney(item.DiscountAmount)
	if err != nil {
		return err
	}
	var productIDs []uint
	if len(item.ProductSlugs) > 0 {
		if err := tx.Model(&models.Product{}).Where("slug IN ?", item.ProductSlugs).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
	}
	voucher := models.Voucher{
		Code:               item.Code,
		Type:               item.Type,
		DiscountAmount:     discount,
		ApplicableProducts: models.UintArray(productIDs).Normalize(),
		MaxUses:            item.MaxUses,
		ExpiryDate:         now.Add(item.ValidFor),
		IsActive:           true,
	}
	return tx.Create(&voucher).Error
}
