package main

import "time"

type fixtureFile struct {
	Categories []categoryFixture `yaml:"categories"`
	Products   []productFixture  `yaml:"products"`
	Vouchers   []voucherFixture  `yaml:"vouchers"`
}

type categoryFixture struct {
	Slug      string `yaml:"slug"`
	Name      string `yaml:"name"`
	Icon      string `yaml:"icon"`
	SortOrder int    `yaml:"sort_order"`
}

type productFixture struct {
	Category    string           `yaml:"category"`
	Slug        string           `yaml:"slug"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Images      []string         `yaml:"images"`
	BasePrice   string           `yaml:"base_price"`
	Auctions    []auctionFixture `yaml:"auctions"`
}

// auctionFixture 时间以相对执行时刻的偏移表示，便于重复生成不同状态的场次
type auctionFixture struct {
	Number           int           `yaml:"number"`
	StartOffset      time.Duration `yaml:"start_offset"`
	Duration         time.Duration `yaml:"duration"`
	StartingPrice    string        `yaml:"starting_price"`
	MinimumIncrement string        `yaml:"minimum_increment"`
	LastOffer        bool          `yaml:"last_offer"`
}

type voucherFixture struct {
	Code           string        `yaml:"code"`
	Type           string        `yaml:"type"`
	DiscountAmount string        `yaml:"discount_amount"`
	MaxUses        int           `yaml:"max_uses"`
	ValidFor       time.Duration `yaml:"valid_for"`
	ProductSlugs   []string      `yaml:"products"`
}
