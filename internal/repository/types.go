package repository

import "time"

// ProductListFilter 查询拍品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	WithCategory bool
}

// AuctionListFilter 查询拍卖列表的过滤条件
// Status 按 Now 与开始/结束时间实时推导，不使用缓存列。
type AuctionListFilter struct {
	Page        int
	PageSize    int
	ProductID   uint
	Status      string
	Now         time.Time
	IsActive    *bool
	WithProduct bool
}

// VoucherListFilter 查询优惠码列表的过滤条件
type VoucherListFilter struct {
	Page     int
	PageSize int
	Code     string
	Type     string
	Status   string
	Now      time.Time
}

// VoucherUsageListFilter 查询优惠码使用记录的过滤条件
type VoucherUsageListFilter struct {
	Page      int
	PageSize  int
	VoucherID uint
	UserID    string
}

// ContactListFilter 查询留言列表的过滤条件
type ContactListFilter struct {
	Page     int
	PageSize int
	Kind     string
	Status   string
	Search   string
}

// AuditLogListFilter 查询审计日志的过滤条件
type AuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	Action          string
	ResourceType    string
	ResourceID      string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
