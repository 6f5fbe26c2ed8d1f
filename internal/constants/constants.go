package constants

// 拍卖时间状态常量（由开始/结束时间推导，不以存储值为准）
const (
	AuctionStatusUpcoming = "upcoming"
	AuctionStatusLive     = "live"
	AuctionStatusEnded    = "ended"
)

// 出价方式常量
const (
	BidTypeFixed = "fixed"
	BidTypeFree  = "free"
)

// 入场方式常量
const (
	EntryTypeFree = "free"
	EntryTypePaid = "paid"
)

// 优惠券类型常量
const (
	VoucherTypeJoin     = "join"
	VoucherTypeDiscount = "discount"
)

// 优惠券可用状态常量（按优先级排列）
const (
	VoucherStatusInactive = "inactive"
	VoucherStatusExpired  = "expired"
	VoucherStatusMaxed    = "maxed"
	VoucherStatusActive   = "active"
)

// 核销拒绝原因常量
const (
	RedeemReasonInactive      = VoucherStatusInactive
	RedeemReasonExpired       = VoucherStatusExpired
	RedeemReasonMaxed         = VoucherStatusMaxed
	RedeemReasonNotApplicable = "not-applicable-to-product"
)

// 留言类型常量
const (
	ContactKindContact  = "contact"
	ContactKindFeedback = "feedback"
)

// 留言处理状态常量
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskAuctionStatusRefresh = "auction:status_refresh"
)

// 验证码场景常量
const (
	CaptchaSceneAdminLogin = "admin_login"
)
