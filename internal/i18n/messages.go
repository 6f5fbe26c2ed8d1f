package i18n

var messages = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":            "请求参数错误",
		"error.unauthorized":           "未登录或登录已失效",
		"error.forbidden":              "无权执行该操作",
		"error.not_found":              "资源不存在",
		"error.save_failed":            "保存失败",
		"error.too_many_requests":      "请求过于频繁，请稍后再试",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后再试",
		"error.login_too_many":         "登录尝试次数过多，请 %d 秒后再试",
		"error.rate_limit_unavailable": "限流服务暂不可用",

		"error.admin_id_invalid":       "管理员 ID 无效",
		"error.admin_id_type_invalid":  "管理员 ID 类型错误",
		"error.admin_login_invalid":    "用户名或密码错误",
		"error.admin_username_invalid": "用户名需为 3-32 位字母、数字或 _.-",
		"error.admin_username_exists":  "用户名已存在",
		"error.admin_create_failed":    "创建管理员失败",
		"error.login_failed":           "登录失败",
		"error.admin_fetch_failed":      "获取管理员信息失败",
		"error.admin_not_found":         "管理员不存在",
		"error.jwt_secret_missing":     "JWT 密钥未配置",
		"error.token_invalid":          "登录凭证无效",
		"error.token_revoked":          "登录凭证已失效，请重新登录",
		"error.auth_header_missing":    "缺少认证信息",
		"error.auth_header_invalid":    "认证信息格式错误",

		"error.password_old_invalid":     "原密码错误",
		"error.password_weak":            "密码强度不足",
		"error.password_min_length":      "密码长度至少 %d 位",
		"error.password_require_upper":   "密码需包含大写字母",
		"error.password_require_lower":   "密码需包含小写字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_require_special": "密码需包含特殊字符",

		"error.captcha_required":        "请完成验证码",
		"error.captcha_invalid":         "验证码错误",
		"error.captcha_verify_failed":   "验证码校验失败",
		"error.captcha_generate_failed": "验证码生成失败",
		"error.captcha_unavailable":     "验证码服务不可用",

		"error.authz_fetch_failed":  "获取权限信息失败",
		"error.audit_fetch_failed":  "获取操作日志失败",
		"error.authz_update_failed": "更新权限失败",
		"error.role_invalid":        "角色无效",
		"error.role_immutable":      "预置角色不可删除",

		"error.slug_exists":            "Slug 已存在",
		"error.category_fetch_failed":  "获取分类失败",
		"error.category_create_failed": "创建分类失败",
		"error.category_update_failed": "更新分类失败",
		"error.category_delete_failed": "删除分类失败",
		"error.category_not_found":     "分类不存在",
		"error.category_invalid":       "分类参数无效",
		"error.category_in_use":        "分类下仍有商品，无法删除",

		"error.product_fetch_failed":  "获取商品失败",
		"error.product_create_failed": "创建商品失败",
		"error.product_update_failed": "更新商品失败",
		"error.product_delete_failed": "删除商品失败",
		"error.product_not_found":     "商品不存在",
		"error.product_invalid":       "商品参数无效",
		"error.product_in_use":        "商品下仍有拍卖，无法删除",

		"error.auction_fetch_failed":  "获取拍卖失败",
		"error.auction_create_failed": "创建拍卖失败",
		"error.auction_update_failed": "更新拍卖失败",
		"error.auction_delete_failed": "删除拍卖失败",
		"error.auction_not_found":     "拍卖不存在",
		"error.auction_invalid":       "拍卖参数校验未通过",

		"error.voucher_fetch_failed":   "获取优惠券失败",
		"error.voucher_create_failed":  "创建优惠券失败",
		"error.voucher_update_failed":  "更新优惠券失败",
		"error.voucher_delete_failed":  "删除优惠券失败",
		"error.voucher_not_found":      "优惠券不存在",
		"error.voucher_invalid":        "优惠券参数校验未通过",
		"error.voucher_code_exists":    "优惠券码已存在",
		"error.voucher_redeem_failed":  "优惠券核销失败",
		"error.voucher_not_redeemable": "优惠券当前不可核销",

		"error.contact_fetch_failed":   "获取留言失败",
		"error.contact_update_failed":  "更新留言失败",
		"error.contact_delete_failed":  "删除留言失败",
		"error.contact_not_found":      "留言不存在",
		"error.contact_status_invalid": "留言状态流转无效",
		"error.contact_invalid":        "留言内容校验未通过",
		"error.contact_submit_failed":  "提交留言失败",

		"error.dashboard_fetch_failed": "获取仪表盘数据失败",
		"error.queue_unavailable":      "任务队列不可用",
	},
	LocaleEN: {
		"error.bad_request":            "Invalid request parameters",
		"error.unauthorized":           "Not signed in or session expired",
		"error.forbidden":              "You are not allowed to perform this action",
		"error.not_found":              "Resource not found",
		"error.save_failed":            "Failed to save",
		"error.too_many_requests":      "Too many requests, please try again later",
		"error.rate_limited":           "Too many requests, retry in %d seconds",
		"error.login_too_many":         "Too many login attempts, retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter unavailable",

		"error.admin_id_invalid":       "Invalid admin ID",
		"error.admin_id_type_invalid":  "Invalid admin ID type",
		"error.admin_login_invalid":    "Invalid username or password",
		"error.admin_username_invalid": "Username must be 3-32 letters, digits or _.-",
		"error.admin_username_exists":  "Username already exists",
		"error.admin_create_failed":    "Failed to create admin",
		"error.login_failed":           "Login failed",
		"error.admin_fetch_failed":      "Failed to load admin",
		"error.admin_not_found":         "Admin not found",
		"error.jwt_secret_missing":     "JWT secret is not configured",
		"error.token_invalid":          "Invalid token",
		"error.token_revoked":          "Token revoked, please sign in again",
		"error.auth_header_missing":    "Missing authorization header",
		"error.auth_header_invalid":    "Malformed authorization header",

		"error.password_old_invalid":     "Current password is incorrect",
		"error.password_weak":            "Password is too weak",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_require_special": "Password must contain a special character",

		"error.captcha_required":        "Captcha is required",
		"error.captcha_invalid":         "Captcha is incorrect",
		"error.captcha_verify_failed":   "Failed to verify captcha",
		"error.captcha_generate_failed": "Failed to generate captcha",
		"error.captcha_unavailable":     "Captcha service unavailable",

		"error.authz_fetch_failed":  "Failed to load permissions",
		"error.audit_fetch_failed":  "Failed to load audit logs",
		"error.authz_update_failed": "Failed to update permissions",
		"error.role_invalid":        "Invalid role",
		"error.role_immutable":      "Built-in roles cannot be deleted",

		"error.slug_exists":            "Slug already exists",
		"error.category_fetch_failed":  "Failed to load categories",
		"error.category_create_failed": "Failed to create category",
		"error.category_update_failed": "Failed to update category",
		"error.category_delete_failed": "Failed to delete category",
		"error.category_not_found":     "Category not found",
		"error.category_invalid":       "Invalid category",
		"error.category_in_use":        "Category still has products",

		"error.product_fetch_failed":  "Failed to load products",
		"error.product_create_failed": "Failed to create product",
		"error.product_update_failed": "Failed to update product",
		"error.product_delete_failed": "Failed to delete product",
		"error.product_not_found":     "Product not found",
		"error.product_invalid":       "Invalid product",
		"error.product_in_use":        "Product still has auctions",

		"error.auction_fetch_failed":  "Failed to load auctions",
		"error.auction_create_failed": "Failed to create auction",
		"error.auction_update_failed": "Failed to update auction",
		"error.auction_delete_failed": "Failed to delete auction",
		"error.auction_not_found":     "Auction not found",
		"error.auction_invalid":       "Auction validation failed",

		"error.voucher_fetch_failed":   "Failed to load vouchers",
		"error.voucher_create_failed":  "Failed to create voucher",
		"error.voucher_update_failed":  "Failed to update voucher",
		"error.voucher_delete_failed":  "Failed to delete voucher",
		"error.voucher_not_found":      "Voucher not found",
		"error.voucher_invalid":        "Voucher validation failed",
		"error.voucher_code_exists":    "Voucher code already exists",
		"error.voucher_redeem_failed":  "Failed to redeem voucher",
		"error.voucher_not_redeemable": "Voucher cannot be redeemed",

		"error.contact_fetch_failed":   "Failed to load messages",
		"error.contact_update_failed":  "Failed to update message",
		"error.contact_delete_failed":  "Failed to delete message",
		"error.contact_not_found":      "Message not found",
		"error.contact_status_invalid": "Invalid message status transition",
		"error.contact_invalid":        "Message validation failed",
		"error.contact_submit_failed":  "Failed to submit message",

		"error.dashboard_fetch_failed": "Failed to load dashboard",
		"error.queue_unavailable":      "Task queue unavailable",
	},
}
