package service

import (
	"strings"
	"unicode"

	"github.com/bidmart-admin/internal/config"
)

// 密码规则标识，同时作为 i18n 键后缀
const (
	PasswordRuleMinLength = "min_length"
	PasswordRuleUpper     = "require_upper"
	PasswordRuleLower     = "require_lower"
	PasswordRuleNumber    = "require_number"
	PasswordRuleSpecial   = "require_special"
)

// PasswordPolicyError 管理员密码未满足的全部规则，按配置顺序排列
type PasswordPolicyError struct {
	Violations []string
	MinLength  int
}

func (e *PasswordPolicyError) Error() string {
	return "password policy violated: " + strings.Join(e.Violations, ",")
}

func (e *PasswordPolicyError) Unwrap() error {
	return ErrWeakPassword
}

// MessageKey 首个未满足规则对应的提示键
func (e *PasswordPolicyError) MessageKey() string {
	if e == nil || len(e.Violations) == 0 {
		return "error.password_weak"
	}
	return "error.password_" + e.Violations[0]
}

// MessageArgs 提示参数，仅长度规则带最小长度
func (e *PasswordPolicyError) MessageArgs() []interface{} {
	if e != nil && len(e.Violations) > 0 && e.Violations[0] == PasswordRuleMinLength {
		return []interface{}{e.MinLength}
	}
	return nil
}

type passwordTraits struct {
	upper, lower, number, special bool
	length                        int
}

func inspectPassword(password string) passwordTraits {
	var t passwordTraits
	for _, r := range password {
		t.length++
		switch {
		case unicode.IsUpper(r):
			t.upper = true
		case unicode.IsLower(r):
			t.lower = true
		case unicode.IsDigit(r):
			t.number = true
		default:
			t.special = true
		}
	}
	return t
}

// CheckPassword 按配置校验管理员密码，一次返回全部未满足项
func CheckPassword(policy config.PasswordPolicyConfig, password string) error {
	t := inspectPassword(password)
	rules := []struct {
		name    string
		enabled bool
		ok      bool
	}{
		{PasswordRuleMinLength, policy.MinLength > 0, t.length >= policy.MinLength},
		{PasswordRuleUpper, policy.RequireUpper, t.upper},
		{PasswordRuleLower, policy.RequireLower, t.lower},
		{PasswordRuleNumber, policy.RequireNumber, t.number},
		{PasswordRuleSpecial, policy.RequireSpecial, t.special},
	}
	var violations []string
	for _, rule := range rules {
		if rule.enabled && !rule.ok {
			violations = append(violations, rule.name)
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &PasswordPolicyError{Violations: violations, MinLength: policy.MinLength}
}
