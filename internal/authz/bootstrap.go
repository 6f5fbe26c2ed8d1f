package authz

import (
	"fmt"

	"github.com/bidmart-admin/internal/logger"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 预置角色矩阵
//
//	auditor     只读
//	operations  拍品、分类、拍卖、优惠码
//	support     留言处理与线下核销
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:     "operations",
			Inherits: []string{"auditor"},
			Policies: []Policy{
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/auctions", Action: "*"},
				{Object: "/admin/auctions/preview-status", Action: "POST"},
				{Object: "/admin/auctions/:id", Action: "*"},
				{Object: "/admin/auctions/:id/active", Action: "PATCH"},
				{Object: "/admin/vouchers", Action: "*"},
				{Object: "/admin/vouchers/:id", Action: "*"},
				{Object: "/admin/vouchers/:id/active", Action: "PATCH"},
			},
		},
		{
			Role:     "support",
			Inherits: []string{"auditor"},
			Policies: []Policy{
				{Object: "/admin/contacts/:id", Action: "PATCH"},
				{Object: "/admin/contacts/:id", Action: "DELETE"},
				{Object: "/admin/contacts/:id/status", Action: "PATCH"},
				{Object: "/admin/vouchers/:id/redeem", Action: "POST"},
			},
		},
	}
}

// IsBuiltinRole 判断是否为预置角色
func IsBuiltinRole(role string) bool {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return false
	}
	for _, seed := range BuiltinRoleSeeds() {
		if name, _ := NormalizeRole(seed.Role); name == normalized {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	added := 0
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			ok, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if ok {
				added++
			}
		}
		for _, policy := range seed.Policies {
			ok, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), NormalizeAction(policy.Action))
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if ok {
				added++
			}
		}
	}
	if added > 0 {
		logger.Infow("authz_builtin_roles_bootstrapped", "added_rules", added)
	}
	return nil
}
