package authz

import (
	"sort"
	"strconv"
	"strings"
)

const (
	apiV1Prefix  = "/api/v1"
	adminSubject = "admin:"
	rolePrefix   = "role:"
	roleAnchor   = "role:__anchor__"
)

// SubjectForAdmin 管理员在策略中的主体名，如 admin:7
func SubjectForAdmin(adminID uint) string {
	return adminSubject + strconv.FormatUint(uint64(adminID), 10)
}

// NormalizeRole 统一角色名称：空白替换为下划线并补齐 role: 前缀
func NormalizeRole(role string) (string, error) {
	name := strings.Join(strings.Fields(role), "_")
	name = strings.TrimPrefix(name, rolePrefix)
	if name == "" {
		return "", ErrRoleRequired
	}
	return rolePrefix + name, nil
}

// NormalizeObject 统一资源路径，去掉 /api/v1 前缀
func NormalizeObject(object string) string {
	path := strings.TrimSpace(object)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == apiV1Prefix {
		return "/"
	}
	if rest, ok := strings.CutPrefix(path, apiV1Prefix+"/"); ok {
		return "/" + rest
	}
	return path
}

// NormalizeAction 统一授权动作为大写 HTTP 方法
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}

func isRoleName(value string) bool {
	return strings.HasPrefix(value, rolePrefix) && value != roleAnchor
}

// collectRoles 过滤出角色名并去重排序
func collectRoles(names []string) []string {
	seen := make(map[string]bool, len(names))
	roles := make([]string, 0, len(names))
	for _, name := range names {
		if isRoleName(name) && !seen[name] {
			seen[name] = true
			roles = append(roles, name)
		}
	}
	sort.Strings(roles)
	return roles
}

func convertPolicies(rows [][]string) []Policy {
	policies := make([]Policy, 0, len(rows))
	seen := make(map[Policy]bool, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		item := Policy{
			Subject: strings.TrimSpace(row[0]),
			Object:  NormalizeObject(row[1]),
			Action:  NormalizeAction(row[2]),
		}
		if !seen[item] {
			seen[item] = true
			policies = append(policies, item)
		}
	}
	return policies
}

func sortPolicies(policies []Policy) {
	sort.Slice(policies, func(i, j int) bool {
		a, b := policies[i], policies[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Action < b.Action
	})
}
