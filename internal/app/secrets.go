package app

import (
	"errors"
	"strings"

	"github.com/bidmart-admin/internal/config"
)

// ErrWeakJWTSecret release 模式下 JWT 密钥过短或仍为占位值
var ErrWeakJWTSecret = errors.New("jwt secret is weak or still a placeholder")

const minJWTSecretLength = 32

var placeholderSecrets = []string{"change-me", "change-in-production", "your-secret-key"}

// WeakSecret 判断密钥是否过短或包含占位文本
func WeakSecret(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return true
	}
	lower := strings.ToLower(secret)
	for _, marker := range placeholderSecrets {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// CheckSecrets release 模式下拒绝弱密钥；其他模式只返回是否需要告警
func CheckSecrets(cfg *config.Config) (warn bool, err error) {
	if !WeakSecret(cfg.JWT.SecretKey) {
		return false, nil
	}
	if cfg.Server.Mode == "release" {
		return false, ErrWeakJWTSecret
	}
	return true, nil
}
