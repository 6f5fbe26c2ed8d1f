package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/bidmart-admin/internal/cache"
	"github.com/bidmart-admin/internal/clock"
	"github.com/bidmart-admin/internal/config"
	"github.com/bidmart-admin/internal/logger"
	"github.com/bidmart-admin/internal/models"
	"github.com/bidmart-admin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 后台认证服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
	clock     clock.Clock
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, clk clock.Clock) *AuthService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &AuthService{cfg: cfg, adminRepo: adminRepo, clock: clk}
}

// JWTClaims JWT 声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(admin *models.Admin) (string, time.Time, error) {
	if strings.TrimSpace(s.cfg.JWT.SecretKey) == "" {
		return "", time.Time{}, ErrJWTSecretMissing
	}
	now := s.clock.Now()
	hours := s.cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	claims := JWTClaims{
		AdminID:      admin.ID,
		Username:     admin.Username,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// LoadAuthState 读取管理员鉴权快照，缓存未命中时回源数据库
func (s *AuthService) LoadAuthState(ctx context.Context, adminID uint) (*cache.AdminAuthState, error) {
	state, hit, err := cache.GetAdminAuthState(ctx, adminID)
	if err != nil {
		logger.Warnw("admin_auth_state_cache_read_failed", "admin_id", adminID, "error", err)
	}
	if hit && state != nil {
		return state, nil
	}
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	state = cache.BuildAdminAuthState(admin)
	_ = cache.SetAdminAuthState(ctx, state)
	return state, nil
}

// AdminPrincipal 通过鉴权的管理员身份
type AdminPrincipal struct {
	AdminID  uint
	Username string
	IsSuper  bool
}

// Authenticate 校验后台 Token：签名与有效期、账号存在、未因改密被吊销
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*AdminPrincipal, error) {
	if strings.TrimSpace(s.cfg.JWT.SecretKey) == "" {
		return nil, ErrJWTSecretMissing
	}
	claims, err := s.ParseJWT(tokenString)
	if err != nil || claims.AdminID == 0 {
		return nil, ErrTokenInvalid
	}
	state, err := s.LoadAuthState(ctx, claims.AdminID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	if !state.Accepts(claims.TokenVersion, issuedAt) {
		return nil, ErrTokenRevoked
	}
	return &AdminPrincipal{AdminID: state.AdminID, Username: state.Username, IsSuper: state.IsSuper}, nil
}

// Login 管理员登录
func (s *AuthService) Login(username, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := s.clock.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.TouchLastLogin(admin.ID, now); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	return admin, token, expiresAt, nil
}

// ChangePassword 修改管理员密码，旧 Token 全部失效
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := CheckPassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	admin.PasswordHash = hashed
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))
	logger.Infow("admin_password_changed", "admin_id", admin.ID)
	return nil
}

var adminUsernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

// CreateAdmin 创建后台账号，密码需满足密码策略
func (s *AuthService) CreateAdmin(username, password, displayName string, isSuper bool) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if !adminUsernamePattern.MatchString(username) {
		return nil, ErrAdminUsername
	}
	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminExists
	}
	if err := CheckPassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, err
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		Username:     username,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hashed,
		IsSuper:      isSuper,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	logger.Infow("admin_created", "admin_id", admin.ID, "username", admin.Username, "is_super", admin.IsSuper)
	return admin, nil
}
