package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/pointline/pointline-api/internal/access"
	"github.com/pointline/pointline-api/internal/domain/customer"
	"github.com/pointline/pointline-api/internal/domain/user"
	"github.com/pointline/pointline-api/internal/pkg/jwt"
	"github.com/pointline/pointline-api/internal/pkg/password"
)

// CustomerLookup resolves the caller's customer record within a tenant.
type CustomerLookup interface {
	GetByUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) (*customer.Customer, error)
}

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	customers  CustomerLookup
	jwtService *jwt.Service
	redis      *redis.Client // nil if Redis disabled
}

// NewService creates auth service
func NewService(userRepo user.Repository, customers CustomerLookup, jwtService *jwt.Service, redisClient *redis.Client) *Service {
	return &Service{
		userRepo:   userRepo,
		customers:  customers,
		jwtService: jwtService,
		redis:      redisClient,
	}
}

// Register creates a new principal and issues a token pair.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	if !user.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if req.TenantID == nil {
		// Every self-registerable role is tenant-bound.
		return nil, ErrTenantRequired
	}
	tenantID, err := uuid.Parse(*req.TenantID)
	if err != nil {
		return nil, ErrTenantRequired
	}

	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        []string{req.Role},
		TenantID:     &tenantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	log.Info().
		Str("user_id", u.ID.String()).
		Str("role", req.Role).
		Msg("user registered")
	return s.generateTokens(ctx, u)
}

// Login authenticates a principal and issues a token pair.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserDisabled
	}

	return s.generateTokens(ctx, u)
}

// Refresh rotates a refresh token into a new token pair. When Redis is
// available the old token must still be registered and is revoked on use.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	if s.redis != nil {
		key := refreshKey(claims.UserID, jwt.HashRefreshToken(refreshToken))
		deleted, err := s.redis.Del(ctx, key).Result()
		if err == nil && deleted == 0 {
			return nil, ErrInvalidRefresh
		}
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if !u.IsActive() {
		return nil, ErrUserDisabled
	}

	return s.generateTokens(ctx, u)
}

func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	var customerID *uuid.UUID
	if u.TenantID != nil && u.HasRole(access.RoleCustomer) {
		c, err := s.customers.GetByUserAndTenant(ctx, u.ID, *u.TenantID)
		if err == nil && c != nil {
			customerID = &c.ID
		}
	}

	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, u.TenantID, customerID, u.Roles)
	if err != nil {
		return nil, err
	}

	refreshToken, _, expiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}
	if s.redis != nil {
		key := refreshKey(u.ID, jwt.HashRefreshToken(refreshToken))
		if err := s.redis.Set(ctx, key, "1", time.Until(expiresAt)).Err(); err != nil {
			log.Warn().Err(err).Msg("failed to register refresh token")
		}
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtService.GetAccessTTL().Seconds()),
	}, nil
}

func refreshKey(userID uuid.UUID, hash string) string {
	return "refresh:" + userID.String() + ":" + hash
}
