package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"videohub/internal/config"
	"videohub/internal/metrics"
	"videohub/internal/microservices/http-api/models"
	"videohub/internal/microservices/http-api/repository"
	"videohub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNameInUse           = errors.New("username already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpiredToken        = errors.New("token has expired")
	ErrEmailInUse          = errors.New("email already in use")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const tokenTypeAccess = "access"

// Claims carried by access tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (newAccessToken string, err error)
	RevokeToken(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	AccessTokenTTL() time.Duration

	// admin console operations, used by videohub-admin
	PromoteToAdmin(ctx context.Context, username string) (*models.User, error)
	CreateAdmin(ctx context.Context, username, password, email string) (*models.User, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	now              func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
		now:              time.Now,
	}
}

func (s *authService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}

// Register creates a user with the default role.
func (s *authService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	return s.createUser(ctx, username, password, email, models.RoleUser)
}

func (s *authService) CreateAdmin(ctx context.Context, username, password, email string) (*models.User, error) {
	return s.createUser(ctx, username, password, email, models.RoleAdmin)
}

func (s *authService) createUser(ctx context.Context, username, password, email, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, newValidationError("password", err.Error())
		}
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if repository.IsUniqueViolation(err) {
			if _, ferr := s.userRepo.FindByEmail(ctx, email); ferr == nil {
				return nil, ErrEmailInUse
			}
			return nil, ErrNameInUse
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !repository.IsNotFound(err) {
			return "", "", nil, err
		}
		// same bcrypt cost as the wrong-password path
		auth.BurnCompare(password)
		metrics.RecordInteraction("login", "failed")
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		metrics.RecordInteraction("login", "failed")
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return "", "", nil, err
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	} else {
		user.LastLogin = &now
	}

	metrics.RecordInteraction("login", "succeeded")
	return accessToken, refreshToken, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Type:     tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: s.now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	if refreshToken.Revoked {
		return "", ErrInvalidRefreshToken
	}

	if s.now().After(refreshToken.ExpiresAt) {
		if err := s.refreshTokenRepo.Delete(ctx, refreshToken.ID); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to delete expired refresh token")
		}
		return "", ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	return s.generateAccessToken(user)
}

// RevokeToken marks a refresh token unusable. Unknown tokens are not an error.
func (s *authService) RevokeToken(ctx context.Context, refreshTokenString string) error {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil
		}
		return err
	}
	return s.refreshTokenRepo.Revoke(ctx, refreshToken.ID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.Type != tokenTypeAccess || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) PromoteToAdmin(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsAdmin() {
		return user, nil
	}
	if err := s.userRepo.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("promote user: %w", err)
	}
	user.Role = models.RoleAdmin
	return user, nil
}
