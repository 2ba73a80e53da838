package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/tour-package-service/internal/domain/dto"
	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/repository"
)

const tokenIssuer = "tour-package-service"

// ClaimsWithJWT extends dto.Claims with the registered JWT claims.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// AuthConfig holds token settings.
type AuthConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

// AuthService authenticates back-office users.
type AuthService interface {
	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	// ValidateToken parses and verifies an access token.
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	// Me returns the account behind userID.
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	// EnsureAdmin creates an admin account when email is not registered yet.
	EnsureAdmin(ctx context.Context, email, password, name string) error
}

// AuthServiceImpl implements AuthService with bcrypt and HS256 tokens.
type AuthServiceImpl struct {
	users     repository.UsersRepositoryInterface
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewAuthService creates an auth service.
func NewAuthService(users repository.UsersRepositoryInterface, cfg AuthConfig) AuthService {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthServiceImpl{
		users:     users,
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to record last login")
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.ttl.Seconds()),
		User:      userResponse(user),
	}, nil
}

func (s *AuthServiceImpl) issue(user *model.User) (string, error) {
	now := s.now()
	claims := ClaimsWithJWT{
		Claims: dto.Claims{
			UserID: user.ID.Hex(),
			Email:  user.Email,
			Name:   user.Name,
			Roles:  user.Roles,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

func (s *AuthServiceImpl) ValidateToken(_ context.Context, tokenString string) (*dto.Claims, error) {
	claims := &ClaimsWithJWT{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims.Claims, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, email, password, name string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("look up admin %s: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user := &model.User{
		Email:    email,
		Password: string(hash),
		Name:     name,
		Roles:    []string{model.RoleAdmin},
		Active:   true,
	}
	if err := s.users.Create(ctx, user); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("create admin %s: %w", email, err)
	}
	log.Info().Str("email", user.Email).Msg("default admin account created")
	return nil
}

func userResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
		Roles: u.Roles,
	}
}
