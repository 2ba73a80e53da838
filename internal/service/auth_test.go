//go:build !integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/tour-package-service/internal/domain/model"
	"github.com/guttosm/tour-package-service/internal/mocks"
	"github.com/guttosm/tour-package-service/internal/repository"
)

const testSecret = "test-secret-key-with-enough-entropy"

func adminUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:       primitive.NewObjectID(),
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: string(hash),
		Roles:    []string{model.RoleAdmin},
		Active:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := adminUser(t, "correct-horse")

	tests := []struct {
		name      string
		password  string
		setupMock func(*mocks.MockUsersRepositoryInterface)
		wantErr   error
	}{
		{
			name:     "valid credentials",
			password: "correct-horse",
			setupMock: func(m *mocks.MockUsersRepositoryInterface) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)
				m.On("TouchLastLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil)
			},
		},
		{
			name:     "wrong password",
			password: "battery-staple",
			setupMock: func(m *mocks.MockUsersRepositoryInterface) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			password: "correct-horse",
			setupMock: func(m *mocks.MockUsersRepositoryInterface) {
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "inactive account",
			password: "correct-horse",
			setupMock: func(m *mocks.MockUsersRepositoryInterface) {
				inactive := *user
				inactive.Active = false
				m.On("FindByEmail", mock.Anything, "admin@example.com").Return(&inactive, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockUsersRepositoryInterface)
			tt.setupMock(repo)
			svc := NewAuthService(repo, AuthConfig{SecretKey: testSecret, AccessTokenTTL: 15 * time.Minute})

			resp, err := svc.Login(ctx, "admin@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.Equal(t, int64(900), resp.ExpiresIn)
			assert.Equal(t, user.ID.Hex(), resp.User.ID)

			claims, err := svc.ValidateToken(ctx, resp.Token)
			require.NoError(t, err)
			assert.Equal(t, []string{model.RoleAdmin}, claims.Roles)
			assert.Equal(t, "admin@example.com", claims.Email)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	user := adminUser(t, "correct-horse")
	svc := NewAuthService(new(mocks.MockUsersRepositoryInterface), AuthConfig{SecretKey: testSecret, AccessTokenTTL: time.Minute}).(*AuthServiceImpl)

	token, err := svc.issue(user)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		defer func() { svc.now = time.Now }()
		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(nil, AuthConfig{SecretKey: "another-secret"})
		_, err := other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": tokenIssuer}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateToken(ctx, unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	user := adminUser(t, "correct-horse")
	repo := new(mocks.MockUsersRepositoryInterface)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	svc := NewAuthService(repo, AuthConfig{SecretKey: testSecret})

	me, err := svc.Me(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Admin", me.Name)

	_, err = svc.Me(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing admin", func(t *testing.T) {
		repo := new(mocks.MockUsersRepositoryInterface)
		repo.On("FindByEmail", mock.Anything, "ops@example.com").Return(nil, repository.ErrNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.HasAnyRole(model.RoleAdmin) && u.Active &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")) == nil
		})).Return(nil)

		svc := NewAuthService(repo, AuthConfig{SecretKey: testSecret})
		require.NoError(t, svc.EnsureAdmin(ctx, "ops@example.com", "s3cret-pass", "Ops"))
		repo.AssertExpectations(t)
	})

	t.Run("leaves existing admin alone", func(t *testing.T) {
		repo := new(mocks.MockUsersRepositoryInterface)
		repo.On("FindByEmail", mock.Anything, "ops@example.com").Return(&model.User{}, nil)

		svc := NewAuthService(repo, AuthConfig{SecretKey: testSecret})
		require.NoError(t, svc.EnsureAdmin(ctx, "ops@example.com", "whatever", "Ops"))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
