package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rehmanpranto/TutorTrack/internal/models"
	appErrors "github.com/rehmanpranto/TutorTrack/pkg/errors"
)

const revocationKeyPrefix = "session:revoked:"

type authUserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// SessionConfig governs session token issuance.
type SessionConfig struct {
	Secret string
	Expiry time.Duration
}

// AuthService authenticates users through the enabled strategy set and
// issues/validates session tokens. Sessions are stateless HS256 JWTs;
// logout revokes a token's jti via Redis for its remaining lifetime (a
// no-op when Redis is not configured).
type AuthService struct {
	users      authUserStore
	revocation *redis.Client
	validator  *validator.Validate
	logger     *zap.Logger
	config     SessionConfig
	google     *GoogleStrategy
}

// NewAuthService constructs an AuthService instance. google may be nil when
// the strategy is not configured.
func NewAuthService(users authUserStore, revocation *redis.Client, google *GoogleStrategy, validate *validator.Validate, logger *zap.Logger, config SessionConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Expiry <= 0 {
		config.Expiry = 24 * time.Hour
	}
	return &AuthService{users: users, revocation: revocation, validator: validate, logger: logger, config: config, google: google}
}

// Providers returns the strategy names enabled at startup.
func (s *AuthService) Providers() []string {
	providers := []string{models.ProviderCredentials}
	if s.google != nil {
		providers = append(providers, models.ProviderGoogle)
	}
	return providers
}

// Login authenticates with the credentials strategy. A missing user and a
// wrong password yield the same generic failure.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		s.logger.Error("failed to fetch user", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// GoogleAuthURL returns the consent redirect URL for the Google strategy.
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", appErrors.Clone(appErrors.ErrValidation, "google sign-in is not enabled")
	}
	return s.google.AuthURL(state), nil
}

// GoogleCallback exchanges the authorization code and issues a session for
// the matching user row.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*models.LoginResponse, error) {
	if s.google == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "google sign-in is not enabled")
	}

	email, err := s.google.Authenticate(ctx, code)
	if err != nil {
		s.logger.Warn("google authentication failed", zap.Error(err))
		return nil, appErrors.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	return s.issueSession(user)
}

// ValidateSession parses the token, checks the signature and expiry, and
// rejects revoked sessions.
func (s *AuthService) ValidateSession(ctx context.Context, tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	if s.revocation != nil && claims.ID != "" {
		revoked, err := s.revocation.Exists(ctx, revocationKeyPrefix+claims.ID).Result()
		if err != nil {
			s.logger.Warn("revocation lookup failed", zap.Error(err))
		} else if revoked > 0 {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session revoked")
		}
	}

	return claims, nil
}

// CurrentUser returns the fresh user row behind a validated session, so
// the session endpoint reflects renames and deleted accounts rather than
// the claims frozen at issue time.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.UserInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
		}
		s.logger.Error("failed to fetch session user", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch session user")
	}
	return &models.UserInfo{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}

// Logout revokes the session for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *models.SessionClaims) error {
	if s.revocation == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.revocation.Set(ctx, revocationKeyPrefix+claims.ID, "1", ttl).Err(); err != nil {
		s.logger.Error("failed to revoke session", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}
	return nil
}

func (s *AuthService) issueSession(user *models.User) (*models.LoginResponse, error) {
	now := time.Now().UTC()
	claims := &models.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.config.Expiry.Seconds()),
		User:      models.UserInfo{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}
