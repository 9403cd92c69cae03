package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/repository"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmailInUse          = errors.New("email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired, please log in again")
	ErrUserNotFound        = errors.New("user not found")
)

// IAuthService defines the session lifecycle operations exposed to the
// HTTP layer.
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)
	Refresh(ctx context.Context, rawToken string) (*model.AuthResponse, error)
	Logout(ctx context.Context, rawToken string) error
	LogoutAll(ctx context.Context, userID int) error
	GetMe(ctx context.Context, userID int) (*model.User, error)
}

// AuthService orchestrates the token lifecycle: registration, login,
// refresh rotation and logout. All durable state lives in the repositories;
// the service itself holds only immutable configuration.
type AuthService struct {
	db         *sql.DB
	userRepo   repository.IUserRepository
	tokenRepo  repository.ITokenRepository
	tokens     *TokenService
	refreshTTL time.Duration
}

func NewAuthService(db *sql.DB, userRepo repository.IUserRepository, tokenRepo repository.ITokenRepository, tokens *TokenService, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		tokens:     tokens,
		refreshTTL: refreshTTL,
	}
}

// saveRefreshToken persists the hash of a freshly generated refresh token.
// The user's already-expired tokens are swept in the same transaction as
// the insert, so stale rows are bounded without a background job.
func (s *AuthService) saveRefreshToken(ctx context.Context, userID int) (string, error) {
	rawToken, err := s.tokens.NewRefreshToken()
	if err != nil {
		return "", err
	}

	record := &model.RefreshToken{
		UserID:    userID,
		TokenHash: s.tokens.HashToken(rawToken),
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tokenRepo.DeleteExpiredByUserID(tx, userID); err != nil {
		return "", err
	}
	if err := s.tokenRepo.Create(tx, record); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("could not commit transaction: %w", err)
	}

	return rawToken, nil
}

// buildAuthResponse issues a new access/refresh pair for the given user.
func (s *AuthService) buildAuthResponse(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.saveRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: model.UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// Register creates a new user and issues the first credential pair.
func (s *AuthService) Register(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	log := logger.Log.WithField("email", email)

	_, err := s.userRepo.GetUserByEmail(email)
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: hashedPassword,
		Role:     model.RoleUser,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return s.buildAuthResponse(ctx, user)
}

// Login verifies credentials and issues a new credential pair. Unknown
// email and wrong password return the same error so callers cannot probe
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in successfully")
	return s.buildAuthResponse(ctx, user)
}

// Refresh rotates a refresh token: the presented token is deleted before a
// new pair is issued, so each raw value is redeemable at most once. A
// replayed token finds no record and is rejected; after theft, whichever
// party redeems first wins and the loser's attempt surfaces as Unauthorized.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*model.AuthResponse, error) {
	tokenHash := s.tokens.HashToken(rawToken)
	log := logger.Log.WithField("token_hash", tokenHash)

	stored, err := s.tokenRepo.GetByTokenHash(tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if stored.ExpiresAt.Before(time.Now()) {
		// Clean up the expired record before rejecting.
		if _, err := s.tokenRepo.DeleteByTokenHash(tokenHash); err != nil {
			return nil, err
		}
		log.Warn("Rejected expired refresh token")
		return nil, ErrRefreshTokenExpired
	}

	count, err := s.tokenRepo.DeleteByTokenHash(tokenHash)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		// A concurrent refresh consumed the token between lookup and delete.
		log.Warn("Refresh token already consumed")
		return nil, ErrInvalidRefreshToken
	}

	// Re-read the owner so the new pair reflects current identity, not the
	// identity at the time the old token was issued.
	user, err := s.userRepo.GetUserByID(stored.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{"user_id": user.ID}).Info("Refresh token rotated")
	return s.buildAuthResponse(ctx, user)
}

// Logout invalidates a single refresh token. Deleting nothing is a success:
// the token may already be gone, and logout must be idempotent.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	_, err := s.tokenRepo.DeleteByTokenHash(s.tokens.HashToken(rawToken))
	return err
}

// LogoutAll revokes every refresh token owned by the user, logging them out
// of all devices.
func (s *AuthService) LogoutAll(ctx context.Context, userID int) error {
	return s.tokenRepo.DeleteByUserID(userID)
}

// GetMe returns the user's current record, re-read from storage rather than
// trusted from access token claims, so role and email changes are visible
// immediately even while older tokens remain valid.
func (s *AuthService) GetMe(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
