// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"go-auth-api/logger"
	"go-auth-api/model"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
// Create and DeleteExpiredByUserID take a transaction so the housekeeping
// sweep and the insert commit as one unit.
type ITokenRepository interface {
	Create(tx *sql.Tx, token *model.RefreshToken) error
	GetByTokenHash(tokenHash string) (*model.RefreshToken, error)
	DeleteByTokenHash(tokenHash string) (int64, error)
	DeleteExpiredByUserID(tx *sql.Tx, userID int) error
	DeleteByUserID(userID int) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new refresh token record as part of the given transaction.
func (r *TokenRepository) Create(tx *sql.Tx, token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := tx.QueryRow(query, token.UserID, token.TokenHash, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}
	return nil
}

// GetByTokenHash retrieves a refresh token by its hashed value.
func (r *TokenRepository) GetByTokenHash(tokenHash string) (*model.RefreshToken, error) {
	log := logger.Log.WithField("token_hash", tokenHash)
	log.Info("Executing query to get refresh token by hash")

	token := &model.RefreshToken{}
	query := `SELECT id, user_id, token_hash, expires_at, created_at FROM refresh_tokens WHERE token_hash = $1`
	err := r.DB.QueryRow(query, tokenHash).Scan(&token.ID, &token.UserID, &token.TokenHash, &token.ExpiresAt, &token.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get refresh token by hash query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return token, nil
}

// DeleteByTokenHash deletes the refresh token matching the given hash and
// reports how many rows were removed. The count is how callers distinguish
// "consumed it" (1) from "someone else got there first" (0); token_hash is
// unique, so the count is never above 1.
func (r *TokenRepository) DeleteByTokenHash(tokenHash string) (int64, error) {
	log := logger.Log.WithField("token_hash", tokenHash)
	log.Info("Executing query to delete refresh token by hash")

	query := `DELETE FROM refresh_tokens WHERE token_hash = $1`
	result, err := r.DB.Exec(query, tokenHash)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete refresh token query")
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteExpiredByUserID removes the user's already-expired refresh tokens
// as part of the given transaction.
func (r *TokenRepository) DeleteExpiredByUserID(tx *sql.Tx, userID int) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to delete expired refresh tokens for a user")

	query := `DELETE FROM refresh_tokens WHERE user_id = $1 AND expires_at < now()`
	_, err := tx.Exec(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete expired refresh tokens query")
		return err
	}
	return nil
}

// DeleteByUserID deletes all refresh tokens for a specific user.
// This is used for logging out from all sessions.
func (r *TokenRepository) DeleteByUserID(userID int) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to delete all refresh tokens for a user")

	query := `DELETE FROM refresh_tokens WHERE user_id = $1`
	_, err := r.DB.Exec(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete refresh tokens query")
		return err
	}
	return nil
}
