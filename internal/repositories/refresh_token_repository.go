package repositories

import (
	"errors"
	"time"

	"billpilot_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrRefreshTokenNotFound is returned when a token string has no row
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// RefreshTokenRepository manages the per-user revocable session set. The
// unique index on the token value makes DeleteByToken a conditional delete:
// when two requests race to consume the same token, exactly one wins and the
// other observes ErrRefreshTokenNotFound. Rotation correctness rests on that,
// not on in-process locks.
type RefreshTokenRepository interface {
	// Create appends a token to a user's set
	Create(token *models.RefreshToken) error

	// FindUserByToken resolves the user currently holding the token
	FindUserByToken(tokenString string) (*models.User, error)

	// DeleteByToken removes one token; ErrRefreshTokenNotFound when absent
	DeleteByToken(tokenString string) error

	// DeleteByUserID clears a user's whole set (global logout / containment)
	DeleteByUserID(userID string) error

	// CountByUserID counts a user's unexpired tokens
	CountByUserID(userID string) (int64, error)

	// CleanExpired removes rows whose expiry has passed
	CleanExpired() error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *refreshTokenRepository) FindUserByToken(tokenString string) (*models.User, error) {
	var token models.RefreshToken
	if err := r.db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}

	var user models.User
	if err := r.db.First(&user, "id = ?", token.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *refreshTokenRepository) DeleteByToken(tokenString string) error {
	result := r.db.Where("token = ?", tokenString).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

func (r *refreshTokenRepository) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

func (r *refreshTokenRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Count(&count).Error
	return count, err
}

func (r *refreshTokenRepository) CleanExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error
}
