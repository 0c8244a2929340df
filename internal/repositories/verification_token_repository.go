package repositories

import (
	"errors"

	"billpilot_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrVerificationTokenNotFound is returned on a miss by user or value
	ErrVerificationTokenNotFound = errors.New("verification token not found")
)

// VerificationTokenRepository persists the single-use email/reset tokens.
// At most one live token exists per user: Replace deletes before inserting,
// and the unique index on user_id backs the invariant up.
type VerificationTokenRepository interface {
	// Replace drops any existing token for the user and stores the new one
	Replace(token *models.VerificationToken) error

	// FindByUser returns the user's live token
	FindByUser(userID string) (*models.VerificationToken, error)

	// FindByUserAndToken returns the token only when the value matches
	FindByUserAndToken(userID, tokenValue string) (*models.VerificationToken, error)

	// DeleteByUser consumes the user's token
	DeleteByUser(userID string) error
}

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Replace(token *models.VerificationToken) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&models.VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *verificationTokenRepository) FindByUser(userID string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	if err := r.db.Where("user_id = ?", userID).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *verificationTokenRepository) FindByUserAndToken(userID, tokenValue string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	if err := r.db.Where("user_id = ? AND token = ?", userID, tokenValue).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *verificationTokenRepository) DeleteByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.VerificationToken{}).Error
}
