package repositories

import (
	"errors"

	"billpilot_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id string) (*models.Document, error)
	FindByOwner(ownerID string, limit, offset int) ([]models.Document, error)
	CountByOwner(ownerID string) (int64, error)
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

func (r *documentRepository) FindByID(id string) (*models.Document, error) {
	var document models.Document
	if err := r.db.Preload("Customer").First(&document, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindByOwner(ownerID string, limit, offset int) ([]models.Document, error) {
	var documents []models.Document
	err := r.db.Preload("Customer").
		Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&documents).Error
	return documents, err
}

func (r *documentRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Document{}).Where("created_by = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *documentRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Document{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepository) Delete(id string) error {
	result := r.db.Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
