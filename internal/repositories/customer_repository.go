package repositories

import (
	"errors"

	"billpilot_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerAlreadyExists = errors.New("customer already exists")
)

type CustomerRepository interface {
	Create(customer *models.Customer) error
	FindByID(id string) (*models.Customer, error)
	FindByOwnerAndEmail(ownerID, email string) (*models.Customer, error)
	FindByOwner(ownerID string, limit, offset int) ([]models.Customer, error)
	CountByOwner(ownerID string) (int64, error)
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepository) FindByID(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByOwnerAndEmail(ownerID, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("created_by = ? AND email = ?", ownerID, email).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByOwner(ownerID string, limit, offset int) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.Where("created_by = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).Where("created_by = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *customerRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Customer{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepository) Delete(id string) error {
	result := r.db.Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
