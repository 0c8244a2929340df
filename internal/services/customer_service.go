package services

import (
	"billpilot_backend/internal/models"
	"billpilot_backend/internal/repositories"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/pkg/apperrors"
)

// CustomerService manages the address book an invoice issuer bills against.
// Every operation is scoped to the owning account.
type CustomerService interface {
	Create(ownerID string, req *dto.CreateCustomerRequest) (*models.Customer, error)
	GetByID(ownerID, customerID string) (*models.Customer, error)
	List(ownerID string, limit, offset int) ([]models.Customer, int64, error)
	Update(ownerID, customerID string, req *dto.UpdateCustomerRequest) (*models.Customer, error)
	Delete(ownerID, customerID string) error
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ownerID string, req *dto.CreateCustomerRequest) (*models.Customer, error) {
	if _, err := s.customerRepo.FindByOwnerAndEmail(ownerID, req.Email); err == nil {
		return nil, apperrors.ErrAlreadyExists(repositories.ErrCustomerAlreadyExists,
			"customer", "A customer with this email already exists")
	} else if !apperrors.Is(err, repositories.ErrCustomerNotFound) {
		return nil, apperrors.InternalError(err)
	}

	customer := &models.Customer{
		CreatedBy:   ownerID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		VatTinNo:    req.VatTinNo,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return customer, nil
}

func (s *customerService) GetByID(ownerID, customerID string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCustomerNotFound) {
			return nil, apperrors.NewNotFoundError("customer", "Customer not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if customer.CreatedBy != ownerID {
		return nil, apperrors.ErrNotResourceOwner
	}
	return customer, nil
}

func (s *customerService) List(ownerID string, limit, offset int) ([]models.Customer, int64, error) {
	customers, err := s.customerRepo.FindByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.customerRepo.CountByOwner(ownerID)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return customers, total, nil
}

func (s *customerService) Update(ownerID, customerID string, req *dto.UpdateCustomerRequest) (*models.Customer, error) {
	if _, err := s.GetByID(ownerID, customerID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.PhoneNumber != "" {
		fields["phone_number"] = req.PhoneNumber
	}
	if req.VatTinNo != "" {
		fields["vat_tin_no"] = req.VatTinNo
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if req.City != "" {
		fields["city"] = req.City
	}
	if req.Country != "" {
		fields["country"] = req.Country
	}

	if len(fields) > 0 {
		if err := s.customerRepo.UpdateFields(customerID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetByID(ownerID, customerID)
}

func (s *customerService) Delete(ownerID, customerID string) error {
	if _, err := s.GetByID(ownerID, customerID); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(customerID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
