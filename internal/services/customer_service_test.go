package services

import (
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billpilot_backend/internal/models"
	"billpilot_backend/internal/repositories"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/pkg/apperrors"
)

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*models.Customer{}}
}

func (r *fakeCustomerRepo) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	copied := *customer
	r.customers[customer.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) FindByID(id string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, repositories.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) FindByOwnerAndEmail(ownerID, email string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.CreatedBy == ownerID && c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) FindByOwner(ownerID string, limit, offset int) ([]models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Customer{}
	for _, c := range r.customers {
		if c.CreatedBy == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) CountByOwner(ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.customers {
		if c.CreatedBy == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCustomerRepo) UpdateFields(id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return repositories.ErrCustomerNotFound
	}
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return repositories.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

func customerRequest() *dto.CreateCustomerRequest {
	return &dto.CreateCustomerRequest{
		Name:        "Acme Ltd",
		Email:       "billing@acme.example",
		PhoneNumber: "+441234567890",
	}
}

func TestCreateCustomer(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	customer, err := svc.Create("owner-1", customerRequest())
	require.NoError(t, err)
	assert.Equal(t, "owner-1", customer.CreatedBy)
	assert.Equal(t, "Acme Ltd", customer.Name)
}

func TestCreateCustomerDuplicateEmailForOwner(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.Create("owner-1", customerRequest())
	require.NoError(t, err)

	_, err = svc.Create("owner-1", customerRequest())
	assert.ErrorIs(t, err, repositories.ErrCustomerAlreadyExists)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	// A different owner may bill the same address
	_, err = svc.Create("owner-2", customerRequest())
	assert.NoError(t, err)
}

func TestGetCustomerEnforcesOwnership(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	customer, err := svc.Create("owner-1", customerRequest())
	require.NoError(t, err)

	_, err = svc.GetByID("owner-2", customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotResourceOwner)

	got, err := svc.GetByID("owner-1", customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, got.ID)
}

func TestDeleteCustomerEnforcesOwnership(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	customer, err := svc.Create("owner-1", customerRequest())
	require.NoError(t, err)

	err = svc.Delete("owner-2", customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotResourceOwner)

	require.NoError(t, svc.Delete("owner-1", customer.ID))
	_, err = repo.FindByID(customer.ID)
	assert.ErrorIs(t, err, repositories.ErrCustomerNotFound)
}
