package services

import (
	"billpilot_backend/internal/models"
	"billpilot_backend/internal/repositories"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/pkg/apperrors"
)

// UserService covers self-service profile management plus the admin-only
// account operations.
type UserService interface {
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	DeleteAccount(userID string) error
	ListUsers(limit, offset int) ([]dto.UserProfileResponse, int64, error)
	DeactivateUser(userID string) error
	DeleteUser(userID string) error
}

type userService struct {
	userRepo    repositories.UserRepository
	refreshRepo repositories.RefreshTokenRepository
}

func NewUserService(userRepo repositories.UserRepository, refreshRepo repositories.RefreshTokenRepository) UserService {
	return &userService{userRepo: userRepo, refreshRepo: refreshRepo}
}

func (s *userService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return profileView(user), nil
}

func (s *userService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	fields := map[string]interface{}{}
	if req.FirstName != "" {
		fields["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		fields["last_name"] = req.LastName
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if req.BusinessName != "" {
		fields["business_name"] = req.BusinessName
	}
	if req.PhoneNumber != "" {
		fields["phone_number"] = req.PhoneNumber
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
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.NewNotFoundError("user", "User not found")
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetProfile(userID)
}

// DeleteAccount removes the account and every session it holds
func (s *userService) DeleteAccount(userID string) error {
	if err := s.refreshRepo.DeleteByUserID(userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) ListUsers(limit, offset int) ([]dto.UserProfileResponse, int64, error) {
	users, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	views := make([]dto.UserProfileResponse, 0, len(users))
	for i := range users {
		views = append(views, *profileView(&users[i]))
	}
	return views, total, nil
}

// DeactivateUser blocks future logins without destroying the record.
// Existing sessions are revoked so the block takes effect immediately.
func (s *userService) DeactivateUser(userID string) error {
	if err := s.userRepo.SetActive(userID, false); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	if err := s.refreshRepo.DeleteByUserID(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) DeleteUser(userID string) error {
	return s.DeleteAccount(userID)
}

func profileView(user *models.User) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		Email:           user.Email,
		Username:        user.Username,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Avatar:          user.Avatar,
		BusinessName:    user.BusinessName,
		PhoneNumber:     user.PhoneNumber,
		Address:         user.Address,
		City:            user.City,
		Country:         user.Country,
		Provider:        user.Provider,
		IsEmailVerified: user.IsEmailVerified,
		Active:          user.Active,
	}
}
