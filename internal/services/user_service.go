package services

import (
	"context"

	"hellostore_backend/internal/models"
	"hellostore_backend/internal/repositories"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/pkg/apperrors"
)

// Admin-facing operations address users by ExternalID. The primary key never
// appears in URLs.
type UserService interface {
	ListUsers(ctx context.Context, page, perPage int) ([]dto.UserResponse, int64, error)
	GetUser(ctx context.Context, externalID string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, externalID string, req *dto.UpdateUserRequest) error
	DeleteUser(ctx context.Context, actorID, externalID string) error
	GetProfile(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, page, perPage int) ([]dto.UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	users, err := s.userRepo.FindAll(perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.NewUserResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, externalID string) (*dto.UserResponse, error) {
	user, err := s.findByExternalID(externalID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, externalID string, req *dto.UpdateUserRequest) error {
	role := models.UserRole(req.Role)
	status := models.UserStatus(req.Status)
	if !role.Valid() || !status.Valid() {
		return apperrors.ValidationError("invalid role or status")
	}

	user, err := s.findByExternalID(externalID)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateRoleAndStatus(user.ID, role, status); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserRecordNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteUser removes a user account. Admins cannot delete themselves, so
// the panel always keeps the acting admin.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actorID, externalID string) error {
	user, err := s.findByExternalID(externalID)
	if err != nil {
		return err
	}

	if user.ID == actorID {
		return apperrors.ErrSelfDeletionForbidden
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserRecordNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id string, req *dto.UpdateProfileRequest) error {
	if err := s.userRepo.UpdateProfile(id, req.Address, req.ContactNumber); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserRecordNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) findByExternalID(externalID string) (*models.User, error) {
	user, err := s.userRepo.FindByExternalID(externalID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserRecordNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
