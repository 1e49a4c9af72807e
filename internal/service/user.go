package service

import (
	"context"
	"database/sql"
	"errors"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type userService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tagSvc      TagService
}

func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tagSvc TagService,
) UserService {
	return &userService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tagSvc:      tagSvc,
	}
}

func (s *userService) Get(ctx context.Context, id int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.tagSvc.ListUserTags(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Tags = tags
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) UpdateRoles(ctx context.Context, userID int32, isStaff, isSuperuser, isActive bool) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.IsStaff = isStaff
	user.IsSuperuser = isSuperuser
	user.IsActive = isActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.tagSvc.SyncRoleTags(ctx, user); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.ClientProfile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile fills in the client profile, creating it when registration
// predates the profile table.
func (s *userService) UpdateProfile(ctx context.Context, userID int32, licenseNumber, phone, address string) (*domain.ClientProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		profile = &domain.ClientProfile{
			UserID:        userID,
			LicenseNumber: licenseNumber,
			Phone:         phone,
			Address:       address,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return profile, nil
	}
	if err != nil {
		return nil, err
	}

	profile.LicenseNumber = licenseNumber
	profile.Phone = phone
	profile.Address = address
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
