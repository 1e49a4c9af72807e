package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"louercar-backend/internal/domain"
)

func TestUserService_UpdateRoles(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	tagSvc := new(MockTagService)
	svc := NewUserService(userRepo, new(MockProfileRepo), tagSvc)

	userRepo.On("GetByID", ctx, int32(7)).Return(&domain.User{ID: 7, Username: "alice"}, nil)
	userRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.IsStaff && !u.IsSuperuser && u.IsActive
	})).Return(nil)
	tagSvc.On("SyncRoleTags", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 && u.IsStaff
	})).Return(nil)
	tagSvc.On("ListUserTags", ctx, int32(7)).Return([]domain.Tag{{ID: 3, Name: domain.TagEmployee}}, nil)

	user, err := svc.UpdateRoles(ctx, 7, true, false, true)
	assert.NoError(t, err)
	assert.Len(t, user.Tags, 1)
	assert.Equal(t, domain.TagEmployee, user.Tags[0].Name)
	tagSvc.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesExisting", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := NewUserService(new(MockUserRepo), profileRepo, new(MockTagService))

		profileRepo.On("GetByUserID", ctx, int32(7)).Return(&domain.ClientProfile{ID: 3, UserID: 7}, nil)
		profileRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.ClientProfile) bool {
			return p.LicenseNumber == "AB123456" && p.Phone == "+55 11 99999-0000"
		})).Return(nil)

		profile, err := svc.UpdateProfile(ctx, 7, "AB123456", "+55 11 99999-0000", "Av. Paulista 1000")
		assert.NoError(t, err)
		assert.Equal(t, "AB123456", profile.LicenseNumber)
	})

	t.Run("CreatesWhenMissing", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := NewUserService(new(MockUserRepo), profileRepo, new(MockTagService))

		profileRepo.On("GetByUserID", ctx, int32(7)).Return(nil, sql.ErrNoRows)
		profileRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.ClientProfile) bool {
			return p.UserID == 7 && p.LicenseNumber == "AB123456"
		})).Return(nil)

		profile, err := svc.UpdateProfile(ctx, 7, "AB123456", "", "")
		assert.NoError(t, err)
		assert.Equal(t, int32(7), profile.UserID)
	})
}
