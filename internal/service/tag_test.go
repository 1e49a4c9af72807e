package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"louercar-backend/internal/domain"
)

func TestTagService_SyncRoleTags(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		user     *domain.User
		wantTags []string
	}{
		{"PlainClient", &domain.User{ID: 7}, []string{domain.TagNewClient}},
		{"Staff", &domain.User{ID: 7, IsStaff: true}, []string{domain.TagEmployee}},
		{"Superuser", &domain.User{ID: 7, IsSuperuser: true}, []string{domain.TagAdministrator}},
		{"StaffSuperuserHoldsBoth", &domain.User{ID: 7, IsStaff: true, IsSuperuser: true}, []string{domain.TagAdministrator, domain.TagEmployee}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tagRepo := new(MockTagRepo)
			groupRepo := new(MockGroupRepo)
			svc := NewTagService(tagRepo, groupRepo)

			wanted := make(map[string]bool)
			for _, name := range tc.wantTags {
				wanted[name] = true
			}
			tagRepo.On("RemoveNamedFromUser", ctx, int32(7), mock.MatchedBy(func(names []string) bool {
				for _, n := range names {
					if wanted[n] {
						return false
					}
				}
				return len(names) == len(domain.RoleTagNames)-len(tc.wantTags)
			})).Return(nil)
			for i, name := range tc.wantTags {
				id := int32(40 + i)
				tagRepo.On("GetByName", ctx, name).Return(&domain.Tag{ID: id, Name: name}, nil)
				tagRepo.On("AssignToUser", ctx, int32(7), id).Return(true, nil)
				groupRepo.On("ListByTag", ctx, id).Return([]domain.Group{{ID: id + 100, Name: "Lounge"}}, nil)
				groupRepo.On("AddMember", ctx, int32(7), id+100).Return(true, nil)
			}

			err := svc.SyncRoleTags(ctx, tc.user)
			assert.NoError(t, err)
			tagRepo.AssertExpectations(t)
			groupRepo.AssertExpectations(t)
		})
	}
}

func TestTagService_SyncManagesVIPAndSparesManualTags(t *testing.T) {
	// The fixed role set (New Client, VIP Client, Employee, Administrator)
	// is re-derived on every sync, so a VIP Client tag the flags do not
	// warrant goes into the removal set. Names outside the set never do.
	ctx := context.Background()
	tagRepo := new(MockTagRepo)
	groupRepo := new(MockGroupRepo)
	svc := NewTagService(tagRepo, groupRepo)

	tagRepo.On("RemoveNamedFromUser", ctx, int32(7), mock.MatchedBy(func(names []string) bool {
		hasVIP := false
		for _, n := range names {
			if n == domain.TagVIPClient {
				hasVIP = true
			}
			if n == "Frequent Renter" {
				return false
			}
		}
		return hasVIP
	})).Return(nil)
	tagRepo.On("GetByName", ctx, domain.TagNewClient).Return(&domain.Tag{ID: 1, Name: domain.TagNewClient}, nil)
	tagRepo.On("AssignToUser", ctx, int32(7), int32(1)).Return(false, nil)

	assert.NoError(t, svc.SyncRoleTags(ctx, &domain.User{ID: 7}))
	tagRepo.AssertExpectations(t)
	groupRepo.AssertNotCalled(t, "ListByTag", mock.Anything, mock.Anything)
}

func TestTagService_AssignTag(t *testing.T) {
	ctx := context.Background()

	t.Run("NewAssignmentJoinsGroups", func(t *testing.T) {
		tagRepo := new(MockTagRepo)
		groupRepo := new(MockGroupRepo)
		svc := NewTagService(tagRepo, groupRepo)

		tagRepo.On("AssignToUser", ctx, int32(7), int32(2)).Return(true, nil)
		groupRepo.On("ListByTag", ctx, int32(2)).Return([]domain.Group{{ID: 5}, {ID: 6}}, nil)
		groupRepo.On("AddMember", ctx, int32(7), int32(5)).Return(true, nil)
		groupRepo.On("AddMember", ctx, int32(7), int32(6)).Return(false, nil)

		assert.NoError(t, svc.AssignTag(ctx, 7, 2))
		groupRepo.AssertExpectations(t)
	})

	t.Run("RepeatAssignmentIsNoOp", func(t *testing.T) {
		tagRepo := new(MockTagRepo)
		groupRepo := new(MockGroupRepo)
		svc := NewTagService(tagRepo, groupRepo)

		tagRepo.On("AssignToUser", ctx, int32(7), int32(2)).Return(false, nil)

		assert.NoError(t, svc.AssignTag(ctx, 7, 2))
		groupRepo.AssertNotCalled(t, "ListByTag", mock.Anything, mock.Anything)
	})
}

func TestTagService_JoinGroup(t *testing.T) {
	ctx := context.Background()
	tagID := int32(3)

	t.Run("TagHolderJoinsOnce", func(t *testing.T) {
		tagRepo := new(MockTagRepo)
		groupRepo := new(MockGroupRepo)
		svc := NewTagService(tagRepo, groupRepo)

		groupRepo.On("GetByID", ctx, int32(5)).Return(&domain.Group{ID: 5, Name: "VIP Club", TagID: &tagID}, nil)
		tagRepo.On("ListByUser", ctx, int32(7)).Return([]domain.Tag{{ID: 3, Name: domain.TagVIPClient}}, nil)
		groupRepo.On("AddMember", ctx, int32(7), int32(5)).Return(true, nil).Once()
		groupRepo.On("AddMember", ctx, int32(7), int32(5)).Return(false, nil).Once()

		joined, err := svc.JoinGroup(ctx, 7, 5)
		assert.NoError(t, err)
		assert.True(t, joined)

		joined, err = svc.JoinGroup(ctx, 7, 5)
		assert.NoError(t, err)
		assert.False(t, joined)
	})

	t.Run("MissingTagForbidden", func(t *testing.T) {
		tagRepo := new(MockTagRepo)
		groupRepo := new(MockGroupRepo)
		svc := NewTagService(tagRepo, groupRepo)

		groupRepo.On("GetByID", ctx, int32(5)).Return(&domain.Group{ID: 5, Name: "VIP Club", TagID: &tagID}, nil)
		tagRepo.On("ListByUser", ctx, int32(7)).Return([]domain.Tag{{ID: 1, Name: domain.TagNewClient}}, nil)

		_, err := svc.JoinGroup(ctx, 7, 5)
		assert.ErrorIs(t, err, ErrForbidden)
		groupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UntaggedGroupNotJoinable", func(t *testing.T) {
		tagRepo := new(MockTagRepo)
		groupRepo := new(MockGroupRepo)
		svc := NewTagService(tagRepo, groupRepo)

		groupRepo.On("GetByID", ctx, int32(9)).Return(&domain.Group{ID: 9, Name: "Announcements"}, nil)

		_, err := svc.JoinGroup(ctx, 7, 9)
		assert.ErrorIs(t, err, ErrForbidden)
		groupRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTagService_VisibleGroups(t *testing.T) {
	ctx := context.Background()
	tagRepo := new(MockTagRepo)
	groupRepo := new(MockGroupRepo)
	svc := NewTagService(tagRepo, groupRepo)

	groupRepo.On("ListVisibleToUser", ctx, int32(7)).Return([]domain.Group{{ID: 5, Name: "VIP Club"}}, nil)

	groups, err := svc.VisibleGroups(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "VIP Club", groups[0].Name)
}
