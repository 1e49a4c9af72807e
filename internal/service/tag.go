package service

import (
	"context"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type tagService struct {
	tagRepo   repository.TagRepository
	groupRepo repository.GroupRepository
}

func NewTagService(tagRepo repository.TagRepository, groupRepo repository.GroupRepository) TagService {
	return &tagService{tagRepo: tagRepo, groupRepo: groupRepo}
}

func (s *tagService) CreateTag(ctx context.Context, tag *domain.Tag) error {
	return s.tagRepo.Create(ctx, tag)
}

func (s *tagService) GetTag(ctx context.Context, id int32) (*domain.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

func (s *tagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *tagService) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	return s.tagRepo.Update(ctx, tag)
}

func (s *tagService) DeleteTag(ctx context.Context, id int32) error {
	return s.tagRepo.Delete(ctx, id)
}

func (s *tagService) AssignTag(ctx context.Context, userID, tagID int32) error {
	added, err := s.tagRepo.AssignToUser(ctx, userID, tagID)
	if err != nil {
		return err
	}
	if !added {
		return nil
	}
	return s.joinGroupsForTag(ctx, userID, tagID)
}

func (s *tagService) RemoveTag(ctx context.Context, userID, tagID int32) error {
	return s.tagRepo.RemoveFromUser(ctx, userID, tagID)
}

func (s *tagService) ListUserTags(ctx context.Context, userID int32) ([]domain.Tag, error) {
	return s.tagRepo.ListByUser(ctx, userID)
}

// roleTagsFor maps the account flags to the role tags the user should hold.
// A user who is both staff and superuser carries Employee and Administrator.
func roleTagsFor(user *domain.User) []string {
	var names []string
	if user.IsSuperuser {
		names = append(names, domain.TagAdministrator)
	}
	if user.IsStaff {
		names = append(names, domain.TagEmployee)
	}
	if len(names) == 0 {
		names = append(names, domain.TagNewClient)
	}
	return names
}

// SyncRoleTags removes every tag in the fixed role set the flags no longer
// warrant, VIP Client included, then re-assigns the wanted ones. Tags
// outside the role set are left alone.
func (s *tagService) SyncRoleTags(ctx context.Context, user *domain.User) error {
	wanted := roleTagsFor(user)

	want := make(map[string]bool, len(wanted))
	for _, name := range wanted {
		want[name] = true
	}
	var stale []string
	for _, name := range domain.RoleTagNames {
		if !want[name] {
			stale = append(stale, name)
		}
	}
	if err := s.tagRepo.RemoveNamedFromUser(ctx, user.ID, stale); err != nil {
		return err
	}

	for _, name := range wanted {
		tag, err := s.tagRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if err := s.AssignTag(ctx, user.ID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

// joinGroupsForTag adds the user to every group gated by the tag. Existing
// memberships are left alone.
func (s *tagService) joinGroupsForTag(ctx context.Context, userID, tagID int32) error {
	groups, err := s.groupRepo.ListByTag(ctx, tagID)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if _, err := s.groupRepo.AddMember(ctx, userID, g.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *tagService) CreateGroup(ctx context.Context, group *domain.Group) error {
	return s.groupRepo.Create(ctx, group)
}

func (s *tagService) GetGroup(ctx context.Context, id int32) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group.TagID != nil {
		if tag, err := s.tagRepo.GetByID(ctx, *group.TagID); err == nil {
			group.Tag = tag
		}
	}
	return group, nil
}

func (s *tagService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *tagService) UpdateGroup(ctx context.Context, group *domain.Group) error {
	return s.groupRepo.Update(ctx, group)
}

func (s *tagService) DeleteGroup(ctx context.Context, id int32) error {
	return s.groupRepo.Delete(ctx, id)
}

func (s *tagService) VisibleGroups(ctx context.Context, userID int32) ([]domain.Group, error) {
	return s.groupRepo.ListVisibleToUser(ctx, userID)
}

// JoinGroup enrolls the user in a group gated by a tag they hold. A group
// with no gating tag is not joinable through self-service.
func (s *tagService) JoinGroup(ctx context.Context, userID, groupID int32) (bool, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return false, err
	}
	if group.TagID == nil {
		return false, ErrForbidden
	}
	tags, err := s.tagRepo.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	held := false
	for _, tag := range tags {
		if tag.ID == *group.TagID {
			held = true
			break
		}
	}
	if !held {
		return false, ErrForbidden
	}
	return s.groupRepo.AddMember(ctx, userID, groupID)
}
