package postgres

import (
	"context"
	"database/sql"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

const groupColumns = `g.id, g.name, g.description, g.tag_id, g.chat_link, g.created_on`

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `INSERT INTO groups (name, description, tag_id, chat_link, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, g.Name, g.Description, g.TagID, g.ChatLink, time.Now()).Scan(&g.ID)
}

func (r *groupRepository) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	g := &domain.Group{}
	query := `SELECT ` + groupColumns + ` FROM groups g WHERE g.id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.Description, &g.TagID, &g.ChatLink, &g.CreatedOn)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) Update(ctx context.Context, g *domain.Group) error {
	query := `UPDATE groups SET name=$1, description=$2, tag_id=$3, chat_link=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, g.Name, g.Description, g.TagID, g.ChatLink, g.ID)
	return err
}

func (r *groupRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	return err
}

func (r *groupRepository) List(ctx context.Context) ([]domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups g ORDER BY g.name`
	return r.listQuery(ctx, query)
}

func (r *groupRepository) ListByTag(ctx context.Context, tagID int32) ([]domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups g WHERE g.tag_id = $1 ORDER BY g.name`
	return r.listQuery(ctx, query, tagID)
}

// ListVisibleToUser returns only groups whose gating tag the user carries.
// A user with no tags sees no groups.
func (r *groupRepository) ListVisibleToUser(ctx context.Context, userID int32) ([]domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups g
	          WHERE EXISTS (SELECT 1 FROM user_tags ut WHERE ut.tag_id = g.tag_id AND ut.user_id = $1)
	          ORDER BY g.name`
	return r.listQuery(ctx, query, userID)
}

func (r *groupRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.TagID, &g.ChatLink, &g.CreatedOn); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// AddMember reports whether the user was newly added. Joining a group
// twice is not an error.
func (r *groupRepository) AddMember(ctx context.Context, userID, groupID int32) (bool, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO group_members (group_id, user_id, joined_on) VALUES ($1, $2, $3) ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, userID, time.Now())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
