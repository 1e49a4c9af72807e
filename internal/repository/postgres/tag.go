package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

const tagColumns = `id, name, color, icon, description, created_on`

func (r *tagRepository) Create(ctx context.Context, t *domain.Tag) error {
	query := `INSERT INTO tags (name, color, icon, description, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, t.Name, t.Color, t.Icon, t.Description, time.Now()).Scan(&t.ID)
}

func (r *tagRepository) GetByID(ctx context.Context, id int32) (*domain.Tag, error) {
	return r.getBy(ctx, `SELECT `+tagColumns+` FROM tags WHERE id = $1`, id)
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	return r.getBy(ctx, `SELECT `+tagColumns+` FROM tags WHERE name = $1`, name)
}

func (r *tagRepository) getBy(ctx context.Context, query string, arg interface{}) (*domain.Tag, error) {
	t := &domain.Tag{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&t.ID, &t.Name, &t.Color, &t.Icon, &t.Description, &t.CreatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tagRepository) Update(ctx context.Context, t *domain.Tag) error {
	query := `UPDATE tags SET name=$1, color=$2, icon=$3, description=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, t.Name, t.Color, t.Icon, t.Description, t.ID)
	return err
}

func (r *tagRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	return err
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Icon, &t.Description, &t.CreatedOn); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// AssignToUser reports whether a new assignment row was written. An
// existing assignment is left untouched so the call stays idempotent.
func (r *tagRepository) AssignToUser(ctx context.Context, userID, tagID int32) (bool, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO user_tags (user_id, tag_id, created_on) VALUES ($1, $2, $3) ON CONFLICT (user_id, tag_id) DO NOTHING`,
		userID, tagID, time.Now())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *tagRepository) RemoveFromUser(ctx context.Context, userID, tagID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_tags WHERE user_id = $1 AND tag_id = $2`, userID, tagID)
	return err
}

// RemoveNamedFromUser strips the user's assignments for the given tag
// names in one statement. Used when role tags get re-synced.
func (r *tagRepository) RemoveNamedFromUser(ctx context.Context, userID int32, names []string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_tags WHERE user_id = $1 AND tag_id IN (SELECT id FROM tags WHERE name = ANY($2))`,
		userID, pq.Array(names))
	return err
}

func (r *tagRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Tag, error) {
	query := `SELECT t.id, t.name, t.color, t.icon, t.description, t.created_on
	          FROM tags t JOIN user_tags ut ON ut.tag_id = t.id
	          WHERE ut.user_id = $1 ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Icon, &t.Description, &t.CreatedOn); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
