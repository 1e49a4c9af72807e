package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

const visibleGroupsPattern = `WHERE EXISTS \(SELECT 1 FROM user_tags ut WHERE ut\.tag_id = g\.tag_id AND ut\.user_id = \$1\)`

func TestGroupRepository_ListVisibleToUser(t *testing.T) {
	columns := []string{"id", "name", "description", "tag_id", "chat_link", "created_on"}

	t.Run("ZeroTagsSeesZeroGroups", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewGroupRepository(db)

		// Visibility hangs entirely on the tag membership subquery; a user
		// holding no tags matches nothing, untagged groups included.
		mock.ExpectQuery(visibleGroupsPattern).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows(columns))

		groups, err := repo.ListVisibleToUser(context.Background(), 7)
		assert.NoError(t, err)
		assert.Empty(t, groups)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("TagHolderSeesGatedGroup", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewGroupRepository(db)

		tagID := int32(3)
		mock.ExpectQuery(visibleGroupsPattern).
			WithArgs(int32(7)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int32(5), "VIP Club", "", tagID, "https://chat.example/vip", time.Now()))

		groups, err := repo.ListVisibleToUser(context.Background(), 7)
		assert.NoError(t, err)
		assert.Len(t, groups, 1)
		assert.Equal(t, "VIP Club", groups[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
