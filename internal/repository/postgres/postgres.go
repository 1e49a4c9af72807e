package postgres

import (
	"database/sql"
	"errors"

	"louercar-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProfileRepository
	repository.CarRepository
	repository.TagRepository
	repository.GroupRepository
	repository.RequestRepository
	repository.RentalRepository
	repository.PaymentRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ProfileRepository:      NewProfileRepository(db),
		CarRepository:          NewCarRepository(db),
		TagRepository:          NewTagRepository(db),
		GroupRepository:        NewGroupRepository(db),
		RequestRepository:      NewRequestRepository(db),
		RentalRepository:       NewRentalRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL duplicate-key error
// (unique constraints on plate, username, email, license number and the
// tag/group membership pairs).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
