package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

func TestRentalRepository_Transition(t *testing.T) {
	t.Run("FinishesAndReleasesCar", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE rentals SET status").
			WithArgs(domain.RentalStatusFinished, sqlmock.AnyArg(), int32(21), domain.RentalStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"car_id"}).AddRow(int32(5)))
		mock.ExpectExec("UPDATE cars SET status").
			WithArgs(domain.CarStatusAvailable, sqlmock.AnyArg(), int32(5), domain.CarStatusRented, domain.RentalStatusActive).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Transition(context.Background(), 21, domain.RentalStatusFinished)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConflictWhenNotActive", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE rentals SET status").
			WithArgs(domain.RentalStatusCancelled, sqlmock.AnyArg(), int32(21), domain.RentalStatusActive).
			WillReturnRows(sqlmock.NewRows([]string{"car_id"}))
		mock.ExpectRollback()

		err = repo.Transition(context.Background(), 21, domain.RentalStatusCancelled)
		assert.ErrorIs(t, err, repository.ErrRentalNotActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_Create(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	t.Run("ClaimsCarForActiveRental", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE cars SET status").
			WithArgs(domain.CarStatusRented, sqlmock.AnyArg(), int32(5), domain.CarStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(21)))
		mock.ExpectCommit()

		rental := &domain.Rental{ProfileID: 3, CarID: 5, StaffID: 9, StartDate: start, EndDate: end, PriceCents: 30000, Status: domain.RentalStatusActive}
		err = repo.Create(context.Background(), rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(21), rental.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConflictWhenCarTaken", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewRentalRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE cars SET status").
			WithArgs(domain.CarStatusRented, sqlmock.AnyArg(), int32(5), domain.CarStatusAvailable).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		rental := &domain.Rental{ProfileID: 3, CarID: 5, StaffID: 9, StartDate: start, EndDate: end, PriceCents: 30000, Status: domain.RentalStatusActive}
		err = repo.Create(context.Background(), rental)
		assert.ErrorIs(t, err, repository.ErrCarUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewRentalRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM rentals").
		WithArgs(int32(21)).
		WillReturnRows(sqlmock.NewRows([]string{"car_id", "status"}).AddRow(int32(5), string(domain.RentalStatusActive)))
	mock.ExpectExec("UPDATE cars SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Delete(context.Background(), 21)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
