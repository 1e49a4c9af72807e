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

func TestPaymentRepository_Confirm(t *testing.T) {
	paidAt := time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC)

	t.Run("ApprovesPendingPayment", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewPaymentRepository(db)

		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(domain.PaymentStatusApproved, paidAt, sqlmock.AnyArg(), int32(31), domain.PaymentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Confirm(context.Background(), 31, paidAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConflictWhenAlreadySettled", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		repo := NewPaymentRepository(db)

		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(domain.PaymentStatusApproved, paidAt, sqlmock.AnyArg(), int32(31), domain.PaymentStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Confirm(context.Background(), 31, paidAt)
		assert.ErrorIs(t, err, repository.ErrPaymentNotPending)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_ExpireOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := NewPaymentRepository(db)

	now := time.Date(2026, 1, 10, 2, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE payments SET status").
		WithArgs(domain.PaymentStatusCancelled, sqlmock.AnyArg(), domain.PaymentStatusPending, now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := repo.ExpireOverdue(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
