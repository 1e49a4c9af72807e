package postgres

import (
	"context"
	"database/sql"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, rental_id, method, amount_cents, status, due_date, paid_date, pix_key, pix_qr_code, boleto_barcode, boleto_line, created_on, updated_on`

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	return r.getBy(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *paymentRepository) GetByRentalID(ctx context.Context, rentalID int32) (*domain.Payment, error) {
	return r.getBy(ctx, `SELECT `+paymentColumns+` FROM payments WHERE rental_id = $1`, rentalID)
}

func (r *paymentRepository) getBy(ctx context.Context, query string, arg interface{}) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.RentalID, &p.Method, &p.AmountCents, &p.Status, &p.DueDate, &p.PaidDate, &p.PixKey, &p.PixQRCode, &p.BoletoBarcode, &p.BoletoLine, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListByStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status = $1 ORDER BY due_date`
	return r.listQuery(ctx, query, status)
}

func (r *paymentRepository) ListByProfile(ctx context.Context, profileID int32) ([]domain.Payment, error) {
	query := `SELECT p.id, p.rental_id, p.method, p.amount_cents, p.status, p.due_date, p.paid_date, p.pix_key, p.pix_qr_code, p.boleto_barcode, p.boleto_line, p.created_on, p.updated_on
	          FROM payments p JOIN rentals r ON r.id = p.rental_id
	          WHERE r.profile_id = $1 ORDER BY p.created_on DESC`
	return r.listQuery(ctx, query, profileID)
}

func (r *paymentRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RentalID, &p.Method, &p.AmountCents, &p.Status, &p.DueDate, &p.PaidDate, &p.PixKey, &p.PixQRCode, &p.BoletoBarcode, &p.BoletoLine, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Confirm marks a pending payment approved. A payment that already left
// the pending state is reported, never overwritten.
func (r *paymentRepository) Confirm(ctx context.Context, id int32, paidAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET status=$1, paid_date=$2, updated_on=$3 WHERE id=$4 AND status=$5`,
		domain.PaymentStatusApproved, paidAt, time.Now(), id, domain.PaymentStatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrPaymentNotPending
	}
	return nil
}

// ExpireOverdue cancels every pending payment whose due date has passed
// and returns how many rows were touched.
func (r *paymentRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE payments SET status=$1, updated_on=$2 WHERE status=$3 AND due_date < $4`,
		domain.PaymentStatusCancelled, time.Now(), domain.PaymentStatusPending, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
