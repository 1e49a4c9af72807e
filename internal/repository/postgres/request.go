package postgres

import (
	"context"
	"database/sql"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, profile_id, car_id, start_date, end_date, estimated_price_cents, status, notes, rental_id, created_on, updated_on`

func (r *requestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	query := `INSERT INTO rental_requests (profile_id, car_id, start_date, end_date, estimated_price_cents, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, req.ProfileID, req.CarID, req.StartDate, req.EndDate, req.EstimatedPriceCents, req.Status, req.Notes, time.Now(), time.Now()).Scan(&req.ID)
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.RentalRequest, error) {
	req := &domain.RentalRequest{}
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.ProfileID, &req.CarID, &req.StartDate, &req.EndDate, &req.EstimatedPriceCents, &req.Status, &req.Notes, &req.RentalID, &req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) ListByProfile(ctx context.Context, profileID int32) ([]domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE profile_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, profileID)
}

func (r *requestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.RentalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM rental_requests WHERE status = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, status)
}

func (r *requestRepository) list(ctx context.Context, query string, arg interface{}) ([]domain.RentalRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RentalRequest
	for rows.Next() {
		var req domain.RentalRequest
		if err := rows.Scan(&req.ID, &req.ProfileID, &req.CarID, &req.StartDate, &req.EndDate, &req.EstimatedPriceCents, &req.Status, &req.Notes, &req.RentalID, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *requestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM rental_requests GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RequestStatus]int32)
	for rows.Next() {
		var status domain.RequestStatus
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *requestRepository) SetStatus(ctx context.Context, id int32, from, to domain.RequestStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rental_requests SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`, to, time.Now(), id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrRequestNotPending
	}
	return nil
}

func (r *requestRepository) Approve(ctx context.Context, req *domain.RentalRequest, staffID int32, payment *domain.Payment) (*domain.Rental, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Claiming the car is the conditional write that serializes concurrent
	// approvals: zero rows affected means another rental got there first.
	if err := claimCar(ctx, tx, req.CarID); err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		ProfileID:  req.ProfileID,
		CarID:      req.CarID,
		StaffID:    staffID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		PriceCents: req.EstimatedPriceCents,
		Status:     domain.RentalStatusActive,
	}
	insertRental := `INSERT INTO rentals (profile_id, car_id, staff_id, start_date, end_date, price_cents, status, created_on, updated_on)
	                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := tx.QueryRowContext(ctx, insertRental, rental.ProfileID, rental.CarID, rental.StaffID, rental.StartDate, rental.EndDate, rental.PriceCents, rental.Status, time.Now(), time.Now()).Scan(&rental.ID); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `UPDATE rental_requests SET status=$1, rental_id=$2, updated_on=$3 WHERE id=$4 AND status=$5`,
		domain.RequestStatusApproved, rental.ID, time.Now(), req.ID, domain.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, repository.ErrRequestNotPending
	}

	payment.RentalID = rental.ID
	insertPayment := `INSERT INTO payments (rental_id, method, amount_cents, status, due_date, pix_key, pix_qr_code, boleto_barcode, boleto_line, created_on, updated_on)
	                  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if err := tx.QueryRowContext(ctx, insertPayment, payment.RentalID, payment.Method, payment.AmountCents, payment.Status, payment.DueDate, payment.PixKey, payment.PixQRCode, payment.BoletoBarcode, payment.BoletoLine, time.Now(), time.Now()).Scan(&payment.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	req.Status = domain.RequestStatusApproved
	req.RentalID = &rental.ID
	return rental, nil
}
