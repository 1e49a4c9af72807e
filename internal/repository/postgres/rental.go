package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, profile_id, car_id, staff_id, start_date, end_date, price_cents, status, created_on, updated_on`

// claimCar flips an available car to rented. Zero rows affected means the
// car was not available; the caller's transaction must roll back.
func claimCar(ctx context.Context, tx *sql.Tx, carID int32) error {
	res, err := tx.ExecContext(ctx, `UPDATE cars SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`,
		domain.CarStatusRented, time.Now(), carID, domain.CarStatusAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrCarUnavailable
	}
	return nil
}

// releaseCarIfIdle sets a rented car back to available iff no active rental
// still references it. The existence check and the write are one statement.
func releaseCarIfIdle(ctx context.Context, tx *sql.Tx, carID int32) error {
	_, err := tx.ExecContext(ctx, `UPDATE cars SET status=$1, updated_on=$2
		WHERE id=$3 AND status=$4
		AND NOT EXISTS (SELECT 1 FROM rentals WHERE car_id=$3 AND status=$5)`,
		domain.CarStatusAvailable, time.Now(), carID, domain.CarStatusRented, domain.RentalStatusActive)
	return err
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if rt.Status == domain.RentalStatusActive {
		if err := claimCar(ctx, tx, rt.CarID); err != nil {
			return err
		}
	}

	query := `INSERT INTO rentals (profile_id, car_id, staff_id, start_date, end_date, price_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, rt.ProfileID, rt.CarID, rt.StaffID, rt.StartDate, rt.EndDate, rt.PriceCents, rt.Status, time.Now(), time.Now()).Scan(&rt.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.ProfileID, &rt.CarID, &rt.StaffID, &rt.StartDate, &rt.EndDate, &rt.PriceCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET profile_id=$1, staff_id=$2, start_date=$3, end_date=$4, price_cents=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, rt.ProfileID, rt.StaffID, rt.StartDate, rt.EndDate, rt.PriceCents, time.Now(), rt.ID)
	return err
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var carID int32
	var status domain.RentalStatus
	// Payment cascades; the originating request keeps a null rental link.
	err = tx.QueryRowContext(ctx, `DELETE FROM rentals WHERE id = $1 RETURNING car_id, status`, id).Scan(&carID, &status)
	if err != nil {
		return err
	}

	if status == domain.RentalStatusActive {
		if err := releaseCarIfIdle(ctx, tx, carID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus, query string) ([]domain.Rental, error) {
	sqlQuery := `SELECT r.id, r.profile_id, r.car_id, r.staff_id, r.start_date, r.end_date, r.price_cents, r.status, r.created_on, r.updated_on FROM rentals r WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if status != "" {
		sqlQuery += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if query != "" {
		sqlQuery += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM cars c WHERE c.id = r.car_id AND (c.model ILIKE $%d OR c.plate ILIKE $%d)
			UNION
			SELECT 1 FROM client_profiles p JOIN users u ON u.id = p.user_id
			WHERE p.id = r.profile_id AND (u.username ILIKE $%d OR p.license_number ILIKE $%d))`,
			argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	sqlQuery += " ORDER BY r.created_on DESC"

	return r.listQuery(ctx, sqlQuery, args...)
}

func (r *rentalRepository) ListByProfile(ctx context.Context, profileID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE profile_id = $1 ORDER BY created_on DESC`
	return r.listQuery(ctx, query, profileID)
}

func (r *rentalRepository) listQuery(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.ProfileID, &rt.CarID, &rt.StaffID, &rt.StartDate, &rt.EndDate, &rt.PriceCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) Stats(ctx context.Context) (*repository.RentalStats, error) {
	stats := &repository.RentalStats{}
	query := `SELECT count(*),
	       count(*) FILTER (WHERE status = $1),
	       count(*) FILTER (WHERE status = $2),
	       count(*) FILTER (WHERE status = $3),
	       COALESCE(sum(price_cents) FILTER (WHERE status = $1), 0)
	FROM rentals`
	err := r.db.QueryRowContext(ctx, query, domain.RentalStatusActive, domain.RentalStatusFinished, domain.RentalStatusCancelled).
		Scan(&stats.Total, &stats.Active, &stats.Finished, &stats.Cancelled, &stats.ActiveValueCents)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *rentalRepository) Transition(ctx context.Context, id int32, to domain.RentalStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var carID int32
	err = tx.QueryRowContext(ctx, `UPDATE rentals SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4 RETURNING car_id`,
		to, time.Now(), id, domain.RentalStatusActive).Scan(&carID)
	if err == sql.ErrNoRows {
		return repository.ErrRentalNotActive
	}
	if err != nil {
		return err
	}

	if err := releaseCarIfIdle(ctx, tx, carID); err != nil {
		return err
	}

	return tx.Commit()
}
