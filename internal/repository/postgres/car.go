package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, model, plate, year, status, daily_price_cents, photo_url, description, created_on, updated_on`

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (model, plate, year, status, daily_price_cents, photo_url, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Model, c.Plate, c.Year, c.Status, c.DailyPriceCents, c.PhotoURL, c.Description, time.Now(), time.Now()).Scan(&c.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	c := &domain.Car{}
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Model, &c.Plate, &c.Year, &c.Status, &c.DailyPriceCents, &c.PhotoURL, &c.Description, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET model=$1, plate=$2, year=$3, status=$4, daily_price_cents=$5, photo_url=$6, description=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, c.Model, c.Plate, c.Year, c.Status, c.DailyPriceCents, c.PhotoURL, c.Description, time.Now(), c.ID)
	return err
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	return err
}

func (r *carRepository) List(ctx context.Context, status domain.CarStatus, query string) ([]domain.Car, error) {
	sqlQuery := `SELECT ` + carColumns + ` FROM cars WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if status != "" {
		sqlQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if query != "" {
		sqlQuery += fmt.Sprintf(" AND (model ILIKE $%d OR plate ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	sqlQuery += " ORDER BY created_on DESC"

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.Model, &c.Plate, &c.Year, &c.Status, &c.DailyPriceCents, &c.PhotoURL, &c.Description, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *carRepository) SetStatus(ctx context.Context, id int32, status domain.CarStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cars SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
