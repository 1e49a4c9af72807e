package postgres

import (
	"context"
	"database/sql"
	"time"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, license_number, phone, address, created_on, updated_on`

func (r *profileRepository) Create(ctx context.Context, p *domain.ClientProfile) error {
	query := `INSERT INTO client_profiles (user_id, license_number, phone, address, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.UserID, p.LicenseNumber, p.Phone, p.Address, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *profileRepository) GetByID(ctx context.Context, id int32) (*domain.ClientProfile, error) {
	return r.getBy(ctx, `SELECT `+profileColumns+` FROM client_profiles WHERE id = $1`, id)
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int32) (*domain.ClientProfile, error) {
	return r.getBy(ctx, `SELECT `+profileColumns+` FROM client_profiles WHERE user_id = $1`, userID)
}

func (r *profileRepository) getBy(ctx context.Context, query string, arg interface{}) (*domain.ClientProfile, error) {
	p := &domain.ClientProfile{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.UserID, &p.LicenseNumber, &p.Phone, &p.Address, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.ClientProfile) error {
	query := `UPDATE client_profiles SET license_number=$1, phone=$2, address=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, p.LicenseNumber, p.Phone, p.Address, time.Now(), p.ID)
	return err
}
