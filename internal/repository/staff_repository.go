package repository

import (
	"context"
	"fmt"
	"time"

	"pnsMembership/internal/models"

	"github.com/jmoiron/sqlx"
)

type staffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, email, password_hash, name, phone, title, address, photo_url, role, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	now := time.Now().UTC()
	staff.CreatedAt, staff.UpdatedAt = now, now

	query, args, err := r.db.BindNamed(`
		INSERT INTO staff (email, password_hash, name, phone, title, address, photo_url, role, created_at, updated_at)
		VALUES (:email, :password_hash, :name, :phone, :title, :address, :photo_url, :role, :created_at, :updated_at)
		RETURNING id`, staff)
	if err != nil {
		return fmt.Errorf("create staff: bind: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&staff.ID); err != nil {
		return wrapError("create staff", err)
	}
	return nil
}

// Upsert creates the account or refreshes it when the email already exists.
func (r *staffRepository) Upsert(ctx context.Context, staff *models.Staff) error {
	now := time.Now().UTC()
	staff.CreatedAt, staff.UpdatedAt = now, now

	query, args, err := r.db.BindNamed(`
		INSERT INTO staff (email, password_hash, name, phone, title, address, photo_url, role, created_at, updated_at)
		VALUES (:email, :password_hash, :name, :phone, :title, :address, :photo_url, :role, :created_at, :updated_at)
		ON CONFLICT ((LOWER(email))) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			title = EXCLUDED.title,
			role = EXCLUDED.role,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`, staff)
	if err != nil {
		return fmt.Errorf("upsert staff: bind: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&staff.ID, &staff.CreatedAt); err != nil {
		return wrapError("upsert staff", err)
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	var staff models.Staff

	if err := r.db.GetContext(ctx, &staff, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id); err != nil {
		return nil, wrapError("get staff", err)
	}

	return &staff, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var staff models.Staff

	query := `SELECT ` + staffColumns + ` FROM staff WHERE LOWER(email) = LOWER($1)`
	if err := r.db.GetContext(ctx, &staff, query, email); err != nil {
		return nil, wrapError("get staff by email", err)
	}

	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]models.Staff, error) {
	staff := []models.Staff{}

	if err := r.db.SelectContext(ctx, &staff, `SELECT `+staffColumns+` FROM staff ORDER BY id DESC`); err != nil {
		return nil, wrapError("list staff", err)
	}

	return staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *models.Staff) error {
	staff.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, `
		UPDATE staff
		SET email = :email, password_hash = :password_hash, name = :name, phone = :phone,
			title = :title, address = :address, photo_url = :photo_url, role = :role, updated_at = :updated_at
		WHERE id = :id`, staff)
	if err != nil {
		return wrapError("update staff", err)
	}

	return checkAffected("update staff", result)
}

func (r *staffRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete staff", err)
	}

	return checkAffected("delete staff", result)
}
