package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/resqalert/internal/models"
	"github.com/shenikar/resqalert/internal/service"
)

const uniqueViolation = "23505"

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) service.AdminRepository {
	return &AdminRepository{db: db}
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	admin := &models.Admin{}
	var role string
	err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&role,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	admin.Role = models.Role(role)
	return admin, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query, admin.Username, admin.PasswordHash, string(admin.Role)).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin %s/%s already exists: %w", admin.Role, admin.Username, models.ErrConflict)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	query := `SELECT id, username, password_hash, role, created_at, updated_at FROM admins WHERE id = $1;`
	admin, err := scanAdmin(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("admin with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by id: %w", err)
	}
	return admin, nil
}

// GetByUsername ищет учетную запись в пределах роли: логины уникальны только внутри ведомства
func (r *AdminRepository) GetByUsername(ctx context.Context, role models.Role, username string) (*models.Admin, error) {
	query := `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM admins
		WHERE role = $1 AND username = $2;
	`
	admin, err := scanAdmin(r.db.QueryRow(ctx, query, string(role), username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("admin %s/%s: %w", role, username, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by username: %w", err)
	}
	return admin, nil
}

func (r *AdminRepository) UpdateCredentials(ctx context.Context, id uuid.UUID, username, passwordHash string) error {
	query := `
		UPDATE admins SET
			username = $1,
			password_hash = $2,
			updated_at = NOW()
		WHERE id = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, username, passwordHash, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %s is taken: %w", username, models.ErrConflict)
		}
		return fmt.Errorf("failed to update admin credentials: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("admin with id %s not found for update: %w", id, models.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
