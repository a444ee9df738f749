package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/empdesk/auth-service/internal/domain/entity"
	"github.com/empdesk/auth-service/internal/domain/repository"
)

// EmployeeRepository implements repository.EmployeeRepository on Postgres.
type EmployeeRepository struct {
	db DB
}

func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO employees (id, name, email, phone, username, password_hash, title, status, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, e.ID, e.Name, e.Email, e.Phone, e.Username, e.PasswordHash, e.Title, e.Status, e.Role)

	if err := row.Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return repository.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *EmployeeRepository) GetByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	e := &entity.Employee{}

	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, phone, username, password_hash, title, status, role, created_at, updated_at
		FROM employees
		WHERE username = $1
	`, username)

	if err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Username, &e.PasswordHash,
		&e.Title, &e.Status, &e.Role, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return e, nil
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)
