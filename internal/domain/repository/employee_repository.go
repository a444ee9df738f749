package repository

import (
	"context"
	"errors"

	"github.com/empdesk/auth-service/internal/domain/entity"
)

// ErrDuplicateUsername is returned by Create when the store's uniqueness
// constraint on username fires. The pre-insert lookup in the signup flow is
// only a friendlier error path; this constraint is the authoritative guard.
var ErrDuplicateUsername = errors.New("username already exists")

// EmployeeRepository defines the narrow store contract the auth flows need.
//
// GetByUsername is a case-sensitive exact match and returns (nil, nil) when
// no account exists: absence is a normal outcome, not an error.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByUsername(ctx context.Context, username string) (*entity.Employee, error)
}
