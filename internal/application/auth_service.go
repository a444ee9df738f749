package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/empdesk/auth-service/internal/domain/entity"
	"github.com/empdesk/auth-service/internal/domain/repository"
	"github.com/empdesk/auth-service/pkg/helpers"
)

// Business-rule outcomes. These are expected, recoverable results and are
// reported as values, not exceptional conditions.
var (
	// ErrDuplicateUsername means the submitted username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so a login response never reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service orchestrates the signup and login flows: validation has already
// happened at the binding layer; this sequences the store lookups, the
// password hashing, and token issuance.
type Service struct {
	Repo     repository.EmployeeRepository
	Sessions *helpers.SessionManager
	Logger   *logrus.Logger
}

func NewService(repo repository.EmployeeRepository, sessions *helpers.SessionManager, logger *logrus.Logger) *Service {
	return &Service{Repo: repo, Sessions: sessions, Logger: logger}
}

// SignupInput carries the validated form fields for account creation.
// The password is hashed before any storage; the input itself is transient.
type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Username string
	Password string
}

// Signup creates a new employee account with the fixed default title,
// status, and role. Returns ErrDuplicateUsername when the username is taken;
// the pre-insert lookup only improves the error path, the table's unique
// constraint is what actually guarantees it (Create maps that case too, so
// the loser of a signup race still gets the duplicate message).
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.Employee, error) {
	existing, err := s.Repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	emp := &entity.Employee{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Username:     in.Username,
		PasswordHash: hash,
		Title:        entity.DefaultTitle,
		Status:       entity.StatusNew,
		Role:         entity.RoleBase,
	}
	if err := s.Repo.Create(ctx, emp); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}

	if s.Logger != nil {
		s.Logger.WithField("username", emp.Username).Info("account created")
	}
	return emp, nil
}

// Login verifies the credentials and issues a signed session token. Unknown
// usernames and wrong passwords both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*entity.Employee, string, time.Time, error) {
	emp, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("lookup username: %w", err)
	}
	if emp == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if !helpers.VerifyPassword(emp.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	// TODO: decide whether login should gate on Status once account
	// lifecycle states (suspended, deactivated) are defined downstream.

	token, exp, err := s.Sessions.Issue(emp)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("issue session token: %w", err)
	}

	if s.Logger != nil {
		s.Logger.WithField("username", emp.Username).Info("login succeeded")
	}
	return emp, token, exp, nil
}
