package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/empdesk/auth-service/internal/domain/entity"
)

// SessionManager issues and parses the signed session token carried in the
// auth cookie. Tokens are HS256-signed; the secret must match between this
// service and any downstream verifier.
type SessionManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{Secret: []byte(secret), TTL: ttl}
}

// SessionClaims carries the employee identity into downstream services.
// It is the Employee record minus the password hash, plus expiry.
type SessionClaims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Role     int    `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds a signed token for the employee, expiring at now + TTL (UTC).
func (m *SessionManager) Issue(emp *entity.Employee) (string, time.Time, error) {
	exp := time.Now().UTC().Add(m.TTL)
	claims := &SessionClaims{
		Name:     emp.Name,
		Email:    emp.Email,
		Phone:    emp.Phone,
		Username: emp.Username,
		Title:    emp.Title,
		Status:   emp.Status,
		Role:     emp.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   emp.Username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Parse validates a token string and returns its claims. Downstream
// services run the same check; kept here so issuance and verification
// stay in lockstep.
func (m *SessionManager) Parse(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
