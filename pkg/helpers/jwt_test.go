package helpers

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empdesk/auth-service/internal/domain/entity"
)

func testEmployee() *entity.Employee {
	return &entity.Employee{
		ID:           "4f8b8a6e-0000-0000-0000-000000000001",
		Name:         "Alice Example",
		Email:        "alice@example.com",
		Phone:        "+15550100001",
		Username:     "alice",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		Title:        entity.DefaultTitle,
		Status:       entity.StatusNew,
		Role:         entity.RoleBase,
	}
}

func TestSessionManager_IssueAndParse(t *testing.T) {
	t.Parallel()

	m := NewSessionManager("super-secret", 24*time.Hour)
	emp := testEmployee()

	token, exp, err := m.Issue(emp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice Example", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "+15550100001", claims.Phone)
	assert.Equal(t, entity.DefaultTitle, claims.Title)
	assert.Equal(t, entity.StatusNew, claims.Status)
	assert.Equal(t, entity.RoleBase, claims.Role)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestSessionManager_TokenOmitsPasswordHash(t *testing.T) {
	t.Parallel()

	m := NewSessionManager("super-secret", 24*time.Hour)
	emp := testEmployee()

	token, _, err := m.Issue(emp)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), emp.PasswordHash)
	assert.NotContains(t, string(payload), "password")
}

func TestSessionManager_Parse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, _, err := NewSessionManager("right-secret", time.Hour).Issue(testEmployee())
	require.NoError(t, err)

	_, err = NewSessionManager("wrong-secret", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestSessionManager_Parse_Expired(t *testing.T) {
	t.Parallel()

	m := NewSessionManager("secret", -time.Minute)
	token, _, err := m.Issue(testEmployee())
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestSessionManager_Parse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewSessionManager("secret", time.Hour).Parse("not.a.jwt")
	assert.Error(t, err)
}
