package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginFixture struct {
	Username string `form:"username" binding:"required,uname,min=3,max=32"`
	Password string `form:"password" binding:"required,pwd"`
}

type signupFixture struct {
	Name     string `form:"name" binding:"required,min=2,max=100"`
	Email    string `form:"email" binding:"required,email"`
	Phone    string `form:"phone" binding:"required,phone"`
	Username string `form:"username" binding:"required,uname,min=3,max=32"`
	Password string `form:"password" binding:"required,pwd"`
}

func validate(t *testing.T, s any) error {
	t.Helper()
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v.Struct(s)
}

func TestValidate_ShortPasswordReportsPasswordField(t *testing.T) {
	err := validate(t, loginFixture{Username: "alice", Password: "short"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, map[string]string{"password": "must be at least 8 characters long"}, details)
}

func TestValidate_ValidSubmissionsPass(t *testing.T) {
	assert.NoError(t, validate(t, loginFixture{Username: "alice", Password: "longenough"}))
	assert.NoError(t, validate(t, signupFixture{
		Name:     "Alice Example",
		Email:    "alice@example.com",
		Phone:    "+15550100001",
		Username: "alice",
		Password: "longenough",
	}))
}

func TestValidate_EveryInvalidFieldGetsExactlyOneMessage(t *testing.T) {
	err := validate(t, signupFixture{
		Name:     "A",
		Email:    "not-an-email",
		Phone:    "12345",
		Username: "a!",
		Password: "",
	})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, map[string]string{
		"name":     "must be at least 2 characters long",
		"email":    "must be a valid email",
		"phone":    "must be a valid phone number",
		"username": "must contain alphanumeric characters only",
		"password": "is required",
	}, details)
}

func TestToDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
	assert.Equal(t, map[string]string{"form": "invalid submission"}, ToDetails(errors.New("boom")))
}
