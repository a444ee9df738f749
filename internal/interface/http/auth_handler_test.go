package handlers

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empdesk/auth-service/config"
	"github.com/empdesk/auth-service/internal/application"
	"github.com/empdesk/auth-service/internal/domain/entity"
	"github.com/empdesk/auth-service/internal/domain/repository"
	"github.com/empdesk/auth-service/pkg/helpers"
	"github.com/empdesk/auth-service/pkg/validation"
)

// memRepo is an in-memory EmployeeRepository for exercising the handlers
// without Postgres.
type memRepo struct {
	accounts    map[string]*entity.Employee
	lookupCalls int
	createCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{accounts: map[string]*entity.Employee{}}
}

func (m *memRepo) Create(_ context.Context, e *entity.Employee) error {
	m.createCalls++
	if _, ok := m.accounts[e.Username]; ok {
		return repository.ErrDuplicateUsername
	}
	cp := *e
	m.accounts[e.Username] = &cp
	return nil
}

func (m *memRepo) GetByUsername(_ context.Context, username string) (*entity.Employee, error) {
	m.lookupCalls++
	e, ok := m.accounts[username]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

const pageTemplates = `
{{define "login.html"}}{{.title}}|{{range .notify}}[{{.Status}}: {{.Message}}]{{end}}{{end}}
{{define "signup.html"}}{{.title}}|{{range .notify}}[{{.Status}}: {{.Message}}]{{end}}{{end}}
`

type testApp struct {
	engine *gin.Engine
	repo   *memRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{
		AppName:           "EmpDesk",
		Scheme:            "https",
		Domain:            "example.com",
		AccountServiceURL: "https://account.example.com",
	}

	repo := newMemRepo()
	logger := logrus.New()
	svc := application.NewService(repo, helpers.NewSessionManager("test-secret", 24*time.Hour), logger)
	cookies := helpers.NewCookie("auth", ".example.com", true, "cookie-secret")
	h := NewAuthHandler(svc, cookies, logger, cfg, nil, nil)

	engine := gin.New()
	engine.SetHTMLTemplate(template.Must(template.New("pages").Parse(pageTemplates)))
	engine.GET("/", h.Root)
	engine.GET("/signup", h.SignupPage)
	engine.POST("/signup", h.Signup)
	engine.GET("/login", h.LoginPage)
	engine.POST("/login", h.Login)
	engine.GET("/logout", h.Logout)

	return &testApp{engine: engine, repo: repo}
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.engine.ServeHTTP(w, req)
	return w
}

func signupValues(username string) url.Values {
	return url.Values{
		"name":     {"Alice Example"},
		"email":    {"alice@example.com"},
		"phone":    {"+15550100001"},
		"username": {username},
		"password": {"longenough"},
	}
}

func (a *testApp) signup(t *testing.T, username string) {
	t.Helper()
	w := a.post("/signup", signupValues(username))
	require.Equal(t, http.StatusFound, w.Code)
}

func TestRoot_RedirectsToLogin(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSignup_Success(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/signup", signupValues("alice"))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?created=1", w.Header().Get("Location"))

	stored := app.repo.accounts["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "longenough", stored.PasswordHash)
	assert.True(t, helpers.VerifyPassword(stored.PasswordHash, "longenough"))
	assert.Equal(t, entity.DefaultTitle, stored.Title)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice")
	createsBefore := app.repo.createCalls

	w := app.post("/signup", signupValues("alice"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[Error: Username already exists.]")
	assert.Equal(t, createsBefore, app.repo.createCalls, "duplicate signup must not reach the store mutation")
}

func TestSignup_InvalidFieldsAnnotatedWithoutStoreCalls(t *testing.T) {
	app := newTestApp(t)

	form := signupValues("alice")
	form.Set("email", "not-an-email")
	form.Set("password", "short")

	w := app.post("/signup", form)
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "[Error: EMAIL: must be a valid email]")
	assert.Contains(t, body, "[Error: PASSWORD: must be at least 8 characters long]")
	assert.Zero(t, app.repo.lookupCalls, "invalid submissions must not touch the store")
	assert.Zero(t, app.repo.createCalls)
}

func TestLoginPage_ShowsCreatedNotification(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/login?created=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[Success: Account created successfully.]")

	w = app.get("/login")
	assert.NotContains(t, w.Body.String(), "Account created")
}

func TestLogin_Success(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice")

	form := url.Values{"username": {"alice"}, "password": {"longenough"}}
	w := app.post("/login", form)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://account.example.com/dashboard", w.Header().Get("Location"))

	cookie := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie)
	assert.True(t, strings.HasPrefix(cookie, "auth="))
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "Domain=example.com")
}

func TestLogin_UnknownUserAndWrongPasswordLookIdentical(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice")

	unknown := app.post("/login", url.Values{"username": {"nosuchuser"}, "password": {"longenough"}})
	wrongPw := app.post("/login", url.Values{"username": {"alice"}, "password": {"wrongpassword"}})

	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, http.StatusOK, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
	assert.Contains(t, unknown.Body.String(), "[Error: Invalid credentials.]")
	assert.Empty(t, unknown.Header().Get("Set-Cookie"), "failed login must not set a session cookie")
	assert.Empty(t, wrongPw.Header().Get("Set-Cookie"))
}

func TestLogin_ShortPasswordRejectedBeforeLookup(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/login", url.Values{"username": {"alice"}, "password": {"short"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[Error: PASSWORD: must be at least 8 characters long]")
	assert.Zero(t, app.repo.lookupCalls, "validation failures must not reach the store")
}

func TestLogout_ClearsCookieAndRedirects(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookie := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie)
	assert.True(t, strings.HasPrefix(cookie, "auth="))
	assert.Contains(t, cookie, "Max-Age=0")
}
