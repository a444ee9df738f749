package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/empdesk/auth-service/config"
	"github.com/empdesk/auth-service/internal/application"
	"github.com/empdesk/auth-service/internal/infrastructure/postgres"
	"github.com/empdesk/auth-service/pkg/helpers"
	"github.com/empdesk/auth-service/pkg/mailer"
	"github.com/empdesk/auth-service/pkg/validation"
)

// Notification is a status/message pair surfaced to the page templates.
type Notification struct {
	Status  string
	Message string
}

// AuthHandler serves the signup/login/logout form flows. Each request is an
// isolated unit of work; every failure is absorbed here and mapped to a
// notification without leaking internals.
type AuthHandler struct {
	Svc     *application.Service
	Cookies *helpers.Manager
	Logger  *logrus.Logger
	Cfg     *config.Config
	Pub     *helpers.RabbitPublisher
	Audit   *postgres.AuditLogger
}

func NewAuthHandler(svc *application.Service, cookies *helpers.Manager, logger *logrus.Logger, cfg *config.Config, pub *helpers.RabbitPublisher, audit *postgres.AuditLogger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger, Cfg: cfg, Pub: pub, Audit: audit}
}

type signupForm struct {
	Name     string `form:"name" binding:"required,min=2,max=100"`
	Email    string `form:"email" binding:"required,email"`
	Phone    string `form:"phone" binding:"required,phone"`
	Username string `form:"username" binding:"required,uname,min=3,max=32"`
	Password string `form:"password" binding:"required,pwd"`
}

type loginForm struct {
	Username string `form:"username" binding:"required,uname,min=3,max=32"`
	Password string `form:"password" binding:"required,pwd"`
}

// pageVars builds the template namespace every page gets.
func (h *AuthHandler) pageVars(title string, notify []Notification) gin.H {
	return gin.H{
		"title":               title,
		"notify":              notify,
		"account_service_url": h.Cfg.AccountServiceURL,
		"chat_service_url":    h.Cfg.ChatServiceURL,
		"cdn_url":             h.Cfg.CDNURL,
	}
}

func (h *AuthHandler) signupTitle() string {
	return "Create your account - " + h.Cfg.AppName
}

func (h *AuthHandler) loginTitle() string {
	return "Login your account - " + h.Cfg.AppName
}

// fieldNotifications converts binding errors into one notification per
// field, sorted by field name so the enumeration is deterministic.
func fieldNotifications(err error) []Notification {
	details := validation.ToDetails(err)
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]Notification, 0, len(fields))
	for _, f := range fields {
		out = append(out, Notification{Status: "Error", Message: strings.ToUpper(f) + ": " + details[f]})
	}
	return out
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// Root handles GET / and redirects to the login page.
func (h *AuthHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
}

// SignupPage handles GET /signup.
func (h *AuthHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", h.pageVars(h.signupTitle(), nil))
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "signup.html", h.pageVars(h.signupTitle(), fieldNotifications(err)))
		return
	}

	emp, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Username: form.Username,
		Password: form.Password,
	})
	switch {
	case errors.Is(err, application.ErrDuplicateUsername):
		h.audit(c, form.Username, "signup_duplicate", nil)
		notify := []Notification{{Status: "Error", Message: "Username already exists."}}
		c.HTML(http.StatusOK, "signup.html", h.pageVars(h.signupTitle(), notify))
		return
	case err != nil:
		h.Logger.WithError(err).WithField("username", form.Username).Error("signup failed")
		notify := []Notification{{Status: "Error", Message: "Internal server error."}}
		c.HTML(http.StatusInternalServerError, "signup.html", h.pageVars(h.signupTitle(), notify))
		return
	}

	h.audit(c, emp.Username, "signup_success", nil)
	h.enqueueEmail(c, emp.Email, mailer.TemplateWelcome, map[string]any{
		"AppName":  h.Cfg.AppName,
		"Name":     emp.Name,
		"Username": emp.Username,
		"LoginURL": h.Cfg.Scheme + "://" + h.Cfg.Domain + "/login",
	})

	c.Redirect(http.StatusFound, "/login?created=1")
}

// LoginPage handles GET /login. A created=1 query (set by the signup
// redirect) surfaces the account-created notification.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	var notify []Notification
	if c.Query("created") == "1" {
		notify = append(notify, Notification{Status: "Success", Message: "Account created successfully."})
	}
	c.HTML(http.StatusOK, "login.html", h.pageVars(h.loginTitle(), notify))
}

// Login handles POST /login. Unknown usernames and wrong passwords produce
// the same notification so the response never reveals which one happened.
func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "login.html", h.pageVars(h.loginTitle(), fieldNotifications(err)))
		return
	}

	emp, token, exp, err := h.Svc.Login(c.Request.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		h.audit(c, form.Username, "login_failed", nil)
		notify := []Notification{{Status: "Error", Message: "Invalid credentials."}}
		c.HTML(http.StatusOK, "login.html", h.pageVars(h.loginTitle(), notify))
		return
	case err != nil:
		h.Logger.WithError(err).WithField("username", form.Username).Error("login failed")
		notify := []Notification{{Status: "Error", Message: "Internal server error."}}
		c.HTML(http.StatusInternalServerError, "login.html", h.pageVars(h.loginTitle(), notify))
		return
	}

	h.Cookies.Set(c, token, exp)

	h.audit(c, emp.Username, "login_success", nil)
	h.enqueueEmail(c, emp.Email, mailer.TemplateLoginNotification, map[string]any{
		"AppName":   h.Cfg.AppName,
		"Name":      emp.Name,
		"Username":  emp.Username,
		"Time":      time.Now().UTC().Format("02 January 2006, 15:04 MST"),
		"IP":        clientIP(c),
		"UserAgent": c.GetHeader("User-Agent"),
	})

	c.Redirect(http.StatusFound, h.Cfg.AccountServiceURL+"/dashboard")
}

// Logout handles GET /logout. Clearing is unconditional and idempotent:
// with or without a session the cookie is expired and the user lands on
// the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	h.audit(c, "", "logout", nil)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) audit(c *gin.Context, username, action string, metadata map[string]any) {
	if h.Audit == nil {
		return
	}
	h.Audit.Record(c.Request.Context(), username, action, clientIP(c), c.GetHeader("User-Agent"), metadata)
}

// enqueueEmail publishes a notification email job. Best-effort: a down
// broker is logged and ignored, the auth flow already succeeded.
func (h *AuthHandler) enqueueEmail(c *gin.Context, to, template string, data map[string]any) {
	if h.Pub == nil || !h.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		h.Logger.WithError(err).WithField("template", template).Warn("email job publish failed")
	}
}
