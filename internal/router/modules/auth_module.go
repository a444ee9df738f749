package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/empdesk/auth-service/internal/interface/http"
)

// AuthModule wires the signup/login/logout form flows onto the root group.
// The root path redirects to /login, the application's entry point.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Root)

	rg.GET("/signup", m.Handler.SignupPage)
	rg.POST("/signup", m.Handler.Signup)

	rg.GET("/login", m.Handler.LoginPage)
	rg.POST("/login", m.Handler.Login)

	rg.GET("/logout", m.Handler.Logout)
}
