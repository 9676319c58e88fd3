package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/bookbridge/bookbridge/internal/container"
	handlers "github.com/bookbridge/bookbridge/internal/interface/http"
	"github.com/bookbridge/bookbridge/internal/interface/middleware"
)

// UserModule wires the auth pages.
// Public: GET /, GET+POST /signup, GET+POST /login, GET /logout
// Login required: GET /dashboard
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(pages, _ *gin.RouterGroup) {
	pages.GET("/", m.Handler.Home)
	pages.GET("/signup", m.Handler.SignupForm)
	pages.POST("/signup", m.Handler.Signup)
	pages.GET("/login", m.Handler.LoginForm)
	pages.POST("/login", m.Handler.Login)
	pages.GET("/logout", m.Handler.Logout)

	auth := pages.Group("/")
	auth.Use(middleware.RequireLogin(container.GetSessions()))
	{
		auth.GET("/dashboard", m.Handler.Dashboard)
	}
}
