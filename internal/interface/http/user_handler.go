package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/bookbridge/bookbridge/internal/application"
	"github.com/bookbridge/bookbridge/internal/interface/middleware"
	"github.com/bookbridge/bookbridge/pkg/helpers"
	"github.com/bookbridge/bookbridge/pkg/validation"
)

// UserHandler serves the auth pages: signup, login, dashboard, logout.
type UserHandler struct {
	Svc     *userapp.UserService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type signupForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,pwd"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *UserHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{})
}

func (h *UserHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req signupForm
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"Error": validation.Summary(err)})
		return
	}
	_, err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrEmailTaken) {
			c.HTML(http.StatusConflict, "signup.html", gin.H{"Error": "User already exists! Try logging in."})
			return
		}
		h.Logger.WithError(err).Error("signup failed")
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{"Error": "Error during signup. Try again."})
		return
	}
	c.HTML(http.StatusOK, "signup.html", gin.H{"Message": "Signup successful! Go ahead and log in."})
}

func (h *UserHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginForm
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": validation.Summary(err)})
		return
	}
	_, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userapp.ErrUserNotFound):
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "User not found"})
		case errors.Is(err, userapp.ErrInvalidPassword):
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Incorrect password"})
		default:
			h.Logger.WithError(err).Error("login failed")
			c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Error during login. Try again."})
		}
		return
	}
	h.Cookies.SetSession(c, token, exp)
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *UserHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"UserName": c.GetString(middleware.CtxUserNameKey),
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(helpers.SessionCookieName); err == nil {
		h.Svc.Logout(c.Request.Context(), token)
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/")
}
