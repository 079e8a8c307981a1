package handlers

import (
	"errors"
	"net/http"

	"inkwell/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	identity *services.IdentityService
}

func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if name == "" || email == "" || password == "" {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Title": "Register",
			"Error": "All fields are required",
			"Name":  name,
			"Email": email,
		})
		return
	}

	user, err := h.identity.Register(name, email, password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			// Same behavior as always: send them to the login page instead.
			Render(c, http.StatusConflict, "auth/login.html", gin.H{
				"Title": "Log In",
				"Error": "You have already registered with email " + email,
				"Email": email,
			})
			return
		}
		RenderError(c, http.StatusInternalServerError, "Registration failed, please try again")
		return
	}

	// Log the new user in right away.
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Log In"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.identity.Authenticate(email, password)
	if err != nil {
		message := "Email or password is incorrect"
		if errors.Is(err, services.ErrInvalidCredentials) {
			// The error text distinguishes unknown email from wrong password.
			message = err.Error()
		}
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Log In",
			"Error": message,
			"Email": email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
