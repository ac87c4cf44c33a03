package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jkariuki/lapstore/internal/auth"
	"github.com/jkariuki/lapstore/internal/config"
	"github.com/jkariuki/lapstore/internal/httpx"
	"github.com/jkariuki/lapstore/internal/user"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerHandler godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "credentials"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/auth/register [post]
func registerHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, err := users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
		switch {
		case errors.Is(err, user.ErrInvalidInput), errors.Is(err, user.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrAlreadyExist):
			c.JSON(http.StatusConflict, gin.H{"error": "an account already exists for this email"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create account"})
		default:
			c.JSON(http.StatusCreated, gin.H{
				"id": u.ID, "email": u.Email, "name": u.Name,
			})
		}
	}
}

// loginHandler godoc
// @Summary Sign in
// @Description Verifies credentials, sets the session cookie and returns the token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func loginHandler(users *user.Service, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		u, err := users.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		tok, err := auth.MintToken(auth.Session{
			UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
		}, cfg.SessionSecret, cfg.SessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
			return
		}
		c.SetCookie(httpx.SessionCookie, tok, int(cfg.SessionTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{
			"token": tok,
			"user":  gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role},
		})
	}
}

// logoutHandler clears the session cookie. The token itself stays valid until
// it expires; there is no server-side session store to revoke.
func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(httpx.SessionCookie, "", -1, "/", "", false, true)
		c.Status(http.StatusNoContent)
	}
}
