package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simatwa/tailoring-ms-api/config"
	"github.com/simatwa/tailoring-ms-api/middleware"
	"github.com/simatwa/tailoring-ms-api/services"
)

// tokenRequest is the OAuth2-style password form posted to /v1/token
type tokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// FetchToken handles POST /v1/token - exchanges username+password for the
// user's bearer token, generating one on first login
func FetchToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		abortValidation(c, "username and password are required")
		return
	}

	token, err := services.IssueToken(config.GetDB(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.Header("WWW-Authenticate", "Bearer")
			respondDetail(c, http.StatusUnauthorized, "User does not exist.")
		case errors.Is(err, services.ErrIncorrectPassword):
			c.Header("WWW-Authenticate", "Bearer")
			respondDetail(c, http.StatusUnauthorized, "Incorrect password.")
		default:
			abortInternal(c, err, "failed to issue token")
		}
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// RotateToken handles PATCH /v1/token - replaces the caller's token with a
// fresh one, invalidating the presented credential
func RotateToken(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondDetail(c, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	token, err := services.RotateToken(config.GetDB(), user)
	if err != nil {
		abortInternal(c, err, "failed to rotate token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
