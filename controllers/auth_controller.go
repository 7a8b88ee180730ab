package controllers

import (
	"net/http"
	"strings"

	"kindred_server/middlewares"
	"kindred_server/models"
	"kindred_server/services"
)

// AuthController handles login and token refresh
type AuthController struct {
	UserService *services.UserService
	Auth        *services.AuthService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(userService *services.UserService, auth *services.AuthService) *AuthController {
	return &AuthController{UserService: userService, Auth: auth}
}

// LoginRequest is the credential exchange payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login exchanges a username and password for a bearer token. Unknown
// usernames and wrong passwords produce the same generic 401 so usernames
// cannot be enumerated.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if appErr := decodeAndValidate(r, &req, http.StatusBadRequest); appErr != nil {
		respondError(w, appErr)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)

	user, err := c.UserService.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || !c.Auth.VerifyPassword(req.Password, user.Password) {
		respondError(w, models.NewLoginError())
		return
	}

	token, err := c.Auth.IssueToken(user)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"authToken": token})
}

// Refresh exchanges a valid token for a fresh one carrying the same
// identity claims and a new expiry.
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := middlewares.ClaimsFrom(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	token, err := c.Auth.IssueTokenForUser(claims.User)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"authToken": token})
}
