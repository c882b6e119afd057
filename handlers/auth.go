package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/auth"
	"github.com/courseland/backend/models"
	"github.com/courseland/backend/repos"
	"github.com/courseland/backend/validate"
)

type AuthHandler struct {
	users  *repos.UserRepo
	tokens *auth.TokenService
}

func NewAuthHandler(users *repos.UserRepo, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=20,username"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required,max=20"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  models.AuthUser `json:"user"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.users.Register(req.Email, req.Username, hash)
	if err != nil {
		c.Error(err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: token, User: authUser(user)})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil {
		c.Error(err)
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		c.Error(apperr.Unauthorized("Invalid credentials"))
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: authUser(user)})
}

func authUser(u models.User) models.AuthUser {
	return models.AuthUser{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
