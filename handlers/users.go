package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/models"
	"github.com/courseland/backend/policy"
	"github.com/courseland/backend/repos"
	"github.com/courseland/backend/validate"
)

type UserHandler struct {
	users *repos.UserRepo
}

func NewUserHandler(users *repos.UserRepo) *UserHandler {
	return &UserHandler{users: users}
}

type updateMeRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=3,max=20,username"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN USER TEACHER"`
}

// Me handles GET /user/me
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	profile, err := h.users.Profile(identity.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe handles PATCH /user/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	var req updateMeRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	var email, username string
	if req.Email != nil {
		email = *req.Email
	}
	if req.Username != nil {
		username = *req.Username
	}
	taken, err := h.users.Exists(email, username, identity.ID)
	if err != nil {
		c.Error(err)
		return
	}
	if taken {
		c.Error(apperr.Conflict("Email or username already taken"))
		return
	}

	info, err := h.users.Update(identity.ID, req.Email, req.Username)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// All handles GET /user/all (admin only)
func (h *UserHandler) All(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}
	if decision := policy.CanAdminister(identity); !decision.Allowed {
		c.Error(apperr.Unauthorized(decision.Reason))
		return
	}

	users, err := h.users.All()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ByID handles GET /user/:userId (admin only)
func (h *UserHandler) ByID(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}
	if decision := policy.CanAdminister(identity); !decision.Allowed {
		c.Error(apperr.Unauthorized(decision.Reason))
		return
	}

	id, err := validate.IDParam(c, "userId")
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.users.AdminView(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangeRole handles PATCH /user/:userId/change-role (admin only)
func (h *UserHandler) ChangeRole(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}
	if decision := policy.CanAdminister(identity); !decision.Allowed {
		c.Error(apperr.Unauthorized(decision.Reason))
		return
	}

	id, err := validate.IDParam(c, "userId")
	if err != nil {
		c.Error(err)
		return
	}

	var req changeRoleRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	info, err := h.users.ChangeRole(id, models.Role(req.Role))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, info)
}
