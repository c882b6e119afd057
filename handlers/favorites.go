package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/repos"
	"github.com/courseland/backend/validate"
)

type FavoriteHandler struct {
	favorites *repos.FavoriteRepo
}

func NewFavoriteHandler(favorites *repos.FavoriteRepo) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type addFavoriteRequest struct {
	CourseID uint `json:"courseId" binding:"required,gt=0"`
}

// List handles GET /favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	items, err := h.favorites.List(identity.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Add handles POST /favorites/add
func (h *FavoriteHandler) Add(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	var req addFavoriteRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	item, err := h.favorites.Add(identity.ID, req.CourseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Remove handles DELETE /favorites/:courseId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	courseID, err := validate.IDParam(c, "courseId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.favorites.Remove(identity.ID, courseID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
