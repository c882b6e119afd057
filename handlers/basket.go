package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/repos"
	"github.com/courseland/backend/validate"
)

type BasketHandler struct {
	basket *repos.BasketRepo
}

func NewBasketHandler(basket *repos.BasketRepo) *BasketHandler {
	return &BasketHandler{basket: basket}
}

type addToBasketRequest struct {
	CourseID uint `json:"courseId" binding:"required,gt=0"`
}

// List handles GET /basket
func (h *BasketHandler) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	items, err := h.basket.List(identity.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Add handles POST /basket/add
func (h *BasketHandler) Add(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	var req addToBasketRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	item, err := h.basket.Add(identity.ID, req.CourseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Remove handles DELETE /basket/:courseId
func (h *BasketHandler) Remove(c *gin.Context) {
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

	if err := h.basket.Remove(identity.ID, courseID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Clear handles DELETE /basket
func (h *BasketHandler) Clear(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	if err := h.basket.Clear(identity.ID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
