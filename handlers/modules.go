package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseland/backend/repos"
	"github.com/courseland/backend/services"
	"github.com/courseland/backend/validate"
)

type ModuleHandler struct {
	modules *repos.ModuleRepo
	events  *services.EventHub
}

func NewModuleHandler(modules *repos.ModuleRepo, events *services.EventHub) *ModuleHandler {
	return &ModuleHandler{modules: modules, events: events}
}

type createModuleRequest struct {
	Title    string   `json:"title" binding:"required,min=1,max=200"`
	Children []string `json:"children"`
}

type updateModuleRequest struct {
	Title    *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Children *[]string `json:"children"`
}

// List handles GET /modules/list
func (h *ModuleHandler) List(c *gin.Context) {
	modules, err := h.modules.List()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

// Create handles POST /modules/add
func (h *ModuleHandler) Create(c *gin.Context) {
	var req createModuleRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	module, err := h.modules.Create(req.Title, req.Children)
	if err != nil {
		c.Error(err)
		return
	}

	if h.events != nil {
		h.events.Publish("modules", "created", module)
	}
	c.JSON(http.StatusCreated, module)
}

// Update handles PATCH /modules/:id
func (h *ModuleHandler) Update(c *gin.Context) {
	id, err := validate.IDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req updateModuleRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	module, err := h.modules.Update(id, req.Title, req.Children)
	if err != nil {
		c.Error(err)
		return
	}

	if h.events != nil {
		h.events.Publish("modules", "updated", module)
	}
	c.JSON(http.StatusOK, module)
}

// Delete handles DELETE /modules/:id. A module still linked to a course is
// not deletable.
func (h *ModuleHandler) Delete(c *gin.Context) {
	id, err := validate.IDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.modules.Delete(id); err != nil {
		c.Error(err)
		return
	}

	if h.events != nil {
		h.events.Publish("modules", "deleted", gin.H{"id": id})
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
