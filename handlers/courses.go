// Package handlers wires HTTP routes to repositories and policies.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/models"
	"github.com/courseland/backend/policy"
	"github.com/courseland/backend/repos"
	"github.com/courseland/backend/services"
	"github.com/courseland/backend/validate"
)

type CourseHandler struct {
	courses *repos.CourseRepo
	events  *services.EventHub
}

func NewCourseHandler(courses *repos.CourseRepo, events *services.EventHub) *CourseHandler {
	return &CourseHandler{courses: courses, events: events}
}

type listCoursesQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=ALL FRONTEND MOBILE BACKEND DESIGN"`
}

type questionOptionRequest struct {
	AnswerName string `json:"answerName" binding:"required"`
	Right      *bool  `json:"right" binding:"required"`
}

type questionRequest struct {
	Title   string                  `json:"title" binding:"required"`
	Options []questionOptionRequest `json:"options" binding:"required,min=2,max=10,dive"`
}

type createCourseRequest struct {
	Title       string            `json:"title" binding:"required,min=1,max=200"`
	Image       *string           `json:"image" binding:"omitempty,url"`
	Description *string           `json:"description"`
	Result      []string          `json:"result"`
	Link        *string           `json:"link" binding:"omitempty,url"`
	Price       int               `json:"price" binding:"gte=0"`
	Category    string            `json:"category" binding:"omitempty,oneof=ALL FRONTEND MOBILE BACKEND DESIGN"`
	ModuleIDs   []uint            `json:"moduleIds" binding:"omitempty,dive,gt=0"`
	Questions   []questionRequest `json:"questions" binding:"omitempty,dive"`
}

type updateCourseRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Image       *string   `json:"image" binding:"omitempty,url"`
	Description *string   `json:"description"`
	Result      *[]string `json:"result"`
	Link        *string   `json:"link" binding:"omitempty,url"`
	Price       *int      `json:"price" binding:"omitempty,gte=0"`
	Category    *string   `json:"category" binding:"omitempty,oneof=ALL FRONTEND MOBILE BACKEND DESIGN"`
}

// List handles GET /courses. Anonymous viewers see the whole catalog,
// teachers only their own courses.
func (h *CourseHandler) List(c *gin.Context) {
	var query listCoursesQuery
	if err := validate.Query(c, &query); err != nil {
		c.Error(err)
		return
	}

	var viewer *policy.Identity
	if identity, ok := currentIdentity(c); ok {
		viewer = &identity
	}

	items, err := h.courses.List(policy.CourseListScope(viewer, models.Category(query.Category)))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := validate.IDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	detail, err := h.courses.GetDetail(id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create handles POST /courses/add
func (h *CourseHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	var req createCourseRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	questions := make([]repos.QuestionParams, len(req.Questions))
	for i, q := range req.Questions {
		options := make([]models.QuestionOption, len(q.Options))
		for j, o := range q.Options {
			options[j] = models.QuestionOption{AnswerName: o.AnswerName, Right: *o.Right}
		}
		questions[i] = repos.QuestionParams{Title: q.Title, Options: options}
	}

	item, err := h.courses.Create(identity.ID, repos.CreateCourseParams{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Result:      req.Result,
		Link:        req.Link,
		Price:       req.Price,
		Category:    models.Category(req.Category),
		ModuleIDs:   req.ModuleIDs,
		Questions:   questions,
	})
	if err != nil {
		c.Error(err)
		return
	}

	if h.events != nil {
		h.events.Publish("courses", "created", item)
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PATCH /courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	id, err := validate.IDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req updateCourseRequest
	if err := validate.Body(c, &req); err != nil {
		c.Error(err)
		return
	}

	creatorID, err := h.courses.Owner(id)
	if err != nil {
		c.Error(err)
		return
	}
	if decision := policy.CanMutateCourse(identity, creatorID); !decision.Allowed {
		c.Error(apperr.Unauthorized(decision.Reason))
		return
	}

	var category *models.Category
	if req.Category != nil {
		cat := models.Category(*req.Category)
		category = &cat
	}

	item, err := h.courses.Update(id, repos.UpdateCourseParams{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Result:      req.Result,
		Link:        req.Link,
		Price:       req.Price,
		Category:    category,
	})
	if err != nil {
		c.Error(err)
		return
	}

	if h.events != nil {
		h.events.Publish("courses", "updated", item)
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.Error(apperr.Unauthorized("No token provided"))
		return
	}

	id, err := validate.IDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	creatorID, err := h.courses.Owner(id)
	if err != nil {
		c.Error(err)
		return
	}
	if decision := policy.CanMutateCourse(identity, creatorID); !decision.Allowed {
		c.Error(apperr.Unauthorized(decision.Reason))
		return
	}

	if err := h.courses.Delete(id); err != nil {
		c.Error(err)
		return
	}

	if h.events != nil {
		h.events.Publish("courses", "deleted", gin.H{"id": id})
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
