package repos

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/models"
	"github.com/courseland/backend/policy"
)

type CourseRepo struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

// QuestionParams describes one question attached at course creation.
type QuestionParams struct {
	Title   string
	Options []models.QuestionOption
}

// CreateCourseParams carries the validated input of POST /courses/add.
type CreateCourseParams struct {
	Title       string
	Image       *string
	Description *string
	Result      []string
	Link        *string
	Price       int
	Category    models.Category
	ModuleIDs   []uint
	Questions   []QuestionParams
}

// UpdateCourseParams carries the validated input of PATCH /courses/:id.
// Nil fields are left unchanged.
type UpdateCourseParams struct {
	Title       *string
	Image       *string
	Description *string
	Result      *[]string
	Link        *string
	Price       *int
	Category    *models.Category
}

// List returns the catalog narrowed to the given policy scope, newest first.
func (r *CourseRepo) List(scope policy.ListScope) ([]models.CourseListItem, error) {
	query := r.db.Model(&models.Course{}).Preload("Modules")
	if scope.CreatorID != nil {
		query = query.Where("creator_id = ?", *scope.CreatorID)
	}
	if scope.Category != nil {
		query = query.Where("category = ?", *scope.Category)
	}

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}

	items := make([]models.CourseListItem, len(courses))
	for i, c := range courses {
		items[i] = listItem(c)
	}
	return items, nil
}

// GetDetail returns the full course view including modules, questions and
// creator.
func (r *CourseRepo) GetDetail(id uint) (models.CourseDetail, error) {
	var course models.Course
	err := r.db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Modules.Module").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Creator").
		First(&course, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CourseDetail{}, apperr.NotFound("Course not found")
		}
		return models.CourseDetail{}, err
	}

	modules := make([]models.ModuleInfo, 0, len(course.Modules))
	for _, cm := range course.Modules {
		if cm.Module == nil {
			continue
		}
		modules = append(modules, models.ModuleInfo{
			ID:       cm.Module.ID,
			Title:    cm.Module.Title,
			Children: cm.Module.Children,
		})
	}

	questions := make([]models.QuestionInfo, len(course.Questions))
	for i, q := range course.Questions {
		questions[i] = models.QuestionInfo{
			ID:      q.ID,
			Title:   q.Title,
			Options: q.Options,
		}
	}

	return models.CourseDetail{
		ID:           course.ID,
		Title:        course.Title,
		Image:        course.Image,
		Price:        course.Price,
		Category:     course.Category,
		ModulesCount: len(course.Modules),
		Description:  course.Description,
		Result:       course.Result,
		Link:         course.Link,
		CreatedAt:    course.CreatedAt,
		UpdatedAt:    course.UpdatedAt,
		Modules:      modules,
		Questions:    questions,
		Creator: models.CourseCreator{
			ID:       course.Creator.ID,
			Username: course.Creator.Username,
			Email:    course.Creator.Email,
		},
	}, nil
}

// Create writes the course row, its module links and its questions in one
// transaction so concurrent readers never observe a half-attached course.
func (r *CourseRepo) Create(creatorID uint, params CreateCourseParams) (models.CourseListItem, error) {
	category := params.Category
	if category == "" {
		category = models.CategoryAll
	}

	var created models.Course
	err := r.db.Transaction(func(tx *gorm.DB) error {
		course := models.Course{
			Title:       params.Title,
			Image:       params.Image,
			Description: params.Description,
			Result:      params.Result,
			Link:        params.Link,
			Price:       params.Price,
			Category:    category,
			CreatorID:   creatorID,
		}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}

		if len(params.ModuleIDs) > 0 {
			links := make([]models.CourseModule, len(params.ModuleIDs))
			for i, moduleID := range params.ModuleIDs {
				links[i] = models.CourseModule{CourseID: course.ID, ModuleID: moduleID}
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				return err
			}
		}

		if len(params.Questions) > 0 {
			questions := make([]models.Question, len(params.Questions))
			for i, q := range params.Questions {
				questions[i] = models.Question{
					CourseID: course.ID,
					Title:    q.Title,
					Options:  q.Options,
				}
			}
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Modules").First(&created, course.ID).Error
	})
	if err != nil {
		return models.CourseListItem{}, err
	}
	return listItem(created), nil
}

// Owner returns the creator id of a course.
func (r *CourseRepo) Owner(id uint) (uint, error) {
	var course models.Course
	if err := r.db.Select("id", "creator_id").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("Course not found")
		}
		return 0, err
	}
	return course.CreatorID, nil
}

// Update applies the non-nil fields and returns the refreshed listing shape.
func (r *CourseRepo) Update(id uint, params UpdateCourseParams) (models.CourseListItem, error) {
	updates := map[string]interface{}{}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Image != nil {
		updates["image"] = *params.Image
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Result != nil {
		updates["result"] = models.StringList(*params.Result)
	}
	if params.Link != nil {
		updates["link"] = *params.Link
	}
	if params.Price != nil {
		updates["price"] = *params.Price
	}
	if params.Category != nil {
		updates["category"] = *params.Category
	}

	if len(updates) > 0 {
		if err := r.db.Model(&models.Course{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return models.CourseListItem{}, err
		}
	}

	var course models.Course
	if err := r.db.Preload("Modules").First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CourseListItem{}, apperr.NotFound("Course not found")
		}
		return models.CourseListItem{}, err
	}
	return listItem(course), nil
}

// Delete removes a course with its questions, module links and basket and
// favorite rows in one transaction.
func (r *CourseRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseModule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.BasketItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.FavoriteCourse{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, id).Error
	})
}

func listItem(c models.Course) models.CourseListItem {
	return models.CourseListItem{
		ID:           c.ID,
		Title:        c.Title,
		Image:        c.Image,
		Price:        c.Price,
		Category:     c.Category,
		ModulesCount: len(c.Modules),
	}
}
