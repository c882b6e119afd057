package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/models"
)

type BasketRepo struct {
	db *gorm.DB
}

func NewBasketRepo(db *gorm.DB) *BasketRepo {
	return &BasketRepo{db: db}
}

// List returns the user's basket as course briefs, newest first.
func (r *BasketRepo) List(userID uint) ([]models.CourseBrief, error) {
	var items []models.BasketItem
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Course.Modules").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return courseBriefs(items, func(i models.BasketItem) *models.Course { return i.Course }), nil
}

// Add puts a course into the user's basket. Adding the same course twice is
// a conflict; the composite unique index catches concurrent duplicates.
func (r *BasketRepo) Add(userID, courseID uint) (models.CourseBrief, error) {
	if err := r.courseExists(courseID); err != nil {
		return models.CourseBrief{}, err
	}

	var existing models.BasketItem
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return models.CourseBrief{}, apperr.Conflict("Course already in basket")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CourseBrief{}, err
	}

	item := models.BasketItem{UserID: userID, CourseID: courseID}
	if err := r.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.CourseBrief{}, apperr.Conflict("Course already in basket")
		}
		return models.CourseBrief{}, err
	}

	if err := r.db.Preload("Course.Modules").First(&item, item.ID).Error; err != nil {
		return models.CourseBrief{}, err
	}
	return brief(item.Course), nil
}

// Remove takes a course out of the user's basket.
func (r *BasketRepo) Remove(userID, courseID uint) error {
	var item models.BasketItem
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Course not found in basket")
		}
		return err
	}
	return r.db.Delete(&item).Error
}

// Clear empties the user's basket.
func (r *BasketRepo) Clear(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.BasketItem{}).Error
}

func (r *BasketRepo) courseExists(courseID uint) error {
	var course models.Course
	if err := r.db.Select("id").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Course not found")
		}
		return err
	}
	return nil
}

func brief(c *models.Course) models.CourseBrief {
	if c == nil {
		return models.CourseBrief{}
	}
	return models.CourseBrief{
		ID:           c.ID,
		Title:        c.Title,
		Image:        c.Image,
		ModulesCount: len(c.Modules),
	}
}

func courseBriefs[T any](items []T, course func(T) *models.Course) []models.CourseBrief {
	briefs := make([]models.CourseBrief, 0, len(items))
	for _, item := range items {
		if c := course(item); c != nil {
			briefs = append(briefs, brief(c))
		}
	}
	return briefs
}
