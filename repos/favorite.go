package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/models"
)

type FavoriteRepo struct {
	db *gorm.DB
}

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// List returns the user's favorite courses, newest first.
func (r *FavoriteRepo) List(userID uint) ([]models.CourseBrief, error) {
	var items []models.FavoriteCourse
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Course.Modules").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return courseBriefs(items, func(i models.FavoriteCourse) *models.Course { return i.Course }), nil
}

// Add marks a course as favorite. Favoriting the same course twice is a
// conflict; the composite unique index catches concurrent duplicates.
func (r *FavoriteRepo) Add(userID, courseID uint) (models.CourseBrief, error) {
	var course models.Course
	if err := r.db.Select("id").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CourseBrief{}, apperr.NotFound("Course not found")
		}
		return models.CourseBrief{}, err
	}

	var existing models.FavoriteCourse
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return models.CourseBrief{}, apperr.Conflict("Course already in favorites")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CourseBrief{}, err
	}

	item := models.FavoriteCourse{UserID: userID, CourseID: courseID}
	if err := r.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.CourseBrief{}, apperr.Conflict("Course already in favorites")
		}
		return models.CourseBrief{}, err
	}

	if err := r.db.Preload("Course.Modules").First(&item, item.ID).Error; err != nil {
		return models.CourseBrief{}, err
	}
	return brief(item.Course), nil
}

// Remove takes a course out of the user's favorites.
func (r *FavoriteRepo) Remove(userID, courseID uint) error {
	var item models.FavoriteCourse
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Course not found in favorites")
		}
		return err
	}
	return r.db.Delete(&item).Error
}
