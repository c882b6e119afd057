package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/models"
	"github.com/courseland/backend/policy"
)

type ModuleRepo struct {
	db *gorm.DB
}

func NewModuleRepo(db *gorm.DB) *ModuleRepo {
	return &ModuleRepo{db: db}
}

func (r *ModuleRepo) List() ([]models.ModuleInfo, error) {
	var modules []models.Module
	if err := r.db.Order("id ASC").Find(&modules).Error; err != nil {
		return nil, err
	}

	infos := make([]models.ModuleInfo, len(modules))
	for i, m := range modules {
		infos[i] = moduleInfo(m)
	}
	return infos, nil
}

func (r *ModuleRepo) Create(title string, children []string) (models.ModuleInfo, error) {
	module := models.Module{
		Title:    title,
		Children: children,
	}
	if err := r.db.Create(&module).Error; err != nil {
		return models.ModuleInfo{}, err
	}
	return moduleInfo(module), nil
}

// Update changes the non-nil fields of a module.
func (r *ModuleRepo) Update(id uint, title *string, children *[]string) (models.ModuleInfo, error) {
	var module models.Module
	if err := r.db.First(&module, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ModuleInfo{}, apperr.NotFound("Module not found")
		}
		return models.ModuleInfo{}, err
	}

	updates := map[string]interface{}{}
	if title != nil {
		updates["title"] = *title
	}
	if children != nil {
		updates["children"] = models.StringList(*children)
	}
	if len(updates) > 0 {
		if err := r.db.Model(&module).Updates(updates).Error; err != nil {
			return models.ModuleInfo{}, err
		}
	}
	return moduleInfo(module), nil
}

// Delete removes a module; a module still linked to any course cannot be
// deleted.
func (r *ModuleRepo) Delete(id uint) error {
	var module models.Module
	if err := r.db.First(&module, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Module not found")
		}
		return err
	}

	var linked int64
	if err := r.db.Model(&models.CourseModule{}).Where("module_id = ?", id).Count(&linked).Error; err != nil {
		return err
	}
	if decision := policy.CanDeleteModule(linked); !decision.Allowed {
		return apperr.Conflict(decision.Reason)
	}

	return r.db.Delete(&module).Error
}

func moduleInfo(m models.Module) models.ModuleInfo {
	children := m.Children
	if children == nil {
		children = models.StringList{}
	}
	return models.ModuleInfo{
		ID:       m.ID,
		Title:    m.Title,
		Children: children,
	}
}
