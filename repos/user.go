// Package repos implements data access against the store. Repositories take
// an explicitly injected *gorm.DB, return DTO shapes rather than raw rows,
// and surface failures as typed errors from the apperr taxonomy.
package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/courseland/backend/apperr"
	"github.com/courseland/backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Register creates a user after checking neither the email nor the username
// is taken. The unique indexes back this up for concurrent registrations.
func (r *UserRepo) Register(email, username, passwordHash string) (models.User, error) {
	var existing models.User
	err := r.db.Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		return models.User{}, apperr.Conflict("User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	user := models.User{
		Email:    email,
		Username: username,
		Password: passwordHash,
		Role:     models.RoleUser,
	}
	if err := r.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, apperr.Conflict("User already exists")
		}
		return models.User{}, err
	}
	return user, nil
}

// GetByUsername returns the full row, password hash included, for
// credential checks only.
func (r *UserRepo) GetByUsername(username string) (models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.Unauthorized("Invalid credentials")
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepo) GetByID(id uint) (models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("User not found")
		}
		return models.User{}, err
	}
	return user, nil
}

// Profile loads the current user with basket and favorites attached.
func (r *UserRepo) Profile(id uint) (models.UserProfile, error) {
	var user models.User
	err := r.db.
		Preload("BasketItems").
		Preload("FavoriteItems").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserProfile{}, apperr.NotFound("User not found")
		}
		return models.UserProfile{}, err
	}

	if user.BasketItems == nil {
		user.BasketItems = []models.BasketItem{}
	}
	if user.FavoriteItems == nil {
		user.FavoriteItems = []models.FavoriteCourse{}
	}

	return models.UserProfile{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		Role:          user.Role,
		UpdatedAt:     user.UpdatedAt,
		BasketItems:   user.BasketItems,
		FavoriteItems: user.FavoriteItems,
	}, nil
}

// AdminView loads a user with their favorites (courses included) for the
// admin detail endpoint.
func (r *UserRepo) AdminView(id uint) (models.User, error) {
	var user models.User
	err := r.db.
		Preload("FavoriteItems.Course").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.NotFound("User not found")
		}
		return models.User{}, err
	}
	if user.FavoriteItems == nil {
		user.FavoriteItems = []models.FavoriteCourse{}
	}
	return user, nil
}

func (r *UserRepo) All() ([]models.UserInfo, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	infos := make([]models.UserInfo, len(users))
	for i, u := range users {
		infos[i] = userInfo(u)
	}
	return infos, nil
}

// Exists reports whether another user already holds the given email or
// username. The calling user is excluded so updating only one of the two
// fields never collides with itself.
func (r *UserRepo) Exists(email, username string, excludeID uint) (bool, error) {
	query := r.db.Model(&models.User{}).Where("id <> ?", excludeID)
	switch {
	case email != "" && username != "":
		query = query.Where("email = ? OR username = ?", email, username)
	case email != "":
		query = query.Where("email = ?", email)
	case username != "":
		query = query.Where("username = ?", username)
	default:
		return false, nil
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update changes the caller's email and/or username.
func (r *UserRepo) Update(id uint, email, username *string) (models.UserInfo, error) {
	updates := map[string]interface{}{}
	if email != nil {
		updates["email"] = *email
	}
	if username != nil {
		updates["username"] = *username
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserInfo{}, apperr.NotFound("User not found")
		}
		return models.UserInfo{}, err
	}

	if len(updates) > 0 {
		if err := r.db.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.UserInfo{}, apperr.Conflict("Email or username already taken")
			}
			return models.UserInfo{}, err
		}
	}
	return userInfo(user), nil
}

// ChangeRole sets a user's role (admin operation).
func (r *UserRepo) ChangeRole(id uint, role models.Role) (models.UserInfo, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserInfo{}, apperr.NotFound("User not found")
		}
		return models.UserInfo{}, err
	}

	if err := r.db.Model(&user).Update("role", role).Error; err != nil {
		return models.UserInfo{}, err
	}
	return userInfo(user), nil
}

func userInfo(u models.User) models.UserInfo {
	return models.UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
