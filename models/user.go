package models

import (
	"time"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleUser    Role = "USER"
	RoleTeacher Role = "TEACHER"
)

// User model
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Email    string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Username string `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Password string `gorm:"column:password;not null" json:"-"` // bcrypt hash, never serialized
	Role     Role   `gorm:"column:role;default:USER" json:"role"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Courses       []Course         `gorm:"foreignKey:CreatorID" json:"-"`
	BasketItems   []BasketItem     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"basketItems,omitempty"`
	FavoriteItems []FavoriteCourse `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"favoriteItems,omitempty"`
}

func (User) TableName() string {
	return "users"
}
