package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Category enum
type Category string

const (
	CategoryAll      Category = "ALL"
	CategoryFrontend Category = "FRONTEND"
	CategoryMobile   Category = "MOBILE"
	CategoryBackend  Category = "BACKEND"
	CategoryDesign   Category = "DESIGN"
)

// StringList is an ordered list of strings stored as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// QuestionOption is one answer choice of a course question.
type QuestionOption struct {
	AnswerName string `json:"answerName"`
	Right      bool   `json:"right"`
}

// QuestionOptionList is stored as a jsonb column.
type QuestionOptionList []QuestionOption

func (l QuestionOptionList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]QuestionOption{})
	}
	return json.Marshal([]QuestionOption(l))
}

func (l *QuestionOptionList) Scan(value interface{}) error {
	if value == nil {
		*l = QuestionOptionList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for QuestionOptionList", value)
	}
}

// Course model
type Course struct {
	ID          uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Image       *string    `gorm:"column:image" json:"image"`
	Description *string    `gorm:"column:description" json:"description"`
	Result      StringList `gorm:"type:jsonb;column:result" json:"result"`
	Link        *string    `gorm:"column:link" json:"link"`
	Price       int        `gorm:"column:price;default:0" json:"price"`
	Category    Category   `gorm:"column:category;default:ALL" json:"category"`
	CreatorID   uint       `gorm:"column:creator_id;index" json:"creatorId"`
	Creator     User       `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Modules     []CourseModule   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	Questions   []Question       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	BasketItems []BasketItem     `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	FavoredBy   []FavoriteCourse `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// Module model - reusable curriculum block, shared between courses
type Module struct {
	ID       uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Title    string     `gorm:"column:title;not null" json:"title"`
	Children StringList `gorm:"type:jsonb;column:children" json:"children"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`

	Courses []CourseModule `gorm:"foreignKey:ModuleID" json:"-"`
}

func (Module) TableName() string {
	return "modules"
}

// CourseModule model - join entity linking courses and modules
type CourseModule struct {
	ID       uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CourseID uint    `gorm:"column:course_id;index;uniqueIndex:idx_course_module" json:"courseId"`
	ModuleID uint    `gorm:"column:module_id;index;uniqueIndex:idx_course_module" json:"moduleId"`
	Module   *Module `gorm:"foreignKey:ModuleID" json:"module,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// Question model - owned exclusively by one course
type Question struct {
	ID       uint               `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CourseID uint               `gorm:"column:course_id;index" json:"courseId"`
	Title    string             `gorm:"column:title;not null" json:"title"`
	Options  QuestionOptionList `gorm:"type:jsonb;column:options" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

// BasketItem model - join entity, at most one row per (user, course)
type BasketItem struct {
	ID       uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID   uint    `gorm:"column:user_id;index;uniqueIndex:idx_basket_user_course" json:"userId"`
	CourseID uint    `gorm:"column:course_id;index;uniqueIndex:idx_basket_user_course" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (BasketItem) TableName() string {
	return "basket_items"
}

// FavoriteCourse model - join entity, at most one row per (user, course)
type FavoriteCourse struct {
	ID       uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID   uint    `gorm:"column:user_id;index;uniqueIndex:idx_favorite_user_course" json:"userId"`
	CourseID uint    `gorm:"column:course_id;index;uniqueIndex:idx_favorite_user_course" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (FavoriteCourse) TableName() string {
	return "favorite_courses"
}
