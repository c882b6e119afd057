package models

import "time"

// Response shapes. These are deliberately distinct from the stored rows:
// they never carry the password hash and only expose the fields each
// endpoint promises.

// CourseListItem is the catalog listing shape.
type CourseListItem struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title"`
	Image        *string  `json:"image"`
	Price        int      `json:"price"`
	Category     Category `json:"category"`
	ModulesCount int      `json:"modulesCount"`
}

// CourseBrief is the shape used by basket and favorites listings.
type CourseBrief struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Image        *string `json:"image"`
	ModulesCount int     `json:"modulesCount"`
}

// CourseCreator identifies the owning user of a course.
type CourseCreator struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ModuleInfo is the public shape of a curriculum module.
type ModuleInfo struct {
	ID       uint     `json:"id"`
	Title    string   `json:"title"`
	Children []string `json:"children"`
}

// QuestionInfo is the public shape of a course question.
type QuestionInfo struct {
	ID      uint             `json:"id"`
	Title   string           `json:"title"`
	Options []QuestionOption `json:"options"`
}

// CourseDetail is the full course view returned by GET /courses/:id.
type CourseDetail struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Image        *string        `json:"image"`
	Price        int            `json:"price"`
	Category     Category       `json:"category"`
	ModulesCount int            `json:"modulesCount"`
	Description  *string        `json:"description"`
	Result       []string       `json:"result"`
	Link         *string        `json:"link"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Modules      []ModuleInfo   `json:"modules"`
	Questions    []QuestionInfo `json:"questions"`
	Creator      CourseCreator  `json:"creator"`
}

// UserInfo is the account shape returned to admins and after updates.
type UserInfo struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthUser is the shape embedded in register/login responses.
type AuthUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserProfile is the GET /user/me shape.
type UserProfile struct {
	ID            uint             `json:"id"`
	Email         string           `json:"email"`
	Username      string           `json:"username"`
	Role          Role             `json:"role"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	BasketItems   []BasketItem     `json:"basketItems"`
	FavoriteItems []FavoriteCourse `json:"favoriteItems"`
}
