package main

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/courseland/backend/auth"
	"github.com/courseland/backend/config"
	"github.com/courseland/backend/database"
	"github.com/courseland/backend/models"
)

var sampleModules = []models.Module{
	{Title: "HTML & CSS Basics", Children: models.StringList{"Semantic markup", "Flexbox", "Grid", "Responsive design"}},
	{Title: "JavaScript Fundamentals", Children: models.StringList{"Variables and types", "Functions", "Async/await", "DOM"}},
	{Title: "React", Children: models.StringList{"Components", "Hooks", "State management", "Routing"}},
	{Title: "Go Services", Children: models.StringList{"HTTP servers", "Database access", "Testing", "Deployment"}},
	{Title: "UI Design", Children: models.StringList{"Color theory", "Typography", "Figma", "Prototyping"}},
}

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	fmt.Println("🌱 Starting seed...")

	admin := seedUser(db, "admin@courseland.dev", "admin", "admin123", models.RoleAdmin)
	teacher := seedUser(db, "teacher@courseland.dev", "teacher", "teacher123", models.RoleTeacher)
	fmt.Printf("✅ Users ready (admin id=%d, teacher id=%d)\n", admin.ID, teacher.ID)

	modules := make([]models.Module, 0, len(sampleModules))
	for _, m := range sampleModules {
		var module models.Module
		err := db.Where("title = ?", m.Title).First(&module).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			module = m
			if err := db.Create(&module).Error; err != nil {
				log.Fatalf("Failed to create module %q: %v", m.Title, err)
			}
		} else if err != nil {
			log.Fatalf("Failed to look up module %q: %v", m.Title, err)
		}
		modules = append(modules, module)
	}
	fmt.Printf("✅ %d modules ready\n", len(modules))

	courses := []struct {
		course    models.Course
		moduleIdx []int
		questions []models.Question
	}{
		{
			course: models.Course{
				Title:       "Frontend from Zero",
				Description: strPtr("Build modern web interfaces from scratch."),
				Result:      models.StringList{"Build responsive pages", "Write idiomatic JavaScript", "Ship a React app"},
				Price:       4900,
				Category:    models.CategoryFrontend,
				CreatorID:   teacher.ID,
			},
			moduleIdx: []int{0, 1, 2},
			questions: []models.Question{
				{
					Title: "Which hook stores local component state?",
					Options: models.QuestionOptionList{
						{AnswerName: "useState", Right: true},
						{AnswerName: "useEffect", Right: false},
						{AnswerName: "useMemo", Right: false},
					},
				},
			},
		},
		{
			course: models.Course{
				Title:       "Backend Services in Go",
				Description: strPtr("Design, build and operate production HTTP services."),
				Result:      models.StringList{"Model data with an ORM", "Design REST endpoints", "Write table-driven tests"},
				Price:       6900,
				Category:    models.CategoryBackend,
				CreatorID:   teacher.ID,
			},
			moduleIdx: []int{3},
			questions: []models.Question{
				{
					Title: "Which HTTP status fits a duplicate resource?",
					Options: models.QuestionOptionList{
						{AnswerName: "409 Conflict", Right: true},
						{AnswerName: "404 Not Found", Right: false},
						{AnswerName: "400 Bad Request", Right: false},
					},
				},
			},
		},
		{
			course: models.Course{
				Title:     "Product Design Essentials",
				Result:    models.StringList{"Design a component library", "Prototype in Figma"},
				Price:     3900,
				Category:  models.CategoryDesign,
				CreatorID: teacher.ID,
			},
			moduleIdx: []int{4},
		},
	}

	created := 0
	for _, c := range courses {
		var existing models.Course
		err := db.Where("title = ?", c.course.Title).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up course %q: %v", c.course.Title, err)
		}

		course := c.course
		if err := db.Create(&course).Error; err != nil {
			log.Fatalf("Failed to create course %q: %v", course.Title, err)
		}

		links := make([]models.CourseModule, len(c.moduleIdx))
		for i, idx := range c.moduleIdx {
			links[i] = models.CourseModule{CourseID: course.ID, ModuleID: modules[idx].ID}
		}
		if len(links) > 0 {
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				log.Fatalf("Failed to link modules for %q: %v", course.Title, err)
			}
		}

		for _, q := range c.questions {
			q.CourseID = course.ID
			if err := db.Create(&q).Error; err != nil {
				log.Fatalf("Failed to create question for %q: %v", course.Title, err)
			}
		}
		created++
	}

	fmt.Printf("✅ Created %d courses\n", created)
	fmt.Println("✅ Seeding completed.")
}

func seedUser(db *gorm.DB, email, username, password string, role models.Role) models.User {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return user
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up user %q: %v", username, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password for %q: %v", username, err)
	}
	user = models.User{
		Email:    email,
		Username: username,
		Password: hash,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %q: %v", username, err)
	}
	return user
}

func strPtr(s string) *string { return &s }
