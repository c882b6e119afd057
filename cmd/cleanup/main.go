package main

import (
	"fmt"
	"log"

	"github.com/courseland/backend/config"
	"github.com/courseland/backend/database"
	"github.com/courseland/backend/models"
)

// Prunes rows whose referenced course, module or user no longer exists. The API
// deletes dependents transactionally, so orphans only appear after manual
// database surgery or partial restores.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	fmt.Println("Start cleanup...")

	courseIDs := db.Model(&models.Course{}).Select("id")
	moduleIDs := db.Model(&models.Module{}).Select("id")
	userIDs := db.Model(&models.User{}).Select("id")

	res := db.Where("course_id NOT IN (?) OR user_id NOT IN (?)", courseIDs, userIDs).Delete(&models.BasketItem{})
	if res.Error != nil {
		log.Fatalf("Failed to prune basket items: %v", res.Error)
	}
	fmt.Printf("✅ Pruned %d orphaned basket items\n", res.RowsAffected)

	res = db.Where("course_id NOT IN (?) OR user_id NOT IN (?)", courseIDs, userIDs).Delete(&models.FavoriteCourse{})
	if res.Error != nil {
		log.Fatalf("Failed to prune favorites: %v", res.Error)
	}
	fmt.Printf("✅ Pruned %d orphaned favorites\n", res.RowsAffected)

	res = db.Where("course_id NOT IN (?)", courseIDs).Delete(&models.Question{})
	if res.Error != nil {
		log.Fatalf("Failed to prune questions: %v", res.Error)
	}
	fmt.Printf("✅ Pruned %d orphaned questions\n", res.RowsAffected)

	res = db.Where("course_id NOT IN (?) OR module_id NOT IN (?)", courseIDs, moduleIDs).Delete(&models.CourseModule{})
	if res.Error != nil {
		log.Fatalf("Failed to prune course-module links: %v", res.Error)
	}
	fmt.Printf("✅ Pruned %d orphaned course-module links\n", res.RowsAffected)

	fmt.Println("Cleanup finished successfully")
}
