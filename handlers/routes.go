package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/courseland/backend/auth"
	"github.com/courseland/backend/repos"
	"github.com/courseland/backend/services"
)

// RegisterRoutes builds the repositories and handlers and mounts every route
// on the router. hub may be nil; the event endpoints then answer 503 and
// mutations skip publishing.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, tokens *auth.TokenService, hub *services.EventHub) {
	userRepo := repos.NewUserRepo(db)
	courseRepo := repos.NewCourseRepo(db)
	moduleRepo := repos.NewModuleRepo(db)
	basketRepo := repos.NewBasketRepo(db)
	favoriteRepo := repos.NewFavoriteRepo(db)

	authMw := NewAuthMiddleware(userRepo, tokens)

	authHandler := NewAuthHandler(userRepo, tokens)
	courseHandler := NewCourseHandler(courseRepo, hub)
	moduleHandler := NewModuleHandler(moduleRepo, hub)
	basketHandler := NewBasketHandler(basketRepo)
	favoriteHandler := NewFavoriteHandler(favoriteRepo)
	userHandler := NewUserHandler(userRepo)
	eventsHandler := NewEventsHandler(hub)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	courses := r.Group("/courses")
	{
		courses.GET("/list", authMw.OptionalAuth(), courseHandler.List)
		courses.GET("/:id", courseHandler.Get)
		courses.POST("/add", authMw.RequireAuth(), courseHandler.Create)
		courses.PATCH("/:id", authMw.RequireAuth(), courseHandler.Update)
		courses.DELETE("/:id", authMw.RequireAuth(), courseHandler.Delete)
	}

	modules := r.Group("/modules")
	{
		modules.GET("/list", moduleHandler.List)
		modules.POST("/add", authMw.RequireAuth(), moduleHandler.Create)
		modules.PATCH("/:id", authMw.RequireAuth(), moduleHandler.Update)
		modules.DELETE("/:id", authMw.RequireAuth(), moduleHandler.Delete)
	}

	basket := r.Group("/basket", authMw.RequireAuth())
	{
		basket.GET("", basketHandler.List)
		basket.POST("/add", basketHandler.Add)
		basket.DELETE("/clear", basketHandler.Clear)
		basket.DELETE("/:courseId", basketHandler.Remove)
	}

	favorites := r.Group("/favorites", authMw.RequireAuth())
	{
		favorites.GET("", favoriteHandler.List)
		favorites.POST("/add", favoriteHandler.Add)
		favorites.DELETE("/:courseId", favoriteHandler.Remove)
	}

	user := r.Group("/user", authMw.RequireAuth())
	{
		user.GET("/me", userHandler.Me)
		user.PATCH("/me/update", userHandler.UpdateMe)
		user.GET("/all", userHandler.All)
		user.GET("/:userId", userHandler.ByID)
		user.PATCH("/:userId/change-role", userHandler.ChangeRole)
	}

	ws := r.Group("/ws")
	{
		ws.GET("/events", eventsHandler.Stream)
		ws.GET("/stats", eventsHandler.Stats)
	}
}
