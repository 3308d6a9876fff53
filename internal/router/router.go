package router

import (
	"net/http"
	"os"
	"talknfix/internal/handlers"
	"talknfix/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	reactionHandler := handlers.NewReactionHandler()
	projectHandler := handlers.NewProjectHandler()
	reputationHandler := handlers.NewReputationHandler()

	// 服务标识
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to TalknFix API",
		})
	})

	// 上传文件静态服务，目录与上传保存路径保持一致
	uploadDir := os.Getenv("UPLOAD_PATH")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	api := r.Group("/api")

	// 公共路由 (Public Routes)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// 受保护路由 (Protected Routes)
	authAuthorized := api.Group("/auth")
	authAuthorized.Use(middleware.AuthRequired())
	{
		authAuthorized.GET("/me", authHandler.Me)
		authAuthorized.PUT("/language", authHandler.UpdateLanguage)
	}

	users := api.Group("/users")
	users.Use(middleware.AuthRequired())
	{
		users.GET("/search", userHandler.SearchUsers)
		users.GET("/friend-requests", userHandler.FriendRequests)
		users.GET("/:id", userHandler.Profile)
		users.POST("/:id/friend-request", userHandler.SendFriendRequest)
		users.POST("/friend-request/:requestId/accept", userHandler.AcceptFriendRequest)
		users.POST("/friend-request/:requestId/reject", userHandler.RejectFriendRequest)
		users.DELETE("/:id/friend", userHandler.RemoveFriend)
	}

	posts := api.Group("/posts")
	posts.Use(middleware.AuthRequired())
	{
		posts.POST("", postHandler.Create)
		posts.GET("/feed", postHandler.Feed)
		posts.GET("/search", postHandler.Search)
		posts.GET("/user/:userId", postHandler.UserPosts)
		posts.GET("/:id", postHandler.Get)
		posts.PUT("/:id", postHandler.Update)
		posts.DELETE("/:id", postHandler.Delete)
		posts.POST("/:id/hide", postHandler.Hide)
		posts.POST("/:id/unhide", postHandler.Unhide)
	}

	comments := api.Group("/comments")
	comments.Use(middleware.AuthRequired())
	{
		comments.POST("", commentHandler.Create)
		comments.GET("/:postId", commentHandler.List)
		comments.DELETE("/:id", commentHandler.Delete)
		comments.POST("/:id/accept", commentHandler.Accept)
		comments.POST("/:id/unaccept", commentHandler.Unaccept)
	}

	reactions := api.Group("/reactions")
	reactions.Use(middleware.AuthRequired())
	{
		reactions.POST("", reactionHandler.Toggle)
		reactions.GET("/:postId", reactionHandler.List)
		reactions.GET("/:postId/check", reactionHandler.Check)
	}

	projects := api.Group("/projects")
	projects.Use(middleware.AuthRequired())
	{
		projects.GET("", projectHandler.List)
		projects.POST("", projectHandler.Create)
		projects.GET("/user/:userId", projectHandler.ByUser)
		projects.GET("/:id", projectHandler.Get)
		projects.PUT("/:id", projectHandler.Update)
		projects.DELETE("/:id", projectHandler.Delete)
		projects.POST("/:id/updates", projectHandler.AddUpdate)
		projects.POST("/:id/collaborators", projectHandler.AddCollaborator)
		projects.DELETE("/:id/collaborators/:userId", projectHandler.RemoveCollaborator)
	}

	reputation := api.Group("/reputation")
	reputation.Use(middleware.AuthRequired())
	{
		reputation.GET("/me", reputationHandler.Mine)
		reputation.GET("/me/history", reputationHandler.History)
		reputation.GET("/leaderboard", reputationHandler.Leaderboard)
		reputation.GET("/:userId", reputationHandler.ByUser)
	}
}
