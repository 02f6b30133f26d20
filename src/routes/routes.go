package routes

import (
	"net/http"

	"taskman-app/src/datamode"
	"taskman-app/src/handlers"
	"taskman-app/src/middleware"
	"taskman-app/src/repository"
	"taskman-app/src/service"

	"github.com/gin-gonic/gin"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Auth     *handlers.AuthHandler
	Tasks    *handlers.TaskHandler
	Projects *handlers.ProjectHandler
	Clients  *handlers.ClientHandler
	Payments *handlers.PaymentHandler
	Notes    *handlers.NoteHandler
	Files    *handlers.FileHandler
	Stats    *handlers.StatsHandler
}

// SetupRoutes sets up all API routes
func SetupRoutes(r *gin.Engine, h *Handlers, jwtService service.JWTService, userRepo repository.UserRepository, modes *datamode.Selector) {
	api := r.Group("/api")
	api.Use(middleware.LoggerMiddleware())
	api.Use(middleware.CORSMiddleware())
	api.Use(middleware.RateLimitMiddleware())

	// 認証ルート
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.AuthMiddleware(jwtService, userRepo), h.Auth.GetProfile)
	}

	// 現在のデータモード
	api.GET("/mode", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"mode":    string(modes.Mode()),
			"user_id": modes.UserID(),
		})
	})

	// データルート。未ログイン時はローカルストアで動作する
	data := api.Group("/")
	data.Use(middleware.OptionalAuthMiddleware(jwtService, userRepo))
	{
		tasks := data.Group("/tasks")
		{
			tasks.GET("", h.Tasks.ListTasks)
			tasks.POST("", h.Tasks.CreateTask)
			tasks.GET("/:id", h.Tasks.GetTask)
			tasks.PUT("/:id", h.Tasks.UpdateTask)
			tasks.DELETE("/:id", h.Tasks.DeleteTask)
			tasks.PATCH("/:id/status", h.Tasks.UpdateTaskStatus)
			tasks.POST("/:id/comments", h.Tasks.AddComment)
			tasks.POST("/:id/checklist", h.Tasks.AddChecklistItem)
			tasks.PATCH("/:id/checklist/:itemId/toggle", h.Tasks.ToggleChecklistItem)
		}

		projects := data.Group("/projects")
		{
			projects.GET("", h.Projects.ListProjects)
			projects.POST("", h.Projects.CreateProject)
			projects.GET("/:id", h.Projects.GetProject)
			projects.PUT("/:id", h.Projects.UpdateProject)
			projects.DELETE("/:id", h.Projects.DeleteProject)
			projects.PATCH("/:id/status", h.Projects.UpdateProjectStatus)
		}

		clients := data.Group("/clients")
		{
			clients.GET("", h.Clients.ListClients)
			clients.POST("", h.Clients.CreateClient)
			clients.GET("/:id", h.Clients.GetClient)
			clients.PUT("/:id", h.Clients.UpdateClient)
			clients.DELETE("/:id", h.Clients.DeleteClient)
			clients.PATCH("/:id/archive", h.Clients.ArchiveClient)
			clients.PATCH("/:id/restore", h.Clients.RestoreClient)
		}

		payments := data.Group("/payments")
		{
			payments.GET("", h.Payments.ListPayments)
			payments.POST("", h.Payments.CreatePayment)
			payments.PUT("/:id", h.Payments.UpdatePayment)
			payments.DELETE("/:id", h.Payments.DeletePayment)
			payments.PATCH("/:id/paid", h.Payments.MarkAsPaid)
			payments.PATCH("/:id/archive", h.Payments.ArchivePayment)
			payments.PATCH("/:id/restore", h.Payments.RestorePayment)
		}

		notes := data.Group("/notes")
		{
			notes.GET("", h.Notes.ListNotes)
			notes.POST("", h.Notes.CreateNote)
			notes.GET("/:id", h.Notes.GetNote)
			notes.PUT("/:id", h.Notes.UpdateNote)
			notes.DELETE("/:id", h.Notes.DeleteNote)
			notes.PATCH("/:id/archive", h.Notes.ArchiveNote)
			notes.PATCH("/:id/restore", h.Notes.RestoreNote)
		}

		files := data.Group("/files")
		{
			files.GET("", h.Files.ListFiles)
			files.POST("", h.Files.UploadFile)
			files.DELETE("/:id", h.Files.DeleteFile)
		}

		data.GET("/dashboard", h.Stats.GetDashboard)
		data.GET("/analytics", h.Stats.GetAnalytics)
	}
}
