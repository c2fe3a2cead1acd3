package main

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"dashboard/config"
	"dashboard/database"
	"dashboard/handlers"
	"dashboard/middleware"
	"dashboard/models"
	"dashboard/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize JWT secret
	middleware.SetJWTSecret(cfg.JWTSecret)

	// Initialize database
	if err := database.Init(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Template functions
	funcMap := template.FuncMap{
		"fmtDate": func(t *time.Time) string {
			if t == nil {
				return "none"
			}
			return t.Format("2006-01-02")
		},
	}

	// Parse templates - each page template paired with base
	templates := make(map[string]*template.Template)
	pages := []string{
		"login", "dashboard", "projects", "project-detail", "project-form",
		"project-edit", "profile", "team", "notifications",
	}
	for _, page := range pages {
		templates[page] = template.Must(template.New("").Funcs(funcMap).ParseFiles(
			"templates/base.html",
			"templates/"+page+".html",
		))
	}

	// Services
	db := database.GetDB()
	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db)
	taskService := services.NewTaskService(db)
	notificationService := services.NewNotificationService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, templates, userService)
	dashboardHandler := handlers.NewDashboardHandler(cfg, templates, userService, projectService, notificationService)
	projectHandler := handlers.NewProjectHandler(cfg, templates, userService, projectService, notificationService)
	taskHandler := handlers.NewTaskHandler(cfg, templates, userService, taskService, notificationService)
	profileHandler := handlers.NewProfileHandler(cfg, templates, userService)
	notificationHandler := handlers.NewNotificationHandler(cfg, templates, notificationService)

	// Setup router
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// Public routes
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
	router.Get("/login", authHandler.LoginPage)
	router.Post("/login", authHandler.Login)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/logout", authHandler.Logout)

		// Everyone signed in
		r.Get("/dashboard", dashboardHandler.Dashboard)
		r.Get("/profile", profileHandler.ProfilePage)
		r.Post("/profile", profileHandler.UpdateProfile)
		r.Post("/availability", profileHandler.UpdateAvailability)
		r.Get("/team", profileHandler.TeamPage)
		r.Get("/notifications", notificationHandler.NotificationsPage)
		r.Post("/notifications/read", notificationHandler.MarkRead)
		r.Get("/projects", projectHandler.ProjectsPage)
		r.Get("/projects/view", projectHandler.ProjectPage)
		r.Post("/tasks/status", taskHandler.UpdateStatus)

		// Project management requires the ProjectManager tier;
		// Administrators pass the same gate.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTier(models.RoleProjectManager))
			r.Get("/projects/new", projectHandler.NewProjectPage)
			r.Post("/projects/new", projectHandler.CreateProject)
			r.Get("/projects/edit", projectHandler.EditProjectPage)
			r.Post("/projects/edit", projectHandler.UpdateProject)
			r.Post("/projects/members", projectHandler.AddMember)
			r.Post("/tasks/new", taskHandler.CreateTask)
			r.Post("/tasks/assign", taskHandler.Assign)
		})
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, router))
}
