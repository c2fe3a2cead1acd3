package handlers

import (
	"html/template"
	"net/http"

	"dashboard/config"
	"dashboard/middleware"
	"dashboard/services"
)

type DashboardHandler struct {
	config        *config.Config
	templates     map[string]*template.Template
	users         *services.UserService
	projects      *services.ProjectService
	notifications *services.NotificationService
}

func NewDashboardHandler(cfg *config.Config, templates map[string]*template.Template, users *services.UserService, projects *services.ProjectService, notifications *services.NotificationService) *DashboardHandler {
	return &DashboardHandler{
		config:        cfg,
		templates:     templates,
		users:         users,
		projects:      projects,
		notifications: notifications,
	}
}

// Dashboard is the landing page: the user's projects, their team, the
// most urgent recent notifications and the unread badge count.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	projects, err := h.projects.GetUserProjects(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	notifications, err := h.notifications.GetUserNotifications(r.Context(), user.ID, true)
	if err != nil {
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	unreadCount, err := h.notifications.GetUnreadCount(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	team, err := h.users.GetTeamMembers(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User":          user,
		"Projects":      projects,
		"Notifications": notifications,
		"UnreadCount":   unreadCount,
		"TeamMembers":   team,
		"Error":         r.URL.Query().Get("error"),
		"Success":       r.URL.Query().Get("success"),
	}
	h.templates["dashboard"].ExecuteTemplate(w, "base", data)
}
