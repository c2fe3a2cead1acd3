package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"dashboard/config"
	"dashboard/middleware"
	"dashboard/models"
	"dashboard/services"
)

type TaskHandler struct {
	config        *config.Config
	templates     map[string]*template.Template
	users         *services.UserService
	tasks         *services.TaskService
	notifications *services.NotificationService
}

func NewTaskHandler(cfg *config.Config, templates map[string]*template.Template, users *services.UserService, tasks *services.TaskService, notifications *services.NotificationService) *TaskHandler {
	return &TaskHandler{
		config:        cfg,
		templates:     templates,
		users:         users,
		tasks:         tasks,
		notifications: notifications,
	}
}

// CreateTask adds a task to a project, optionally assigned straight away
// by email. The assignee gets a notification.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	projectID, err := parseID(r.FormValue("project_id"))
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+project", http.StatusSeeOther)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=Task+title+is+required", projectID), http.StatusSeeOther)
		return
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       title,
		Description: r.FormValue("description"),
		Status:      "Todo",
		DueDate:     parseDate(r.FormValue("due_date")),
	}

	var assignee *models.User
	if email := r.FormValue("assignee_email"); email != "" {
		assignee, err = h.users.GetUserByEmail(r.Context(), email)
		if err != nil {
			http.Error(w, "Failed to create task", http.StatusInternalServerError)
			return
		}
		if assignee == nil {
			http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=No+user+with+that+email", projectID), http.StatusSeeOther)
			return
		}
		task.AssigneeID = &assignee.ID
	}

	created, err := h.tasks.CreateTask(r.Context(), task)
	if err != nil {
		http.Error(w, "Failed to create task", http.StatusInternalServerError)
		return
	}
	if created == nil {
		http.Redirect(w, r, "/projects?error=Project+not+found", http.StatusSeeOther)
		return
	}

	if assignee != nil {
		if _, err := h.notifications.CreateNotification(r.Context(), &models.Notification{
			UserID:   assignee.ID,
			Title:    "Task assigned to you",
			Message:  fmt.Sprintf("%s assigned you %q", actor.DisplayName, created.Title),
			Link:     fmt.Sprintf("/projects/view?id=%d", projectID),
			Priority: models.PriorityNormal,
		}); err != nil {
			http.Error(w, "Failed to create task", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&success=Task+created", projectID), http.StatusSeeOther)
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	projectID, err := parseID(r.FormValue("project_id"))
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+project", http.StatusSeeOther)
		return
	}
	taskID, err := parseID(r.FormValue("id"))
	if err != nil {
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=Invalid+task", projectID), http.StatusSeeOther)
		return
	}

	status := r.FormValue("status")
	switch status {
	case "Todo", "InProgress", "Blocked", "Done":
	default:
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=Unknown+task+status", projectID), http.StatusSeeOther)
		return
	}

	ok, err := h.tasks.UpdateTaskStatus(r.Context(), taskID, status)
	if err != nil {
		http.Error(w, "Failed to update task", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=Task+not+found", projectID), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&success=Task+updated", projectID), http.StatusSeeOther)
}

func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	if actor == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	projectID, err := parseID(r.FormValue("project_id"))
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+project", http.StatusSeeOther)
		return
	}
	taskID, err := parseID(r.FormValue("id"))
	if err != nil {
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=Invalid+task", projectID), http.StatusSeeOther)
		return
	}

	assignee, err := h.users.GetUserByEmail(r.Context(), r.FormValue("email"))
	if err != nil {
		http.Error(w, "Failed to assign task", http.StatusInternalServerError)
		return
	}
	if assignee == nil {
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=No+user+with+that+email", projectID), http.StatusSeeOther)
		return
	}

	ok, err := h.tasks.AssignTask(r.Context(), taskID, assignee.ID)
	if err != nil {
		http.Error(w, "Failed to assign task", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=Task+not+found", projectID), http.StatusSeeOther)
		return
	}

	if _, err := h.notifications.CreateNotification(r.Context(), &models.Notification{
		UserID:   assignee.ID,
		Title:    "Task assigned to you",
		Message:  fmt.Sprintf("%s assigned you a task", actor.DisplayName),
		Link:     fmt.Sprintf("/projects/view?id=%d", projectID),
		Priority: models.PriorityNormal,
	}); err != nil {
		http.Error(w, "Failed to assign task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&success=Task+assigned", projectID), http.StatusSeeOther)
}
