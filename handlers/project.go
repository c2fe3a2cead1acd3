package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"dashboard/config"
	"dashboard/middleware"
	"dashboard/models"
	"dashboard/services"
)

type ProjectHandler struct {
	config        *config.Config
	templates     map[string]*template.Template
	users         *services.UserService
	projects      *services.ProjectService
	notifications *services.NotificationService
}

func NewProjectHandler(cfg *config.Config, templates map[string]*template.Template, users *services.UserService, projects *services.ProjectService, notifications *services.NotificationService) *ProjectHandler {
	return &ProjectHandler{
		config:        cfg,
		templates:     templates,
		users:         users,
		projects:      projects,
		notifications: notifications,
	}
}

func (h *ProjectHandler) ProjectsPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	projects, err := h.projects.GetUserProjects(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Failed to load projects", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User":     user,
		"Projects": projects,
		"Error":    r.URL.Query().Get("error"),
		"Success":  r.URL.Query().Get("success"),
	}
	h.templates["projects"].ExecuteTemplate(w, "base", data)
}

func (h *ProjectHandler) ProjectPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	projectID, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+project", http.StatusSeeOther)
		return
	}

	project, err := h.projects.GetProjectByID(r.Context(), projectID)
	if err != nil {
		http.Error(w, "Failed to load project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		http.Redirect(w, r, "/projects?error=Project+not+found", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"User":    user,
		"Project": project,
		"Error":   r.URL.Query().Get("error"),
		"Success": r.URL.Query().Get("success"),
	}
	h.templates["project-detail"].ExecuteTemplate(w, "base", data)
}

func (h *ProjectHandler) NewProjectPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	data := map[string]interface{}{
		"User":  user,
		"Error": r.URL.Query().Get("error"),
	}
	h.templates["project-form"].ExecuteTemplate(w, "base", data)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects/new?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		http.Redirect(w, r, "/projects/new?error=Name+is+required", http.StatusSeeOther)
		return
	}

	project := &models.Project{
		Name:        name,
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
		ManagerID:   user.ID,
		TargetDate:  parseDate(r.FormValue("target_date")),
	}

	created, err := h.projects.CreateProject(r.Context(), project)
	if err != nil {
		http.Error(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&success=Project+created", created.ID), http.StatusSeeOther)
}

func (h *ProjectHandler) EditProjectPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	projectID, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+project", http.StatusSeeOther)
		return
	}

	project, err := h.projects.GetProjectByID(r.Context(), projectID)
	if err != nil {
		http.Error(w, "Failed to load project", http.StatusInternalServerError)
		return
	}
	if project == nil {
		http.Redirect(w, r, "/projects?error=Project+not+found", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"User":    user,
		"Project": project,
		"Error":   r.URL.Query().Get("error"),
	}
	h.templates["project-edit"].ExecuteTemplate(w, "base", data)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	projectID, err := parseID(r.FormValue("id"))
	if err != nil {
		http.Redirect(w, r, "/projects?error=Invalid+project", http.StatusSeeOther)
		return
	}

	project := &models.Project{
		ID:          projectID,
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
		TargetDate:  parseDate(r.FormValue("target_date")),
	}

	ok, err := h.projects.UpdateProject(r.Context(), project)
	if err != nil {
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Redirect(w, r, "/projects?error=Project+not+found", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&success=Project+updated", projectID), http.StatusSeeOther)
}

// AddMember assigns a user to a project and drops them a notification.
// Adding the same user twice is reported back as an error, not a crash.
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
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

	memberEmail := r.FormValue("email")
	member, err := h.users.GetUserByEmail(r.Context(), memberEmail)
	if err != nil {
		http.Error(w, "Failed to add member", http.StatusInternalServerError)
		return
	}
	if member == nil {
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=No+user+with+that+email", projectID), http.StatusSeeOther)
		return
	}

	role := r.FormValue("role")
	if role == "" {
		role = "Contributor"
	}

	ok, err := h.projects.AddProjectMember(r.Context(), projectID, member.ID, role)
	if err != nil {
		http.Error(w, "Failed to add member", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&error=Already+a+member", projectID), http.StatusSeeOther)
		return
	}

	if _, err := h.notifications.CreateNotification(r.Context(), &models.Notification{
		UserID:   member.ID,
		Title:    "Added to a project",
		Message:  fmt.Sprintf("%s added you to a project as %s", actor.DisplayName, role),
		Link:     fmt.Sprintf("/projects/view?id=%d", projectID),
		Priority: models.PriorityNormal,
	}); err != nil {
		http.Error(w, "Failed to add member", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/projects/view?id=%d&success=Member+added", projectID), http.StatusSeeOther)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &date
}
