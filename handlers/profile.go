package handlers

import (
	"html/template"
	"net/http"

	"dashboard/config"
	"dashboard/middleware"
	"dashboard/models"
	"dashboard/services"
)

type ProfileHandler struct {
	config    *config.Config
	templates map[string]*template.Template
	users     *services.UserService
}

func NewProfileHandler(cfg *config.Config, templates map[string]*template.Template, users *services.UserService) *ProfileHandler {
	return &ProfileHandler{
		config:    cfg,
		templates: templates,
		users:     users,
	}
}

func (h *ProfileHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := map[string]interface{}{
		"User":    user,
		"Error":   r.URL.Query().Get("error"),
		"Success": r.URL.Query().Get("success"),
	}
	h.templates["profile"].ExecuteTemplate(w, "base", data)
}

// UpdateProfile writes the editable profile fields of the signed-in user.
// The service ignores everything outside its whitelist, so the form cannot
// touch email, role or availability.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/profile?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	displayName := r.FormValue("display_name")
	if displayName == "" {
		http.Redirect(w, r, "/profile?error=Display+name+is+required", http.StatusSeeOther)
		return
	}

	update := &models.User{
		ID:                 user.ID,
		DisplayName:        displayName,
		PhoneNumber:        r.FormValue("phone_number"),
		Department:         r.FormValue("department"),
		JobTitle:           r.FormValue("job_title"),
		PhotoURL:           r.FormValue("photo_url"),
		EmailNotifications: r.FormValue("email_notifications") == "on",
		InAppNotifications: r.FormValue("in_app_notifications") == "on",
	}

	ok, err := h.users.UpdateUserProfile(r.Context(), update)
	if err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Redirect(w, r, "/profile?error=Profile+not+found", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/profile?success=Profile+updated", http.StatusSeeOther)
}

func (h *ProfileHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/dashboard?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	status := models.AvailabilityStatus(r.FormValue("status"))
	switch status {
	case models.StatusAvailable, models.StatusBusy, models.StatusAway,
		models.StatusDoNotDisturb, models.StatusOffline:
	default:
		http.Redirect(w, r, "/dashboard?error=Unknown+availability+status", http.StatusSeeOther)
		return
	}

	ok, err := h.users.UpdateAvailability(r.Context(), user.ID, status)
	if err != nil {
		http.Error(w, "Failed to update availability", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Redirect(w, r, "/dashboard?error=User+not+found", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard?success=Availability+updated", http.StatusSeeOther)
}

func (h *ProfileHandler) TeamPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	team, err := h.users.GetTeamMembers(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Failed to load team", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User":        user,
		"TeamMembers": team,
	}
	h.templates["team"].ExecuteTemplate(w, "base", data)
}
