package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"dashboard/config"
	"dashboard/middleware"
	"dashboard/services"
)

type AuthHandler struct {
	config    *config.Config
	templates map[string]*template.Template
	users     *services.UserService
}

func NewAuthHandler(cfg *config.Config, templates map[string]*template.Template, users *services.UserService) *AuthHandler {
	return &AuthHandler{
		config:    cfg,
		templates: templates,
		users:     users,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Error": r.URL.Query().Get("error"),
	}
	h.templates["login"].ExecuteTemplate(w, "base", data)
}

// Login provisions the caller through CreateOrUpdateUser and issues the
// session cookie. There is no separate registration: a first sign-in
// creates the user, a returning one refreshes name and login stamp. The
// upstream identity provider is expected to have verified the email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	displayName := strings.TrimSpace(r.FormValue("display_name"))

	if email == "" || !strings.Contains(email, "@") {
		http.Redirect(w, r, "/login?error=A+valid+email+is+required", http.StatusSeeOther)
		return
	}
	if displayName == "" {
		displayName = email
	}

	user, err := h.users.CreateOrUpdateUser(r.Context(), email, displayName)
	if err != nil {
		http.Error(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}

	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		http.Error(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
	})

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
