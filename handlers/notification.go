package handlers

import (
	"html/template"
	"net/http"

	"dashboard/config"
	"dashboard/middleware"
	"dashboard/services"
)

type NotificationHandler struct {
	config        *config.Config
	templates     map[string]*template.Template
	notifications *services.NotificationService
}

func NewNotificationHandler(cfg *config.Config, templates map[string]*template.Template, notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		config:        cfg,
		templates:     templates,
		notifications: notifications,
	}
}

func (h *NotificationHandler) NotificationsPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "1"

	notifications, err := h.notifications.GetUserNotifications(r.Context(), user.ID, unreadOnly)
	if err != nil {
		http.Error(w, "Failed to load notifications", http.StatusInternalServerError)
		return
	}

	unreadCount, err := h.notifications.GetUnreadCount(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "Failed to load notifications", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User":          user,
		"Notifications": notifications,
		"UnreadCount":   unreadCount,
		"UnreadOnly":    unreadOnly,
		"Error":         r.URL.Query().Get("error"),
	}
	h.templates["notifications"].ExecuteTemplate(w, "base", data)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/notifications?error=Invalid+form+data", http.StatusSeeOther)
		return
	}

	notificationID, err := parseID(r.FormValue("id"))
	if err != nil {
		http.Redirect(w, r, "/notifications?error=Invalid+notification", http.StatusSeeOther)
		return
	}

	// Only the owner may mark a notification; someone else's id looks
	// exactly like a missing one.
	notification, err := h.notifications.GetNotificationByID(r.Context(), notificationID)
	if err != nil {
		http.Error(w, "Failed to mark notification", http.StatusInternalServerError)
		return
	}
	if notification == nil || notification.UserID != user.ID {
		http.Redirect(w, r, "/notifications?error=Notification+not+found", http.StatusSeeOther)
		return
	}

	ok, err := h.notifications.MarkAsRead(r.Context(), notificationID)
	if err != nil {
		http.Error(w, "Failed to mark notification", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Redirect(w, r, "/notifications?error=Notification+not+found", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}
