package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/insurancepro-api/internal/application/notification"
	"github.com/insurancepro-api/internal/transport/http/middleware"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	svc    notification.Service
	access ScopeResolver
}

func NewNotificationHandler(svc notification.Service, access ScopeResolver) *NotificationHandler {
	return &NotificationHandler{svc: svc, access: access}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope, err := h.access.Resolve(middleware.Token(r, q.Get("token")), q.Get("email"))
	if err != nil {
		if !scopeError(w, err) {
			httpError(w, err, "Notification")
		}
		return
	}
	inbox, err := h.svc.List(r.Context(), scope)
	if err != nil {
		httpError(w, err, "Notification")
		return
	}
	writeJSON(w, http.StatusOK, NotificationsEnvelope{
		Notifications: inbox.Notifications,
		UnreadCount:   inbox.UnreadCount,
		Count:         len(inbox.Notifications),
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAsRead(r.Context(), chi.URLParam(r, "notificationId"))
	if err != nil {
		httpError(w, err, "Notification")
		return
	}
	writeJSON(w, http.StatusOK, NotificationEnvelope{Message: "Notification marked as read", Notification: n})
}

type markAllRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	var req markAllRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	scope, err := h.access.Resolve(middleware.Token(r, req.Token), req.Email)
	if err != nil {
		if !scopeError(w, err) {
			httpError(w, err, "Notification")
		}
		return
	}
	updated, err := h.svc.MarkAllAsRead(r.Context(), scope)
	if err != nil {
		httpError(w, err, "Notification")
		return
	}
	writeJSON(w, http.StatusOK, MarkAllEnvelope{Message: "All notifications marked as read", Updated: updated})
}
