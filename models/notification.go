package models

// NotificationPayload is the asynq task payload for post-decision fanout.
// Dispatched after a booking decision commits; delivery failure never rolls
// back the decision itself.
type NotificationPayload struct {
	UserID    string            `json:"userId"`
	Email     string            `json:"email"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	EmailHTML string            `json:"emailHtml,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}
