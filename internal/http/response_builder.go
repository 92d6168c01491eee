// Package http provides HTTP server and handler implementations.
//
// This file builds HTMX responses: the HX-Trigger events the page listens
// to, the swap overrides and the HTML error fragments.

package http

import (
	"html/template"
	"net/http"

	json "github.com/goccy/go-json"
)

// Event names dispatched to the page through HX-Trigger.
const (
	EventLifeEventExported = "life-event:exported"
	EventFormReset         = "form:reset"
	EventShowNotification  = "show-notification"
)

// Notification display times in milliseconds.
const (
	successNotificationMs = 3000
	errorNotificationMs   = 5000
)

// HTMXResponseBuilder collects status, headers, triggers and body for one
// response and writes them in the order net/http requires.
type HTMXResponseBuilder struct {
	statusCode int
	headers    http.Header
	triggers   map[string]any
	body       []byte
}

// NewHTMXResponse starts a 200 response with no triggers.
func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		statusCode: http.StatusOK,
		headers:    http.Header{},
		triggers:   map[string]any{},
	}
}

// Status sets the HTTP status code.
func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.statusCode = code
	return b
}

// Header sets a response header.
func (b *HTMXResponseBuilder) Header(name, value string) *HTMXResponseBuilder {
	b.headers.Set(name, value)
	return b
}

// Trigger adds an event to HX-Trigger. A later call with the same name wins.
func (b *HTMXResponseBuilder) Trigger(name string, detail any) *HTMXResponseBuilder {
	b.triggers[name] = detail
	return b
}

// TriggerLifeEventExported tells the page which file was just created.
func (b *HTMXResponseBuilder) TriggerLifeEventExported(filename string) *HTMXResponseBuilder {
	return b.Trigger(EventLifeEventExported, map[string]string{"filename": filename})
}

// TriggerFormReset tells the page the form was cleared.
func (b *HTMXResponseBuilder) TriggerFormReset() *HTMXResponseBuilder {
	return b.Trigger(EventFormReset, struct{}{})
}

// NotificationType selects the style of a show-notification event.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// TriggerNotification asks the page to show message for durationMs.
func (b *HTMXResponseBuilder) TriggerNotification(kind NotificationType, message string, durationMs int) *HTMXResponseBuilder {
	return b.Trigger(EventShowNotification, map[string]any{
		"type":     string(kind),
		"message":  message,
		"duration": durationMs,
	})
}

func (b *HTMXResponseBuilder) TriggerSuccessNotification(message string) *HTMXResponseBuilder {
	return b.TriggerNotification(NotificationSuccess, message, successNotificationMs)
}

func (b *HTMXResponseBuilder) TriggerErrorNotification(message string) *HTMXResponseBuilder {
	return b.TriggerNotification(NotificationError, message, errorNotificationMs)
}

// Reswap overrides the hx-swap of the element that issued the request.
func (b *HTMXResponseBuilder) Reswap(strategy string) *HTMXResponseBuilder {
	return b.Header("HX-Reswap", strategy)
}

// Retarget overrides the hx-target of the element that issued the request.
func (b *HTMXResponseBuilder) Retarget(selector string) *HTMXResponseBuilder {
	return b.Header("HX-Retarget", selector)
}

// BodyHTML sets an HTML body.
func (b *HTMXResponseBuilder) BodyHTML(html string) *HTMXResponseBuilder {
	b.headers.Set("Content-Type", "text/html; charset=utf-8")
	b.body = []byte(html)
	return b
}

// Write sends headers, HX-Trigger, status and body.
func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) {
	h := w.Header()
	for name, values := range b.headers {
		h[name] = values
	}
	if len(b.triggers) > 0 {
		if encoded, err := json.Marshal(b.triggers); err == nil {
			h.Set("HX-Trigger", string(encoded))
		}
	}

	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// ErrorResponse is an escaped error fragment plus an error notification.
func ErrorResponse(statusCode int, message string) *HTMXResponseBuilder {
	return NewHTMXResponse().
		Status(statusCode).
		TriggerErrorNotification(message).
		BodyHTML(`<div class="error" role="alert">` + template.HTMLEscapeString(message) + `</div>`)
}

func BadRequestError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

func InternalServerError(message string) *HTMXResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}
