package http

import (
	"context"
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"lifeevents/internal/core"
	"lifeevents/internal/export"
	"lifeevents/internal/form"
	"lifeevents/internal/log"
)

// formView is what the life_event_form template renders.
type formView struct {
	EmployerName      string
	AnnualGrossIncome string
	StartDate         string
	EndDate           string
	Notes             string
	TotalIncome       string
	Errors            core.FieldErrors
	Message           string
	DownloadName      string
	DownloadURL       template.URL
}

type pageView struct {
	Open bool
	Form formView
}

func newFormView(c *form.Controller) formView {
	ev := c.Event()
	return formView{
		EmployerName:      ev.EmployerName,
		AnnualGrossIncome: ev.AnnualGrossIncome,
		StartDate:         ev.StartDate.InputValue(c.Location()),
		EndDate:           ev.EndDate.InputValue(c.Location()),
		Notes:             ev.NotesValue(),
		TotalIncome:       c.TotalIncome(),
		Errors:            c.Errors(),
	}
}

// withDownload attaches the exported file as a data URL so the page can hand
// it to the browser without a second request.
func (v formView) withDownload(doc export.Document, message string) formView {
	v.Message = message
	v.DownloadName = doc.Filename
	v.DownloadURL = template.URL("data:" + doc.ContentType + ";base64," + base64.StdEncoding.EncodeToString(doc.Body))
	return v
}

func (s *Server) newController(ctx context.Context, sink export.Sink) *form.Controller {
	return form.New(
		form.WithClock(s.now),
		form.WithLocation(s.loc),
		form.WithLogger(requestLogger(ctx, s.logger)),
		form.WithSink(sink),
	)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"uptime":    s.now().Sub(s.started).Round(time.Second).String(),
	})
}

// handleReady runs every registered dependency check.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	checks := map[string]string{"templates": "ok"}

	names := make([]string, 0, len(s.readyChecks))
	for name := range s.readyChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.readyChecks[name](ctx); err != nil {
			checks[name] = "failed: " + err.Error()
			status = "not_ready"
			code = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	writeJSON(w, code, map[string]any{"status": status, "checks": checks})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index.html", pageView{})
}

// handleEdit opens the form with empty fields. HTMX swaps only the form in.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	c := s.newController(r.Context(), nil)
	view := newFormView(c)
	if isHTMX(r) {
		s.render(w, r, http.StatusOK, "life_event_form", view)
		return
	}
	s.render(w, r, http.StatusOK, "index.html", pageView{Open: true, Form: view})
}

// handleProjection recomputes Total Income from the submitted field state.
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	c, ok := s.bindForm(w, r, nil)
	if !ok {
		return
	}
	view := newFormView(c)
	view.TotalIncome = c.Project(r.Context())
	s.render(w, r, http.StatusOK, "total_income", view)
}

// handleSave validates the submitted record and exports it. HTMX callers get
// the form back with the file embedded for download; plain form posts get
// the file itself as an attachment.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	htmx := isHTMX(r)

	primary := export.Sink(NewResponseSink(w))
	if htmx {
		primary = export.SinkFunc(func(context.Context, export.Document) error { return nil })
	}

	c, ok := s.bindForm(w, r, s.exports.WithPrimary(primary))
	if !ok {
		return
	}

	outcome, err := c.Save(r.Context())
	if err != nil {
		s.logError(r.Context(), "Life event export failed", err, log.OpExport)
		if errors.Is(err, errWrittenResponse) {
			return
		}
		InternalServerError("The file could not be created").Write(w)
		return
	}

	view := newFormView(c)
	if !outcome.Exported() {
		if htmx {
			s.renderWith(w, r, formSlotResponse().Status(http.StatusUnprocessableEntity), "life_event_form", view)
			return
		}
		s.render(w, r, http.StatusUnprocessableEntity, "index.html", pageView{Open: true, Form: view})
		return
	}

	if htmx {
		resp := formSlotResponse().
			TriggerLifeEventExported(outcome.Document.Filename).
			TriggerSuccessNotification(outcome.Message)
		s.renderWith(w, r, resp, "life_event_form", view.withDownload(outcome.Document, outcome.Message))
	}
	// Plain posts were answered by the response sink.
}

// handleCancel discards the submitted values and returns an empty form.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	c := s.newController(r.Context(), nil)
	c.Cancel()

	if !isHTMX(r) {
		http.Redirect(w, r, "/life-events/edit", http.StatusSeeOther)
		return
	}
	s.renderWith(w, r, formSlotResponse().TriggerFormReset(), "life_event_form", newFormView(c))
}

// formSlotResponse swaps the returned form into the page slot whichever
// element issued the request.
func formSlotResponse() *HTMXResponseBuilder {
	return NewHTMXResponse().Retarget("#life-event-slot").Reswap("innerHTML")
}

// bindForm parses the request body into a fresh controller. Malformed dates
// are logged and left empty so validation reports them.
func (s *Server) bindForm(w http.ResponseWriter, r *http.Request, sink export.Sink) (*form.Controller, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	values, err := ParseLifeEventForm(r)
	if err != nil {
		s.logError(r.Context(), "Parse form error", err, log.OpParse)
		BadRequestError("Invalid request format").Write(w)
		return nil, false
	}

	c := s.newController(r.Context(), sink)
	if err := c.SetAll(values); err != nil {
		requestLogger(r.Context(), s.logger).WarnContext(r.Context(), "Ignoring malformed field",
			log.FieldError, err,
			log.FieldOperation, log.OpParse)
	}
	return c, true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	s.renderWith(w, r, NewHTMXResponse().Status(status), name, data)
}

func (s *Server) renderWith(w http.ResponseWriter, r *http.Request, resp *HTMXResponseBuilder, name string, data any) {
	html, err := s.execute(name, data)
	if err != nil {
		s.logError(r.Context(), "Template execution failed", err, log.OpRender)
		InternalServerError("Page could not be rendered").Write(w)
		return
	}
	resp.BodyHTML(html).Write(w)
}

func (s *Server) logError(ctx context.Context, msg string, err error, op string) {
	log.NewStructuredLogger(requestLogger(ctx, s.logger)).LogError(ctx, msg, err, op, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
