package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Status(http.StatusOK).
		BodyHTML("<p>test</p>").
		Write(w)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "<p>test</p>" {
		t.Errorf("Body = %q, want %q", w.Body.String(), "<p>test</p>")
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Header().Get("HX-Trigger") != "" {
		t.Error("HX-Trigger should not be set without triggers")
	}
}

func TestHTMXResponseBuilder_Triggers(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerLifeEventExported("employment_data.json").
		TriggerFormReset().
		TriggerSuccessNotification("File created").
		Write(w)

	trigger := w.Header().Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("HX-Trigger header not set")
	}

	expectedParts := []string{
		`"life-event:exported"`,
		`"filename":"employment_data.json"`,
		`"form:reset"`,
		`"show-notification"`,
		`"type":"success"`,
		`"message":"File created"`,
	}
	for _, part := range expectedParts {
		if !strings.Contains(trigger, part) {
			t.Errorf("HX-Trigger missing %q: %s", part, trigger)
		}
	}
}

func TestHTMXResponseBuilder_CustomHeader(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Header("X-Custom", "value").
		Write(w)

	if w.Header().Get("X-Custom") != "value" {
		t.Errorf("X-Custom = %q, want %q", w.Header().Get("X-Custom"), "value")
	}
}

func TestHTMXResponseBuilder_SwapOverrides(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Retarget("#life-event-slot").
		Reswap("innerHTML").
		Write(w)

	if got := w.Header().Get("HX-Retarget"); got != "#life-event-slot" {
		t.Errorf("HX-Retarget = %q", got)
	}
	if got := w.Header().Get("HX-Reswap"); got != "innerHTML" {
		t.Errorf("HX-Reswap = %q", got)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		builder *HTMXResponseBuilder
		code    int
	}{
		{"bad request", BadRequestError("Invalid request format"), http.StatusBadRequest},
		{"internal", InternalServerError("The file could not be created"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)
			if w.Code != tt.code {
				t.Errorf("Status = %d, want %d", w.Code, tt.code)
			}
			if !strings.Contains(w.Body.String(), `class="error"`) {
				t.Errorf("Body = %q, want error div", w.Body.String())
			}
			if !strings.Contains(w.Header().Get("HX-Trigger"), `"type":"error"`) {
				t.Errorf("HX-Trigger = %q, want error notification", w.Header().Get("HX-Trigger"))
			}
		})
	}
}

func TestErrorResponse_EscapesMessage(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(http.StatusBadRequest, "<script>alert(1)</script>").Write(w)

	if strings.Contains(w.Body.String(), "<script>") {
		t.Errorf("Body not escaped: %q", w.Body.String())
	}
}
