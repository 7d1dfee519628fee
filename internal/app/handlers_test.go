package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// testIndexHTML mirrors the structure of the embedded page shell.
const testIndexHTML = `<header>
{{- range .Sources}}<option value="{{.Ref}}">{{.Label}}</option>{{end}}
{{- range .Modes}}<button class="mode-btn{{if .Active}} active{{end}}">{{.Label}}</button>{{end}}
</header>
<main id="content">
{{- if .Error}}<div class="schedule-view"><p class="load-error">{{.Error}}</p></div>
{{- else}}{{.Content}}{{end}}
</main>`

func newTestController(t *testing.T, docs map[string]string) *Controller {
	t.Helper()
	store := NewStore(&mapFetcher{docs: docs})
	// A config failure is part of several scenarios; the error state is
	// recorded in the store either way.
	_ = store.LoadSources(context.Background(), testConfigRef)

	ctrl, err := NewController(store, NewViewState(), []byte(testIndexHTML))
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return ctrl
}

func postForm(handler http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestServeIndexRendersDefault(t *testing.T) {
	ctrl := newTestController(t, twoSourceDocs())

	w := httptest.NewRecorder()
	ctrl.ServeIndex(w, httptest.NewRequest(http.MethodGet, "/", nil))
	body := w.Body.String()

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	// Selector options in config order
	a := strings.Index(body, "Sala A")
	b := strings.Index(body, "Sala B")
	if a < 0 || b < 0 || b < a {
		t.Errorf("Selector options missing or out of order")
	}
	// First source rendered in table mode by default
	if !strings.Contains(body, "<table") {
		t.Error("Default view must be the table presentation")
	}
	if !strings.Contains(body, "CrossFit") {
		t.Error("First source's data must be rendered by default")
	}
	if !strings.Contains(body, `class="mode-btn active">Tabla</button>`) {
		t.Error("Table mode button must be marked active")
	}
}

func TestServeIndexConfigFailure(t *testing.T) {
	ctrl := newTestController(t, map[string]string{})

	w := httptest.NewRecorder()
	ctrl.ServeIndex(w, httptest.NewRequest(http.MethodGet, "/", nil))
	body := w.Body.String()

	if !strings.Contains(body, "No se pudo cargar la configuración de horarios") {
		t.Error("Expected the Spanish error message in the content container")
	}
	if strings.Contains(body, "<option") {
		t.Error("No selector options may be populated on a config failure")
	}
	if strings.Contains(body, "<table") {
		t.Error("Nothing may be rendered on a config failure")
	}
}

func TestServeIndexErrorLanguageNegotiation(t *testing.T) {
	ctrl := newTestController(t, map[string]string{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	w := httptest.NewRecorder()
	ctrl.ServeIndex(w, req)

	if !strings.Contains(w.Body.String(), "Could not load the schedule configuration") {
		t.Error("Expected the English error message for an English Accept-Language")
	}
}

func TestHandleViewSwitch(t *testing.T) {
	ctrl := newTestController(t, twoSourceDocs())

	w := postForm(ctrl.HandleView, "/api/view", url.Values{"mode": {"calendar"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()

	// Full replacement: no leftover table element, calendar grid present.
	if strings.Contains(body, "<table") {
		t.Error("Calendar fragment must not contain a table element")
	}
	if !strings.Contains(body, "calendar-grid") {
		t.Error("Expected the calendar day-card grid")
	}
	if ctrl.View.Current() != ModeCalendar {
		t.Errorf("View state not switched, got %s", ctrl.View.Current())
	}

	// Switching to the active mode again is an identical redraw.
	again := postForm(ctrl.HandleView, "/api/view", url.Values{"mode": {"calendar"}})
	if again.Body.String() != body {
		t.Error("Repeated switch to the same mode produced different output")
	}
}

func TestHandleViewRejectsBadInput(t *testing.T) {
	ctrl := newTestController(t, twoSourceDocs())

	w := httptest.NewRecorder()
	ctrl.HandleView(w, httptest.NewRequest(http.MethodGet, "/api/view", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405 for GET, got %d", w.Code)
	}

	w = postForm(ctrl.HandleView, "/api/view", url.Values{"mode": {"grid"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for a bad mode, got %d", w.Code)
	}
}

func TestHandleSelect(t *testing.T) {
	ctrl := newTestController(t, twoSourceDocs())

	w := postForm(ctrl.HandleSelect, "/api/select", url.Values{"ref": {"sala-b.json"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Pulse") {
		t.Error("Fragment must show the newly selected schedule")
	}

	w = postForm(ctrl.HandleSelect, "/api/select", url.Values{"ref": {"nope.json"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for an unknown ref, got %d", w.Code)
	}
}

func TestHandleSelectFailureLeavesViewIntact(t *testing.T) {
	docs := twoSourceDocs()
	ctrl := newTestController(t, docs)
	delete(docs, "sala-b.json")

	w := postForm(ctrl.HandleSelect, "/api/select", url.Values{"ref": {"sala-b.json"}})
	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502 for a failed fetch, got %d", w.Code)
	}

	// The previous schedule is still served.
	w2 := httptest.NewRecorder()
	ctrl.ServeIndex(w2, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(w2.Body.String(), "CrossFit") {
		t.Error("A failed select must not corrupt the active schedule")
	}
}

func TestGetConfig(t *testing.T) {
	docs := twoSourceDocs()
	delete(docs, "sala-b.json")
	ctrl := newTestController(t, docs)

	w := httptest.NewRecorder()
	ctrl.GetConfig(w, httptest.NewRequest(http.MethodGet, "/api/config", nil))

	var cfg struct {
		Sources []ScheduleSource `json:"sources"`
		Failed  []string         `json:"failed"`
		Active  string           `json:"active"`
		Mode    string           `json:"mode"`
	}
	if err := json.NewDecoder(w.Body).Decode(&cfg); err != nil {
		t.Fatalf("Failed to decode config: %v", err)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Ref != "sala-a.json" {
		t.Errorf("Unexpected sources: %+v", cfg.Sources)
	}
	if len(cfg.Failed) != 1 || cfg.Failed[0] != "sala-b.json" {
		t.Errorf("Failed sources not surfaced: %v", cfg.Failed)
	}
	if cfg.Active != "sala-a.json" || cfg.Mode != "table" {
		t.Errorf("Unexpected active state: %+v", cfg)
	}
}

func TestHandleSchedule(t *testing.T) {
	ctrl := newTestController(t, twoSourceDocs())

	w := httptest.NewRecorder()
	ctrl.HandleSchedule(w, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"class_name":"CrossFit"`) {
		t.Errorf("Schedule JSON missing class data: %s", w.Body.String())
	}
}

func TestHandleScheduleNoActive(t *testing.T) {
	ctrl := newTestController(t, map[string]string{})

	w := httptest.NewRecorder()
	ctrl.HandleSchedule(w, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 before the first load, got %d", w.Code)
	}
}
