package app

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"
)

// Controller owns the store and the view state and wires user input to their
// mutators. It is the only writer of the content container: every successful
// mutation responds with exactly one freshly rendered fragment, and a failed
// load never triggers a render.
type Controller struct {
	Store *Store
	View  *ViewState
	Index *template.Template
}

// NewController parses the embedded page shell and wires it to the given
// store and view state.
func NewController(store *Store, view *ViewState, indexHTML []byte) (*Controller, error) {
	tmpl, err := template.New("index").Parse(string(indexHTML))
	if err != nil {
		return nil, err
	}
	return &Controller{Store: store, View: view, Index: tmpl}, nil
}

// modeButton feeds one mode-switch control in the page shell.
type modeButton struct {
	Mode   string
	Label  string
	Active bool
}

// indexData feeds the embedded page shell.
type indexData struct {
	Sources   []ScheduleSource
	ActiveRef string
	Modes     []modeButton
	Content   template.HTML
	Error     string
}

// ServeIndex serves the viewer page with the current state already rendered.
// When the startup configuration load failed, the content container carries
// the user-visible error message instead and the selector stays empty.
func (c *Controller) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Sources:   c.Store.Sources(),
		ActiveRef: c.Store.ActiveRef(),
	}

	current := c.View.Current()
	for _, mode := range []PresentationMode{ModeTable, ModeList, ModeCalendar} {
		data.Modes = append(data.Modes, modeButton{
			Mode:   string(mode),
			Label:  ModeLabels[mode],
			Active: mode == current,
		})
	}

	if c.Store.LoadError() != nil {
		data.Error = ConfigErrorMessage(r.Header.Get("Accept-Language"))
	} else {
		data.Content = template.HTML(RenderHTML(Render(c.Store.Active(), current)))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Index.Execute(w, data); err != nil {
		log.Printf("Error writing index HTML: %v", err)
	}
}

// GetConfig returns the selector configuration: sources in config order, the
// refs that failed during the bulk load, and the active source and mode.
func (c *Controller) GetConfig(w http.ResponseWriter, r *http.Request) {
	config := map[string]interface{}{
		"sources": c.Store.Sources(),
		"failed":  sortedRefs(c.Store.Failed()),
		"active":  c.Store.ActiveRef(),
		"mode":    c.View.Current(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(config); err != nil {
		log.Printf("Error encoding config: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleSelect switches the active schedule source and responds with the
// re-rendered container. A failed fetch leaves the previous schedule active
// and renders nothing; a superseded selection is dropped silently.
func (c *Controller) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	ref := r.FormValue("ref")
	if _, err := c.Store.SelectSource(r.Context(), ref); err != nil {
		switch {
		case errors.Is(err, ErrStaleSelection):
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, ErrUnknownSourceRef):
			http.Error(w, ErrUnknownSource, http.StatusNotFound)
		default:
			log.Printf("Error selecting schedule %s: %v", ref, err)
			http.Error(w, ErrScheduleUnavailable, http.StatusBadGateway)
		}
		return
	}

	c.writeFragment(w)
}

// HandleView switches the presentation mode and responds with the re-rendered
// container. Switching to the already-active mode still redraws.
func (c *Controller) HandleView(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	mode, ok := ParseMode(r.FormValue("mode"))
	if !ok {
		http.Error(w, ErrInvalidMode, http.StatusBadRequest)
		return
	}

	c.View.SwitchTo(mode)
	c.writeFragment(w)
}

// writeFragment renders the current state once and writes the complete
// container subtree. Clients always swap the whole fragment.
func (c *Controller) writeFragment(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := WriteHTML(w, Render(c.Store.Active(), c.View.Current())); err != nil {
		log.Printf("Error writing fragment: %v", err)
	}
}

// HandleSchedule returns the active schedule document as JSON.
func (c *Controller) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := c.Store.Active()
	if schedule == nil {
		http.Error(w, ErrNoActiveSchedule, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(schedule); err != nil {
		log.Printf("Error encoding schedule: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}

// HandleDownload handles export downloads in ICS, CSV or JSON format
// Query params: source (optional, defaults to the active schedule), format
func (c *Controller) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("source")
	format := r.URL.Query().Get("format")

	schedule := c.Store.Schedule(ref)
	if schedule == nil {
		http.Error(w, ErrUnknownSource, http.StatusNotFound)
		return
	}

	switch format {
	case "ics":
		GenerateICS(w, schedule, time.Now())
	case "csv":
		GenerateCSV(w, schedule)
	case "json":
		GenerateJSON(w, schedule)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe serves an ICS subscription feed for one schedule source.
// URL: /api/subscribe/{ref}
func (c *Controller) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Path[len("/api/subscribe/"):]

	schedule := c.Store.Schedule(ref)
	if schedule == nil {
		http.Error(w, ErrUnknownSource, http.StatusNotFound)
		return
	}

	GenerateSubscriptionICS(w, schedule, time.Now())
}
