package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/wezone/horario-semanal/internal/app"
)

//go:embed static/*
var staticFiles embed.FS

//go:embed static/index.html
var indexHTML []byte

func main() {
	// Parse flags
	port := flag.Int("port", 8080, "Port to listen on")
	configRef := flag.String("config", app.DefaultConfigFile, "Path or URL of the schedule list document")
	timeout := flag.Duration("timeout", app.DefaultFetchTimeout, "Timeout for fetching schedule documents")
	flag.Parse()

	// Relative schedule references resolve against the config document's location
	fetcher := app.NewDocFetcher(*timeout)
	ref := *configRef
	if app.IsHTTPRef(ref) {
		if idx := strings.LastIndex(ref, "/"); idx >= 0 {
			fetcher.BaseURL = ref[:idx+1]
		}
	} else {
		fetcher.BaseDir = filepath.Dir(ref)
		ref = filepath.Base(ref)
	}

	store := app.NewStore(fetcher)
	view := app.NewViewState()

	// A failed configuration load is not fatal to the process: the server
	// starts and serves the user-visible error state instead.
	if err := store.LoadSources(context.Background(), ref); err != nil {
		log.Printf("Startup load failed: %v", err)
	} else if failed := store.Failed(); len(failed) > 0 {
		log.Printf("Loaded %d schedule source(s), %d failed", len(store.Sources()), len(failed))
	} else {
		log.Printf("Loaded %d schedule source(s)", len(store.Sources()))
	}

	ctrl, err := app.NewController(store, view, indexHTML)
	if err != nil {
		log.Fatalf("Failed to parse index template: %v", err)
	}

	// Setup routes
	http.HandleFunc("/", ctrl.ServeIndex)
	http.HandleFunc("/api/config", ctrl.GetConfig)
	http.HandleFunc("/api/select", ctrl.HandleSelect)
	http.HandleFunc("/api/view", ctrl.HandleView)
	http.HandleFunc("/api/schedule", ctrl.HandleSchedule)
	http.HandleFunc("/api/download", ctrl.HandleDownload)
	http.HandleFunc("/api/subscribe/", ctrl.HandleSubscribe)

	// Serve static files
	http.Handle("/static/", http.FileServer(http.FS(staticFiles)))

	log.Printf("Starting horario-semanal on http://localhost:%d", *port)
	log.Printf("Schedule config: %s", *configRef)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", *port), nil); err != nil {
		log.Fatal(err)
	}
}
