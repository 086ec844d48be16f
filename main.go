package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"videoSlides/config"
	"videoSlides/storage"
)

var globalStore storage.Store

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}

	globalStore = storage.InitStore()
	backend := os.Getenv("STORE")
	if backend == "" {
		backend = "memory"
	}
	log.Printf("Run store initialized: %s", backend)

	http.HandleFunc("/process", processHandler)
	http.HandleFunc("/runs", runsHandler)
	http.HandleFunc("/health", healthHandler)

	defer func() {
		if globalStore != nil {
			globalStore.Close()
		}
	}()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	log.Printf("Server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func runsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if jobID := r.URL.Query().Get("job_id"); jobID != "" {
		result, err := globalStore.GetRun(jobID)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}
	runs, err := globalStore.ListRuns()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "write json error: %v", err)
	}
}
