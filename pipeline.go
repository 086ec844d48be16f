package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"videoSlides/captions"
	"videoSlides/config"
	"videoSlides/core"
	"videoSlides/frames"
	"videoSlides/media"
	"videoSlides/slides"
	"videoSlides/storage"
)

type ProcessRequest struct {
	URL       string `json:"url,omitempty"`
	VideoPath string `json:"video_path,omitempty"`

	Interval         int      `json:"interval,omitempty"`           // default 30s
	Lang             string   `json:"lang,omitempty"`               // default from config
	CompactText      *bool    `json:"compact_text,omitempty"`       // default true
	MaxCaptionLength int      `json:"max_caption_length,omitempty"` // default 200; huge value disables splitting
	ChangeThreshold  *float64 `json:"change_threshold,omitempty"`   // default 0.6; explicit 0 disables change insertions
	CaptionWindow    float64  `json:"caption_window,omitempty"`     // default interval/2
	ImageQuality     int      `json:"image_quality,omitempty"`      // default from config
	VideoQuality     string   `json:"video_quality,omitempty"`      // best|high|medium|low
	UseWhisper       bool     `json:"use_whisper,omitempty"`
	ForceWhisper     bool     `json:"force_whisper,omitempty"`
}

type ProcessResponse struct {
	JobID    string             `json:"job_id"`
	Message  string             `json:"message"`
	Steps    []Step             `json:"steps"`
	Warnings []string           `json:"warnings,omitempty"`
	Records  []core.FrameRecord `json:"records,omitempty"`
	Slides   string             `json:"slides,omitempty"`
}

type Step struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "completed", "failed", "skipped"
	Error  string `json:"error,omitempty"`
}

func processHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.URL == "" && req.VideoPath == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url or video_path required"})
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp, status := runPipeline(cfg, req, globalStore)
	writeJSON(w, status, resp)
}

// runPipeline executes the whole flow: acquire video, resolve captions,
// extract slides, render, store. Caption-source and store failures degrade
// to warnings; only acquisition and extraction are fatal.
func runPipeline(cfg *config.Config, req ProcessRequest, store storage.Store) (ProcessResponse, int) {
	applyRequestDefaults(cfg, &req)

	resp := ProcessResponse{
		JobID:    uuid.NewString(),
		Steps:    make([]Step, 0),
		Warnings: make([]string, 0),
	}
	jobDir := filepath.Join(cfg.OutputDir, resp.JobID)
	tempDir := filepath.Join(jobDir, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		resp.Message = fmt.Sprintf("failed to create job dir: %v", err)
		return resp, http.StatusInternalServerError
	}

	// Step 1: acquire the video
	videoPath := req.VideoPath
	videoRef := req.VideoPath
	if req.URL != "" {
		videoRef = req.URL
		fmt.Printf("Downloading video: %s\n", req.URL)
		downloaded, err := media.DownloadVideo(req.URL, tempDir, req.VideoQuality)
		if err != nil {
			resp.Steps = append(resp.Steps, Step{Name: "download", Status: "failed", Error: err.Error()})
			resp.Message = "video download failed"
			return resp, http.StatusInternalServerError
		}
		videoPath = downloaded
		resp.Steps = append(resp.Steps, Step{Name: "download", Status: "completed"})
	} else {
		if _, err := os.Stat(videoPath); err != nil {
			resp.Steps = append(resp.Steps, Step{Name: "download", Status: "failed", Error: err.Error()})
			resp.Message = fmt.Sprintf("video file not found: %s", videoPath)
			return resp, http.StatusBadRequest
		}
		resp.Steps = append(resp.Steps, Step{Name: "download", Status: "skipped"})
	}

	// Step 2: resolve captions from the two sources
	corpus := resolveCaptions(cfg, req, videoPath, tempDir, &resp)

	// Step 3: extract slides
	fmt.Println("Starting slide extraction...")
	source, err := frames.Open(videoPath)
	if err != nil {
		resp.Steps = append(resp.Steps, Step{Name: "extract", Status: "failed", Error: err.Error()})
		resp.Message = "failed to open frame source"
		return resp, http.StatusInternalServerError
	}
	extractor := slides.NewExtractor(source, corpus, slides.Options{
		Interval:         req.Interval,
		ChangeThreshold:  *req.ChangeThreshold,
		MaxCaptionLength: req.MaxCaptionLength,
		CompactText:      *req.CompactText,
		CaptionWindow:    req.CaptionWindow,
		ImageQuality:     req.ImageQuality,
		FramesDir:        filepath.Join(jobDir, "frames"),
		Events: func(ev core.Event) {
			log.Printf("[%s] %s t=%.1f %s", resp.JobID, ev.Type, ev.Time, ev.Detail)
		},
	})
	records, err := extractor.Run()
	if err != nil {
		resp.Steps = append(resp.Steps, Step{Name: "extract", Status: "failed", Error: err.Error()})
		resp.Message = "slide extraction failed"
		return resp, http.StatusInternalServerError
	}
	resp.Steps = append(resp.Steps, Step{Name: "extract", Status: "completed"})
	resp.Records = records
	fmt.Printf("Slide extraction completed: %d records\n", len(records))

	result := core.SelectionResult{JobID: resp.JobID, VideoRef: videoRef, Records: records}

	// Step 4: render the slide document
	title := filepath.Base(videoRef)
	if req.URL != "" {
		if id, err := media.ExtractVideoID(req.URL); err == nil {
			title = "YouTube video " + id
		}
	}
	slidesPath := filepath.Join(jobDir, "slides.md")
	if err := slides.RenderMarkdown(result, title, slidesPath); err != nil {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("failed to render slides: %v", err))
		resp.Steps = append(resp.Steps, Step{Name: "render", Status: "failed", Error: err.Error()})
	} else {
		resp.Slides = slidesPath
		resp.Steps = append(resp.Steps, Step{Name: "render", Status: "completed"})
	}

	// Step 5: store the run
	if err := store.SaveRun(result); err != nil {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("failed to store run: %v", err))
		resp.Steps = append(resp.Steps, Step{Name: "store", Status: "failed", Error: err.Error()})
	} else {
		resp.Steps = append(resp.Steps, Step{Name: "store", Status: "completed"})
	}

	resp.Message = fmt.Sprintf("Processing completed. Job ID: %s", resp.JobID)
	if len(resp.Warnings) > 0 {
		resp.Message += " (with warnings)"
	}
	return resp, http.StatusOK
}

// resolveCaptions fetches the native and speech-to-text corpora and
// reconciles them. Every failure path degrades to an empty corpus.
func resolveCaptions(cfg *config.Config, req ProcessRequest, videoPath, tempDir string, resp *ProcessResponse) core.CaptionCorpus {
	var native captions.Provider
	if req.URL != "" {
		native = &captions.NativeProvider{URL: req.URL, Lang: req.Lang, WorkDir: tempDir}
	}

	var whisper captions.Provider
	if req.UseWhisper || req.ForceWhisper {
		if !cfg.HasValidAPI() {
			config.PrintConfigInstructions()
			resp.Warnings = append(resp.Warnings, "API configuration missing, speech-to-text captions skipped")
		} else {
			audioPath, err := media.ExtractAudio(videoPath, tempDir)
			if err != nil {
				resp.Warnings = append(resp.Warnings, fmt.Sprintf("audio extraction failed: %v", err))
			} else if p := captions.NewWhisperProvider(cfg, audioPath); p != nil {
				whisper = p
			}
		}
	}

	if native == nil && whisper == nil {
		resp.Steps = append(resp.Steps, Step{Name: "captions", Status: "skipped", Error: "no caption source available"})
		return core.CaptionCorpus{Source: core.SourceNative, Language: req.Lang}
	}

	corpus := captions.Resolve(native, whisper, req.ForceWhisper, func(ev core.Event) {
		log.Printf("[%s] %s %s", resp.JobID, ev.Type, ev.Detail)
		if ev.Type == core.EventCaptionFallback {
			resp.Warnings = append(resp.Warnings, ev.Detail)
		}
	})
	if corpus.Empty() {
		resp.Warnings = append(resp.Warnings, "no usable captions found, slides will have no text")
		resp.Steps = append(resp.Steps, Step{Name: "captions", Status: "skipped", Error: "empty corpus"})
	} else {
		resp.Steps = append(resp.Steps, Step{Name: "captions", Status: "completed"})
		fmt.Printf("Captions resolved: %s (%d entries)\n", corpus.Source, len(corpus.Entries))
	}
	return corpus
}

func applyRequestDefaults(cfg *config.Config, req *ProcessRequest) {
	if req.Interval <= 0 {
		req.Interval = 30
	}
	if req.Lang == "" {
		req.Lang = cfg.Language
	}
	if req.CompactText == nil {
		v := true
		req.CompactText = &v
	}
	if req.MaxCaptionLength <= 0 {
		req.MaxCaptionLength = 200
	}
	if req.ChangeThreshold == nil {
		v := 0.6
		req.ChangeThreshold = &v
	}
	if req.CaptionWindow <= 0 {
		req.CaptionWindow = float64(req.Interval) / 2
	}
	if req.ImageQuality < 1 || req.ImageQuality > 100 {
		req.ImageQuality = cfg.ImageQuality
	}
	if req.VideoQuality == "" {
		req.VideoQuality = "high"
	}
}
