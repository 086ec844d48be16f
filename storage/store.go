// Package storage persists finished extraction runs so slides can be listed
// and re-rendered without reprocessing the video.
package storage

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"videoSlides/config"
	"videoSlides/core"
)

// Store abstracts the run storage backend.
type Store interface {
	SaveRun(result core.SelectionResult) error
	GetRun(jobID string) (core.SelectionResult, error)
	ListRuns() ([]RunInfo, error)
	Close() error
}

type RunInfo struct {
	JobID       string    `json:"job_id"`
	VideoRef    string    `json:"video_ref"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// InitStore selects a backend from the STORE env (memory, sqlite,
// postgres). Any backend that fails to initialize falls back to the memory
// store with a warning, never an error.
func InitStore() Store {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Warning: failed to load config (%v), using memory store\n", err)
		return NewMemoryStore()
	}

	switch strings.ToLower(strings.TrimSpace(os.Getenv("STORE"))) {
	case "sqlite":
		s, err := NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			fmt.Printf("Warning: failed to initialize SQLite store (%v), falling back to memory store\n", err)
			return NewMemoryStore()
		}
		return s
	case "postgres":
		s, err := NewPostgresStore(cfg.PostgresURL)
		if err != nil {
			fmt.Printf("Warning: failed to initialize Postgres store (%v), falling back to memory store\n", err)
			return NewMemoryStore()
		}
		return s
	default:
		return NewMemoryStore()
	}
}

// ---------------- Memory implementation (kept for fallback) ----------------

type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]memoryRun
}

type memoryRun struct {
	result    core.SelectionResult
	createdAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]memoryRun)}
}

func (s *MemoryStore) SaveRun(result core.SelectionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[result.JobID] = memoryRun{result: result, createdAt: time.Now()}
	return nil
}

func (s *MemoryStore) GetRun(jobID string) (core.SelectionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[jobID]
	if !ok {
		return core.SelectionResult{}, fmt.Errorf("run %s not found", jobID)
	}
	return run.result, nil
}

func (s *MemoryStore) ListRuns() ([]RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]RunInfo, 0, len(s.runs))
	for id, run := range s.runs {
		infos = append(infos, RunInfo{
			JobID:       id,
			VideoRef:    run.result.VideoRef,
			RecordCount: len(run.result.Records),
			CreatedAt:   run.createdAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.Before(infos[j].CreatedAt) })
	return infos, nil
}

func (s *MemoryStore) Close() error { return nil }
