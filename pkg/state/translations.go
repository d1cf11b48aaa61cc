package state

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// TranslationStatus enumerates translation job states.
type TranslationStatus string

const (
	StatusPending    TranslationStatus = "pending"
	StatusInProgress TranslationStatus = "inprogress"
	StatusSuccess    TranslationStatus = "success"
	StatusFailed     TranslationStatus = "failed"
)

// TranslationJob is a Model Derivative job record, keyed by input URN.
type TranslationJob struct {
	URN       string            `json:"urn"`
	Status    TranslationStatus `json:"status"`
	Progress  string            `json:"progress"`
	CreatedAt int64             `json:"createdAt"`
}

// TranslationStore tracks translation jobs by URN.
type TranslationStore struct {
	mu   sync.RWMutex
	jobs map[string]TranslationJob
}

// NewTranslationStore creates an empty job store.
func NewTranslationStore() *TranslationStore {
	return &TranslationStore{jobs: make(map[string]TranslationJob)}
}

// Create registers a pending job for a URN. Re-submitting a URN resets its
// job to pending.
func (s *TranslationStore) Create(urn string) TranslationJob {
	job := TranslationJob{
		URN:       urn,
		Status:    StatusPending,
		Progress:  "0%",
		CreatedAt: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	s.jobs[urn] = job
	s.mu.Unlock()
	return job
}

// Get returns a job by URN.
func (s *TranslationStore) Get(urn string) (TranslationJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[urn]
	return job, ok
}

// UpdateStatus sets a job's status and progress atomically, reporting
// whether the job existed.
func (s *TranslationStore) UpdateStatus(urn string, status TranslationStatus, progress string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[urn]
	if !ok {
		return false
	}
	job.Status = status
	job.Progress = progress
	s.jobs[urn] = job
	return true
}

// Advance moves a job one step through its simulated lifecycle:
// pending -> inprogress at 25%, then +25% per step until the job completes
// with status success and progress "complete".
func (s *TranslationStore) Advance(urn string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked(urn)
}

// AdvanceAll steps every non-terminal job. Driven by the progression ticker
// in stateful mode.
func (s *TranslationStore) AdvanceAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for urn := range s.jobs {
		s.advanceLocked(urn)
	}
}

func (s *TranslationStore) advanceLocked(urn string) {
	job, ok := s.jobs[urn]
	if !ok {
		return
	}

	switch job.Status {
	case StatusPending:
		job.Status = StatusInProgress
		job.Progress = "25%"
	case StatusInProgress:
		progress, err := strconv.Atoi(strings.TrimSuffix(job.Progress, "%"))
		if err != nil {
			progress = 25
		}
		if progress < 100 {
			job.Progress = strconv.Itoa(progress+25) + "%"
		} else {
			job.Status = StatusSuccess
			job.Progress = "complete"
		}
	default:
		return
	}

	s.jobs[urn] = job
}
