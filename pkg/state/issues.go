package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// IssueInfo is an ACC issue record, scoped under its project.
type IssueInfo struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"createdAt"`
}

// IssueStore groups issues under their project id. Issue ids are always
// generated; callers never control them.
type IssueStore struct {
	mu sync.RWMutex
	// project_id -> issue_id -> issue
	issues map[string]map[string]IssueInfo
}

// NewIssueStore creates an empty issue store.
func NewIssueStore() *IssueStore {
	return &IssueStore{issues: make(map[string]map[string]IssueInfo)}
}

// Create inserts a new issue with a generated id, status "open", and a
// synthesized creation timestamp.
func (s *IssueStore) Create(projectID, title, description string) IssueInfo {
	issue := IssueInfo{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      "open",
		CreatedAt:   time.Now().UnixMilli(),
	}

	s.mu.Lock()
	project, ok := s.issues[projectID]
	if !ok {
		project = make(map[string]IssueInfo)
		s.issues[projectID] = project
	}
	project[issue.ID] = issue
	s.mu.Unlock()
	return issue
}

// Get returns one issue.
func (s *IssueStore) Get(projectID, issueID string) (IssueInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.issues[projectID]
	if !ok {
		return IssueInfo{}, false
	}
	issue, ok := project[issueID]
	return issue, ok
}

// List returns a snapshot of a project's issues.
func (s *IssueStore) List(projectID string) []IssueInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Always a slice, never nil: listings marshal as JSON arrays even
	// when the project has no issues.
	project := s.issues[projectID]
	out := make([]IssueInfo, 0, len(project))
	for _, i := range project {
		out = append(out, i)
	}
	return out
}

// UpdateStatus sets an issue's status, reporting whether the issue existed.
func (s *IssueStore) UpdateStatus(projectID, issueID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.issues[projectID]
	if !ok {
		return false
	}
	issue, ok := project[issueID]
	if !ok {
		return false
	}
	issue.Status = status
	project[issueID] = issue
	return true
}
