package state

import (
	"sync"
)

// DefaultHubID and DefaultProjectID identify the seeded hub/project pair
// every fresh store contains.
const (
	DefaultHubID     = "b.default-hub"
	DefaultProjectID = "b.default-project"
)

// HubInfo is a Data Management hub record.
type HubInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// ProjectInfo is a Data Management project record.
type ProjectInfo struct {
	ID    string `json:"id"`
	HubID string `json:"hubId"`
	Name  string `json:"name"`
}

// ProjectStore holds hubs and their projects. The hub -> project ids index
// preserves insertion order and is kept consistent with the project table
// under the same lock.
type ProjectStore struct {
	mu          sync.RWMutex
	hubs        map[string]HubInfo
	projects    map[string]ProjectInfo
	hubProjects map[string][]string
}

// NewProjectStore creates a store seeded with the default hub and project.
func NewProjectStore() *ProjectStore {
	s := &ProjectStore{
		hubs:        make(map[string]HubInfo),
		projects:    make(map[string]ProjectInfo),
		hubProjects: make(map[string][]string),
	}

	s.hubs[DefaultHubID] = HubInfo{
		ID:     DefaultHubID,
		Name:   "Default Hub",
		Region: "US",
	}
	s.projects[DefaultProjectID] = ProjectInfo{
		ID:    DefaultProjectID,
		HubID: DefaultHubID,
		Name:  "Default Project",
	}
	s.hubProjects[DefaultHubID] = []string{DefaultProjectID}

	return s
}

// ListHubs returns a snapshot of all hubs.
func (s *ProjectStore) ListHubs() []HubInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]HubInfo, 0, len(s.hubs))
	for _, h := range s.hubs {
		out = append(out, h)
	}
	return out
}

// GetHub returns a hub by id.
func (s *ProjectStore) GetHub(hubID string) (HubInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hub, ok := s.hubs[hubID]
	return hub, ok
}

// ListProjects returns a hub's projects in insertion order.
func (s *ProjectStore) ListProjects(hubID string) []ProjectInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.hubProjects[hubID]
	out := make([]ProjectInfo, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// GetProject returns a project by id.
func (s *ProjectStore) GetProject(projectID string) (ProjectInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[projectID]
	return project, ok
}

// AddProject inserts a project under a hub, creating the hub membership
// entry in the same critical section as the project record.
func (s *ProjectStore) AddProject(hubID, projectID, name string) ProjectInfo {
	project := ProjectInfo{ID: projectID, HubID: hubID, Name: name}

	s.mu.Lock()
	s.projects[projectID] = project
	s.hubProjects[hubID] = append(s.hubProjects[hubID], projectID)
	s.mu.Unlock()
	return project
}
