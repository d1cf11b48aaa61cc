package api

import (
	"net/http"

	"github.com/mockaps/mockaps/pkg/httputil"
	"github.com/mockaps/mockaps/pkg/state"
)

// jsonapiEnvelope wraps Data Management payloads in the jsonapi v1.0 shape.
func jsonapiEnvelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"jsonapi": map[string]string{"version": "1.0"},
		"data":    data,
	}
}

func hubResource(hub state.HubInfo) map[string]interface{} {
	return map[string]interface{}{
		"type": "hubs",
		"id":   hub.ID,
		"attributes": map[string]interface{}{
			"name":   hub.Name,
			"region": hub.Region,
		},
	}
}

func projectResource(project state.ProjectInfo) map[string]interface{} {
	return map[string]interface{}{
		"type": "projects",
		"id":   project.ID,
		"attributes": map[string]interface{}{
			"name": project.Name,
		},
	}
}

// listHubs handles GET /project/v1/hubs.
func (s *Server) listHubs(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, jsonapiEnvelope([]interface{}{}))
		return
	}

	hubs := s.state.Projects.ListHubs()
	data := make([]interface{}, 0, len(hubs))
	for _, hub := range hubs {
		data = append(data, hubResource(hub))
	}
	httputil.WriteSuccess(w, jsonapiEnvelope(data))
}

// getHub handles GET /project/v1/hubs/{hub_id}.
func (s *Server) getHub(w http.ResponseWriter, r *http.Request) {
	hubID := httputil.GetPathVars(r)["hub_id"]

	if s.state == nil {
		httputil.WriteJSONAPIError(w, http.StatusNotFound, "Hub not found", "")
		return
	}

	hub, ok := s.state.Projects.GetHub(hubID)
	if !ok {
		httputil.WriteJSONAPIError(w, http.StatusNotFound, "Hub not found", "No hub with id "+hubID)
		return
	}
	httputil.WriteSuccess(w, jsonapiEnvelope(hubResource(hub)))
}

// listHubProjects handles GET /project/v1/hubs/{hub_id}/projects.
func (s *Server) listHubProjects(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, jsonapiEnvelope([]interface{}{}))
		return
	}

	hubID := httputil.GetPathVars(r)["hub_id"]
	if _, ok := s.state.Projects.GetHub(hubID); !ok {
		httputil.WriteJSONAPIError(w, http.StatusNotFound, "Hub not found", "No hub with id "+hubID)
		return
	}

	projects := s.state.Projects.ListProjects(hubID)
	data := make([]interface{}, 0, len(projects))
	for _, project := range projects {
		data = append(data, projectResource(project))
	}
	httputil.WriteSuccess(w, jsonapiEnvelope(data))
}
