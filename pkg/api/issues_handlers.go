package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mockaps/mockaps/pkg/httputil"
)

const defaultIssueTitle = "Untitled Issue"

// listIssues handles GET /construction/issues/v1/projects/{project_id}/issues.
func (s *Server) listIssues(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, map[string]interface{}{"data": []interface{}{}})
		return
	}

	projectID := httputil.GetPathVars(r)["project_id"]
	httputil.WriteSuccess(w, map[string]interface{}{"data": s.state.Issues.List(projectID)})
}

// createIssue handles POST /construction/issues/v1/projects/{project_id}/issues.
func (s *Server) createIssue(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteCreated(w, map[string]interface{}{
			"data": map[string]interface{}{
				"id":     "mock-issue-id",
				"title":  "Mock Issue",
				"status": "open",
			},
		})
		return
	}

	var req createIssueRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	if req.Title == "" {
		req.Title = defaultIssueTitle
	}

	projectID := httputil.GetPathVars(r)["project_id"]
	issue := s.state.Issues.Create(projectID, req.Title, req.Description)
	s.log.WithFields(logrus.Fields{
		"project": projectID,
		"issue":   issue.ID,
	}).Debug("Created issue")

	httputil.WriteCreated(w, map[string]interface{}{"data": issue})
}
