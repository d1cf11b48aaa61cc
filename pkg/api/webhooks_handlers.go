package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mockaps/mockaps/pkg/httputil"
	"github.com/mockaps/mockaps/pkg/state"
)

const defaultCallbackURL = "https://example.com/webhook"

// listHooks handles GET /webhooks/v1/systems/{system}/events/{event}/hooks.
// Subscriptions are tenant-scoped by the system segment.
func (s *Server) listHooks(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, map[string]interface{}{"hooks": []interface{}{}})
		return
	}

	system := httputil.GetPathVars(r)["system"]
	hooks := make([]state.WebhookSubscription, 0)
	for _, hook := range s.state.Webhooks.List() {
		if hook.Tenant == system {
			hooks = append(hooks, hook)
		}
	}
	httputil.WriteSuccess(w, map[string]interface{}{"hooks": hooks})
}

// createHook handles POST /webhooks/v1/systems/{system}/events/{event}/hooks.
func (s *Server) createHook(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteCreated(w, map[string]interface{}{
			"hookId": "mock-hook-id",
			"status": "active",
		})
		return
	}

	var req createHookRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		httputil.WriteReason(w, http.StatusBadRequest, "invalid webhook request: %v", err)
		return
	}
	if req.CallbackURL == "" {
		req.CallbackURL = defaultCallbackURL
	}

	system := httputil.GetPathVars(r)["system"]
	hook := s.state.Webhooks.Create(system, req.CallbackURL, state.WebhookScope{
		Folder:  req.Scope.Folder,
		Project: req.Scope.Project,
	})
	s.log.WithFields(logrus.Fields{
		"system": system,
		"hook":   hook.HookID,
	}).Debug("Created webhook subscription")

	httputil.WriteCreated(w, hook)
}

// deleteHook handles DELETE /webhooks/v1/systems/{system}/events/{event}/hooks/{hook_id}.
func (s *Server) deleteHook(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteNoContent(w)
		return
	}

	hookID := httputil.GetPathVars(r)["hook_id"]
	if !s.state.Webhooks.Delete(hookID) {
		httputil.WriteReason(w, http.StatusNotFound, "Hook %s not found", hookID)
		return
	}
	httputil.WriteNoContent(w)
}
