package api

import (
	"encoding/base64"
	"net/http"

	"github.com/mockaps/mockaps/pkg/httputil"
	"github.com/mockaps/mockaps/pkg/state"
)

const defaultOutputFormat = "svf2"

// createTranslationJob handles POST /modelderivative/v2/designdata/job.
func (s *Server) createTranslationJob(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, map[string]interface{}{"result": "success"})
		return
	}

	var req translationJobRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Input.URN == "" {
		httputil.WriteReason(w, http.StatusBadRequest, "input.urn is required")
		return
	}

	format := defaultOutputFormat
	if len(req.Output.Formats) > 0 && req.Output.Formats[0].Type != "" {
		format = req.Output.Formats[0].Type
	}

	job := s.state.Translations.Create(req.Input.URN)
	s.log.WithField("urn", job.URN).Debug("Registered translation job")

	httputil.WriteSuccess(w, map[string]interface{}{
		"result":       "success",
		"urn":          job.URN,
		"acceptedJobs": map[string]interface{}{"type": format},
	})
}

// getManifest handles GET /modelderivative/v2/designdata/{urn}/manifest.
// Callers pass URNs base64-encoded; a URN that does not decode is used
// verbatim.
func (s *Server) getManifest(w http.ResponseWriter, r *http.Request) {
	rawURN := httputil.GetPathVars(r)["urn"]
	urn := decodeURN(rawURN)

	if s.state == nil {
		httputil.WriteSuccess(w, manifestBody(urn, state.TranslationJob{
			URN:      urn,
			Status:   state.StatusPending,
			Progress: "0%",
		}))
		return
	}

	job, ok := s.state.Translations.Get(urn)
	if !ok {
		httputil.WriteReason(w, http.StatusNotFound, "No translation job found for urn %s", urn)
		return
	}
	httputil.WriteSuccess(w, manifestBody(urn, job))
}

func decodeURN(raw string) string {
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(raw); err == nil {
		return string(decoded)
	}
	return raw
}

func manifestBody(urn string, job state.TranslationJob) map[string]interface{} {
	derivatives := []interface{}{}
	if job.Status == state.StatusSuccess {
		derivatives = append(derivatives, map[string]interface{}{
			"status":     "success",
			"progress":   "complete",
			"outputType": defaultOutputFormat,
			"children":   []interface{}{},
		})
	}
	return map[string]interface{}{
		"type":         "manifest",
		"hasThumbnail": "false",
		"urn":          urn,
		"region":       "US",
		"status":       job.Status,
		"progress":     job.Progress,
		"derivatives":  derivatives,
	}
}
