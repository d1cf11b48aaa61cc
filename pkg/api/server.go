package api

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/mockaps/mockaps/pkg/config"
	"github.com/mockaps/mockaps/pkg/httputil"
	"github.com/mockaps/mockaps/pkg/middleware"
	"github.com/mockaps/mockaps/pkg/observability"
	"github.com/mockaps/mockaps/pkg/openapi"
	"github.com/mockaps/mockaps/pkg/state"
)

// Server is the mock API server. It implements http.Handler so it can be
// mounted on any listener; the active router is swapped atomically when the
// spec directory is re-synthesized.
type Server struct {
	cfg      *config.Config
	log      *logrus.Logger
	state    *state.Manager // nil in stateless mode
	metrics  *observability.Metrics
	validate *validator.Validate
	handler  atomic.Value // http.Handler
}

// NewServer parses the configured spec directory, synthesizes the route
// table, and builds the dispatcher. Construction succeeds even when the
// directory holds no valid specs; the server then serves only the fixed
// stateful set.
func NewServer(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	if log == nil {
		log = logrus.New()
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		metrics:  observability.NewMetrics(),
		validate: validator.New(),
	}

	if cfg.Mode == config.ModeStateful {
		s.state = state.NewManager()
		if cfg.StateFile != "" {
			if err := s.state.LoadFromFile(cfg.StateFile); err != nil {
				return nil, fmt.Errorf("failed to load state file: %w", err)
			}
		}
	}

	if err := s.Rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// State exposes the resource stores, nil in stateless mode. Intended for
// tests and embedders that seed or inspect state directly.
func (s *Server) State() *state.Manager {
	return s.state
}

// ServeHTTP dispatches to the currently active router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.Load().(http.Handler).ServeHTTP(w, r)
}

// Rebuild re-parses the spec directory, re-synthesizes the route table,
// and swaps the active router. In-flight requests finish on the router
// they started with. The generic response cache is discarded with the old
// router.
func (s *Server) Rebuild() error {
	docs, err := openapi.ParseDirectory(s.cfg.OpenAPIDir, s.log)
	if err != nil {
		return err
	}
	s.log.WithField("count", len(docs)).Info("Parsed OpenAPI specifications")

	var routes []openapi.RouteDefinition
	for _, d := range docs {
		extracted := openapi.ExtractRoutes(d.Doc)
		s.log.WithFields(logrus.Fields{
			"spec":   d.Name,
			"routes": len(extracted),
		}).Debug("Extracted routes from spec")
		routes = append(routes, extracted...)
	}

	s.handler.Store(s.buildHandler(routes))
	return nil
}

type routeKey struct {
	method  string
	pattern string
}

// buildHandler assembles the router: synthesized routes first, then the
// fixed stateful table under the same duplicate-skip rule, then the
// middleware stack. First registration wins a (method, pattern) collision.
func (s *Server) buildHandler(routes []openapi.RouteDefinition) http.Handler {
	router := mux.NewRouter()
	router.Use(s.metrics.Middleware)

	registered := make(map[routeKey]bool)
	cache := newResponseCache()

	for i := range routes {
		route := routes[i]
		key := routeKey{route.Method, route.Pattern}
		if registered[key] {
			s.log.WithFields(logrus.Fields{
				"method":  route.Method,
				"pattern": route.Pattern,
			}).Debug("Skipping duplicate dynamic route")
			continue
		}
		registered[key] = true
		router.HandleFunc(route.Pattern, s.genericHandler(route, cache)).Methods(route.Method)
	}

	s.registerStatefulRoutes(router, registered)
	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	authStore := (*state.AuthStore)(nil)
	if s.state != nil {
		authStore = s.state.Auth
	}
	auth := middleware.NewAuthMiddleware(authStore)

	var h http.Handler = router
	h = httputil.RecoveryMiddleware(s.log)(h)
	h = httputil.LoggingMiddleware(s.log)(h)
	h = auth.Handler(h)
	h = middleware.CORSMiddleware(h)
	return h
}

// registerStatefulRoutes declares the hand-written endpoint set. Patterns
// use the same snake_case placeholder normalization as synthesized routes
// so duplicate detection is exact.
func (s *Server) registerStatefulRoutes(router *mux.Router, registered map[routeKey]bool) {
	add := func(method, pattern string, handler http.HandlerFunc) {
		key := routeKey{method, pattern}
		if registered[key] {
			s.log.WithFields(logrus.Fields{
				"method":  method,
				"pattern": pattern,
			}).Debug("Skipping hardcoded route (already covered by OpenAPI)")
			return
		}
		registered[key] = true
		router.HandleFunc(pattern, handler).Methods(method)
	}

	// Authentication
	add(http.MethodPost, "/authentication/v2/token", s.issueToken)

	// Object Storage Service
	add(http.MethodGet, "/oss/v2/buckets", s.listBuckets)
	add(http.MethodPost, "/oss/v2/buckets", s.createBucket)
	add(http.MethodGet, "/oss/v2/buckets/{bucket_key}/objects", s.listObjects)
	add(http.MethodPut, "/oss/v2/buckets/{bucket_key}/objects/{object_key}", s.uploadObject)

	// Data Management
	add(http.MethodGet, "/project/v1/hubs", s.listHubs)
	add(http.MethodGet, "/project/v1/hubs/{hub_id}", s.getHub)
	add(http.MethodGet, "/project/v1/hubs/{hub_id}/projects", s.listHubProjects)

	// Model Derivative
	add(http.MethodPost, "/modelderivative/v2/designdata/job", s.createTranslationJob)
	add(http.MethodGet, "/modelderivative/v2/designdata/{urn}/manifest", s.getManifest)

	// ACC Issues
	add(http.MethodGet, "/construction/issues/v1/projects/{project_id}/issues", s.listIssues)
	add(http.MethodPost, "/construction/issues/v1/projects/{project_id}/issues", s.createIssue)

	// Webhooks
	add(http.MethodGet, "/webhooks/v1/systems/{system}/events/{event}/hooks", s.listHooks)
	add(http.MethodPost, "/webhooks/v1/systems/{system}/events/{event}/hooks", s.createHook)
	add(http.MethodDelete, "/webhooks/v1/systems/{system}/events/{event}/hooks/{hook_id}", s.deleteHook)
}
