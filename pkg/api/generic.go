package api

import (
	"errors"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/mockaps/mockaps/pkg/httputil"
	"github.com/mockaps/mockaps/pkg/openapi"
)

const responseCacheSize = 512

// cachedResponse is a memoized resolution outcome for one synthesized
// route. Resolution is deterministic per router build, so the cache never
// needs invalidation; it is dropped wholesale on Rebuild.
type cachedResponse struct {
	status         int
	body           []byte
	notImplemented bool
	operationID    string
}

func newResponseCache() *lru.Cache[string, cachedResponse] {
	// Cannot fail for a positive size.
	cache, _ := lru.New[string, cachedResponse](responseCacheSize)
	return cache
}

// genericHandler serves the example response for a synthesized route. The
// route definition is resolved lazily on first hit and memoized; routes
// whose specs declare no usable example answer 501 with the operation id.
func (s *Server) genericHandler(route openapi.RouteDefinition, cache *lru.Cache[string, cachedResponse]) http.HandlerFunc {
	key := route.Method + " " + route.Pattern

	return func(w http.ResponseWriter, r *http.Request) {
		s.log.WithFields(logrus.Fields{
			"method":  route.Method,
			"pattern": route.Pattern,
		}).Debug("Serving generic mock response")

		entry, ok := cache.Get(key)
		if !ok {
			resolved, err := openapi.ResolveExample(&route)
			switch {
			case err == nil:
				entry = cachedResponse{status: resolved.Status, body: resolved.Body}
			default:
				var noExample *openapi.NoExampleError
				if !errors.As(err, &noExample) {
					httputil.WriteInternalError(w, err)
					return
				}
				entry = cachedResponse{
					notImplemented: true,
					operationID:    noExample.OperationID,
				}
			}
			cache.Add(key, entry)
		}

		if entry.notImplemented {
			httputil.WriteNotImplemented(w, entry.operationID, route.Method, route.Path)
			return
		}
		if len(entry.body) == 0 {
			w.WriteHeader(entry.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(entry.status)
		w.Write(entry.body)
	}
}
