package openapi

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
)

var (
	pathParamRe = regexp.MustCompile(`\{([^}]+)\}`)
	camelCaseRe = regexp.MustCompile(`([a-z])([A-Z])`)
)

// ExtractRoutes converts a document's path templates into route definitions,
// one per HTTP method present. Paths are emitted in sorted order and methods
// in a fixed order, so when two templates normalize to the same pattern the
// same one wins registration on every run. Every definition shares the
// document's components section by pointer.
func ExtractRoutes(doc *Document) []RouteDefinition {
	var routes []RouteDefinition

	paths := make([]string, 0, len(doc.Paths))
	for path := range doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		pattern := ConvertPathToPattern(path)

		add := func(method string, op *Operation) {
			if op == nil {
				return
			}
			routes = append(routes, RouteDefinition{
				Method:     method,
				Path:       path,
				Pattern:    pattern,
				Operation:  op,
				Components: doc.Components,
			})
		}

		add(http.MethodGet, item.Get)
		add(http.MethodPost, item.Post)
		add(http.MethodPut, item.Put)
		add(http.MethodDelete, item.Delete)
		add(http.MethodPatch, item.Patch)
	}

	return routes
}

// ConvertPathToPattern rewrites OpenAPI {param} placeholders into the
// router's placeholder syntax, normalizing parameter names to snake_case so
// that differently-cased spellings of the same logical segment
// (e.g. {HubId} vs {hubId}) dispatch through one pattern. The rewrite never
// changes the number or order of path segments.
func ConvertPathToPattern(path string) string {
	return pathParamRe.ReplaceAllStringFunc(path, func(match string) string {
		name := match[1 : len(match)-1]
		snake := strings.ToLower(camelCaseRe.ReplaceAllString(name, "${1}_${2}"))
		return "{" + snake + "}"
	})
}
