package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// successCodes is the fixed priority order for candidate responses.
var successCodes = []string{"200", "201", "202", "204", "default"}

// mediaTypes is the fixed priority order for candidate content types.
var mediaTypes = []string{"application/json", "application/vnd.api+json"}

// Resolved is a representative mock response for a routing entry.
type Resolved struct {
	Status int
	Body   json.RawMessage // nil means empty body
}

// NoExampleError reports that every success-code/media-type/example
// combination for an operation was exhausted. The dispatcher turns it into
// HTTP 501 with the diagnostic fields.
type NoExampleError struct {
	OperationID string
	Method      string
	Path        string
}

func (e *NoExampleError) Error() string {
	return fmt.Sprintf("no example response available for %s %s", e.Method, e.Path)
}

// ResolveExample selects one representative example response for a route.
// It is a pure function of the route and its owning document: no I/O, no
// side effects, and repeated calls yield byte-identical output.
//
// Priority: first present code among 200, 201, 202, 204, "default"; within
// it, application/json before application/vnd.api+json; within a media type,
// inline example, then the first named example carrying a value (names
// sorted for determinism), then the schema's example, resolving schema
// references. A response that resolves but yields no example produces an
// empty 204 body for code "204" and an empty 200 body otherwise. An
// unresolved response reference counts as absent and the scan moves to the
// next code.
func ResolveExample(route *RouteDefinition) (Resolved, error) {
	for _, code := range successCodes {
		resp, ok := route.Operation.Responses[code]
		if !ok || resp == nil {
			continue
		}

		def := resolveResponse(resp, route.Components)
		if def == nil {
			continue
		}

		if def.Content != nil {
			for _, mt := range mediaTypes {
				media, ok := def.Content[mt]
				if !ok {
					continue
				}
				if value, ok := extractExample(media, route.Components); ok {
					body, err := json.Marshal(value)
					if err != nil {
						return Resolved{}, fmt.Errorf("failed to encode example for %s %s: %w", route.Method, route.Path, err)
					}
					return Resolved{Status: http.StatusOK, Body: body}, nil
				}
			}
		}

		if code == "204" {
			return Resolved{Status: http.StatusNoContent}, nil
		}
		return Resolved{Status: http.StatusOK}, nil
	}

	return Resolved{}, &NoExampleError{
		OperationID: route.Operation.OperationID,
		Method:      route.Method,
		Path:        route.Path,
	}
}

// resolveResponse follows a response reference into components.responses.
// A dangling reference or a missing components section degrades to nil. A
// target that is itself a reference counts as a resolved response with no
// content: the lookup succeeded, it just has nothing usable to offer.
func resolveResponse(resp *Response, comps *Components) *ResponseDef {
	if resp.Ref == "" {
		return resp.Def
	}
	name := refName(resp.Ref)
	if name == "" || comps == nil || comps.Responses == nil {
		return nil
	}
	target, ok := comps.Responses[name]
	if !ok || target == nil {
		return nil
	}
	if target.Def == nil {
		return &ResponseDef{}
	}
	return target.Def
}

// resolveSchema follows a schema reference into components.schemas.
func resolveSchema(schema *Schema, comps *Components) *SchemaDef {
	if schema.Ref == "" {
		return schema.Def
	}
	name := refName(schema.Ref)
	if name == "" || comps == nil || comps.Schemas == nil {
		return nil
	}
	target, ok := comps.Schemas[name]
	if !ok || target == nil {
		return nil
	}
	return target.Def
}

// extractExample pulls an example value out of a media type entry using the
// fixed sub-priority; the first rule that yields a value wins.
func extractExample(media MediaType, comps *Components) (interface{}, bool) {
	if media.Example != nil {
		return media.Example, true
	}

	if len(media.Examples) > 0 {
		names := make([]string, 0, len(media.Examples))
		for name := range media.Examples {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if ex := media.Examples[name]; ex != nil && ex.Value != nil {
				return ex.Value, true
			}
		}
	}

	if media.Schema != nil {
		if def := resolveSchema(media.Schema, comps); def != nil && def.Example != nil {
			return def.Example, true
		}
	}

	return nil, false
}

// refName returns the last segment of a $ref path, e.g.
// "#/components/responses/NotFound" -> "NotFound".
func refName(ref string) string {
	idx := strings.LastIndex(ref, "/")
	if idx < 0 {
		return ref
	}
	return ref[idx+1:]
}
