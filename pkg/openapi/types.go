package openapi

import (
	"gopkg.in/yaml.v3"
)

// Document is a parsed OpenAPI 3.0 specification. It is read-only after
// parsing; route definitions hold a shared pointer to its components section
// and must never mutate it.
type Document struct {
	OpenAPI    string               `yaml:"openapi"`
	Info       Info                 `yaml:"info"`
	Servers    []Server             `yaml:"servers"`
	Paths      map[string]*PathItem `yaml:"paths"`
	Components *Components          `yaml:"components"`
}

// Info holds document metadata.
type Info struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Server describes a server entry.
type Server struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// PathItem maps HTTP methods to operations for a single path template.
type PathItem struct {
	Get    *Operation `yaml:"get"`
	Post   *Operation `yaml:"post"`
	Put    *Operation `yaml:"put"`
	Delete *Operation `yaml:"delete"`
	Patch  *Operation `yaml:"patch"`
}

// Operation is one HTTP-method-specific behavior definition.
type Operation struct {
	OperationID string                `yaml:"operationId"`
	Summary     string                `yaml:"summary"`
	Description string                `yaml:"description"`
	Parameters  []*Parameter          `yaml:"parameters"`
	RequestBody *RequestBody          `yaml:"requestBody"`
	Responses   map[string]*Response  `yaml:"responses"`
	Tags        []string              `yaml:"tags"`
	Security    []map[string][]string `yaml:"security"`
}

// RequestBody describes an operation's request payload.
type RequestBody struct {
	Required    bool                 `yaml:"required"`
	Description string               `yaml:"description"`
	Content     map[string]MediaType `yaml:"content"`
}

// MediaType carries the schema and example material for one content type.
type MediaType struct {
	Schema   *Schema             `yaml:"schema"`
	Example  interface{}         `yaml:"example"`
	Examples map[string]*Example `yaml:"examples"`
}

// Example is a named example entry.
type Example struct {
	Summary     string      `yaml:"summary"`
	Description string      `yaml:"description"`
	Value       interface{} `yaml:"value"`
}

// Response is either a reference into components.responses or an inline
// definition. Exactly one of Ref and Def is set after parsing.
type Response struct {
	Ref string
	Def *ResponseDef
}

// ResponseDef is an inline response definition.
type ResponseDef struct {
	Description string               `yaml:"description"`
	Content     map[string]MediaType `yaml:"content"`
}

// UnmarshalYAML tries the reference shape first; a mapping without a $ref
// key falls back to the full definition shape.
func (r *Response) UnmarshalYAML(node *yaml.Node) error {
	if ref, ok := refOf(node); ok {
		r.Ref = ref
		return nil
	}
	var def ResponseDef
	if err := node.Decode(&def); err != nil {
		return err
	}
	r.Def = &def
	return nil
}

// Schema is either a reference into components.schemas or an inline schema.
type Schema struct {
	Ref string
	Def *SchemaDef
}

// SchemaDef is an inline schema definition. Only the subset needed for
// example extraction is modeled.
type SchemaDef struct {
	Type       string             `yaml:"type"`
	Format     string             `yaml:"format"`
	Items      *Schema            `yaml:"items"`
	Properties map[string]*Schema `yaml:"properties"`
	Required   []string           `yaml:"required"`
	Enum       []interface{}      `yaml:"enum"`
	Example    interface{}        `yaml:"example"`
}

// UnmarshalYAML tries the reference shape first, then the schema shape.
func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if ref, ok := refOf(node); ok {
		s.Ref = ref
		return nil
	}
	var def SchemaDef
	if err := node.Decode(&def); err != nil {
		return err
	}
	s.Def = &def
	return nil
}

// Parameter is either a reference or an inline parameter definition.
type Parameter struct {
	Ref string
	Def *ParameterDef
}

// ParameterDef is an inline parameter definition.
type ParameterDef struct {
	Name        string  `yaml:"name"`
	In          string  `yaml:"in"`
	Required    bool    `yaml:"required"`
	Description string  `yaml:"description"`
	Schema      *Schema `yaml:"schema"`
}

// UnmarshalYAML tries the reference shape first, then the parameter shape.
func (p *Parameter) UnmarshalYAML(node *yaml.Node) error {
	if ref, ok := refOf(node); ok {
		p.Ref = ref
		return nil
	}
	var def ParameterDef
	if err := node.Decode(&def); err != nil {
		return err
	}
	p.Def = &def
	return nil
}

// SecurityScheme models oauth2 and apiKey schemes; Type discriminates.
type SecurityScheme struct {
	Type  string       `yaml:"type"`
	In    string       `yaml:"in"`
	Name  string       `yaml:"name"`
	Flows *OAuth2Flows `yaml:"flows"`
}

// OAuth2Flows holds the flows the APS specs declare.
type OAuth2Flows struct {
	AuthorizationCode *OAuth2Flow `yaml:"authorizationCode"`
	ClientCredentials *OAuth2Flow `yaml:"clientCredentials"`
}

// OAuth2Flow is a single OAuth2 flow definition.
type OAuth2Flow struct {
	AuthorizationURL string            `yaml:"authorizationUrl"`
	TokenURL         string            `yaml:"tokenUrl"`
	Scopes           map[string]string `yaml:"scopes"`
}

// Components is the shared components section of a document.
type Components struct {
	Schemas         map[string]*Schema         `yaml:"schemas"`
	Responses       map[string]*Response       `yaml:"responses"`
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes"`
}

// refOf reports the $ref value of a mapping node, if it has one.
func refOf(node *yaml.Node) (string, bool) {
	var probe struct {
		Ref string `yaml:"$ref"`
	}
	if err := node.Decode(&probe); err != nil {
		return "", false
	}
	return probe.Ref, probe.Ref != ""
}

// RouteDefinition is the dispatch-ready form of one operation. Components
// points at the owning document's shared section so references can be
// resolved at response time.
type RouteDefinition struct {
	Method     string
	Path       string
	Pattern    string
	Operation  *Operation
	Components *Components
}
