// Package openapi describes the HTTP API as an OpenAPI 3 document.
package openapi

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

// Document is the subset of the OpenAPI object used by this service.
type Document struct {
	OpenAPI    string              `json:"openapi" yaml:"openapi"`
	Info       Info                `json:"info" yaml:"info"`
	Servers    []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      map[string]PathItem `json:"paths" yaml:"paths"`
	Components Components          `json:"components" yaml:"components"`
}

type Info struct {
	Title   string `json:"title" yaml:"title"`
	Version string `json:"version" yaml:"version"`
}

type Server struct {
	URL string `json:"url" yaml:"url"`
}

type PathItem struct {
	Get    *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Post   *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Put    *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

type Operation struct {
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	OperationID string              `json:"operationId" yaml:"operationId"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema   *Schema `json:"schema" yaml:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type MediaType struct {
	Schema *Schema `json:"schema" yaml:"schema"`
}

type Schema struct {
	Ref        string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type       string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format     string             `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern    string             `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Minimum    *int               `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum    *int               `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MinLength  *int               `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Default    interface{}        `json:"default,omitempty" yaml:"default,omitempty"`
	Items      *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`
	MinProps   *int               `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
}

type Components struct {
	Schemas map[string]*Schema `json:"schemas" yaml:"schemas"`
}

func intPtr(i int) *int { return &i }

func ref(name string) *Schema { return &Schema{Ref: "#/components/schemas/" + name} }

func jsonContent(s *Schema) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: s}}
}

func errorResponse(description string) Response {
	return Response{Description: description, Content: jsonContent(ref("Error"))}
}

var idParam = Parameter{
	Name:     "id",
	In:       "path",
	Required: true,
	Schema:   &Schema{Type: "string", Pattern: `^(\d+|[0-9a-fA-F-]{36})$`},
}

// New builds the document for the API mounted at prefix.
func New(prefix, version string) *Document {
	userTags := []string{"Users"}
	return &Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: "Users API", Version: version},
		Servers: []Server{{URL: prefix}},
		Paths: map[string]PathItem{
			"/health": {
				Get: &Operation{
					Tags:        []string{"Health"},
					Summary:     "Health check",
					OperationID: "getHealth",
					Responses: map[string]Response{
						"200": {Description: "Service is up", Content: jsonContent(ref("Health"))},
					},
				},
			},
			"/users": {
				Get: &Operation{
					Tags:        userTags,
					Summary:     "List users",
					OperationID: "listUsers",
					Parameters: []Parameter{
						{Name: "page", In: "query", Schema: &Schema{Type: "integer", Minimum: intPtr(1), Default: 1}},
						{Name: "pageSize", In: "query", Schema: &Schema{Type: "integer", Minimum: intPtr(1), Maximum: intPtr(100), Default: 10}},
					},
					Responses: map[string]Response{
						"200": {Description: "One page of users", Content: jsonContent(ref("UserPage"))},
						"400": errorResponse("Invalid query"),
					},
				},
				Post: &Operation{
					Tags:        userTags,
					Summary:     "Create a user",
					OperationID: "createUser",
					RequestBody: &RequestBody{Required: true, Content: jsonContent(ref("CreateUser"))},
					Responses: map[string]Response{
						"201": {Description: "Created", Content: jsonContent(ref("User"))},
						"400": errorResponse("Invalid body"),
						"409": errorResponse("Email already in use"),
					},
				},
			},
			"/users/{id}": {
				Get: &Operation{
					Tags:        userTags,
					Summary:     "Get a user by id or uuid",
					OperationID: "getUser",
					Parameters:  []Parameter{idParam},
					Responses: map[string]Response{
						"200": {Description: "The user", Content: jsonContent(ref("User"))},
						"400": errorResponse("Invalid identifier"),
						"404": errorResponse("User not found"),
					},
				},
				Put: &Operation{
					Tags:        userTags,
					Summary:     "Update a user by id or uuid",
					OperationID: "updateUser",
					Parameters:  []Parameter{idParam},
					RequestBody: &RequestBody{Required: true, Content: jsonContent(ref("UpdateUser"))},
					Responses: map[string]Response{
						"200": {Description: "The updated user", Content: jsonContent(ref("User"))},
						"400": errorResponse("Invalid identifier or body"),
						"404": errorResponse("User not found"),
						"409": errorResponse("Email already in use"),
					},
				},
				Delete: &Operation{
					Tags:        userTags,
					Summary:     "Delete a user by id or uuid",
					OperationID: "deleteUser",
					Parameters:  []Parameter{idParam},
					Responses: map[string]Response{
						"204": {Description: "Deleted"},
						"400": errorResponse("Invalid identifier"),
						"404": errorResponse("User not found"),
					},
				},
			},
		},
		Components: Components{Schemas: schemas()},
	}
}

func schemas() map[string]*Schema {
	return map[string]*Schema{
		"User": {
			Type: "object",
			Properties: map[string]*Schema{
				"id":         {Type: "integer", Minimum: intPtr(1)},
				"uuid":       {Type: "string", Format: "uuid"},
				"name":       {Type: "string"},
				"email":      {Type: "string", Format: "email"},
				"created_at": {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "uuid", "name", "email", "created_at"},
		},
		"CreateUser": {
			Type: "object",
			Properties: map[string]*Schema{
				"name":  {Type: "string", MinLength: intPtr(1)},
				"email": {Type: "string", Format: "email"},
			},
			Required: []string{"name", "email"},
		},
		"UpdateUser": {
			Type: "object",
			Properties: map[string]*Schema{
				"name":  {Type: "string", MinLength: intPtr(1)},
				"email": {Type: "string", Format: "email"},
			},
			MinProps: intPtr(1),
		},
		"UserPage": {
			Type: "object",
			Properties: map[string]*Schema{
				"items":      {Type: "array", Items: ref("User")},
				"page":       {Type: "integer"},
				"pageSize":   {Type: "integer"},
				"total":      {Type: "integer"},
				"totalPages": {Type: "integer"},
			},
			Required: []string{"items", "page", "pageSize", "total", "totalPages"},
		},
		"Health": {
			Type: "object",
			Properties: map[string]*Schema{
				"ok": {Type: "boolean"},
				"ts": {Type: "string", Format: "date-time"},
			},
		},
		"Error": {
			Type: "object",
			Properties: map[string]*Schema{
				"error":   {Type: "string"},
				"message": {Type: "string"},
			},
			Required: []string{"error", "message"},
		},
	}
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi document: %w", err)
	}
	return data, nil
}

// RegisterRoutes serves the document as JSON at /docs and as YAML at /docs/openapi.yaml.
func (d *Document) RegisterRoutes(router fiber.Router) error {
	data, err := d.YAML()
	if err != nil {
		return err
	}
	docs := router.Group("/docs")
	docs.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(d)
	})
	docs.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(data)
	})
	return nil
}
