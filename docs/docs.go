// Package docs registers the Swagger 2.0 document served at /swagger/*.
// Keep it in step with the @Router annotations on the handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["search"],
                "summary": "Search",
                "parameters": [
                    {"type": "string", "description": "Search word", "name": "q", "in": "query"},
                    {"type": "string", "description": "articles, works, users or tags", "name": "target", "in": "query"},
                    {"type": "integer", "description": "Page, starting at 1", "name": "page", "in": "query"},
                    {"type": "string", "description": "new or old", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SearchPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/users/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "User profile",
                "parameters": [
                    {"type": "string", "description": "Login name", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ProfilePage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/users/{username}/articles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "User articles",
                "parameters": [
                    {"type": "string", "description": "Login name", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "description": "Page, starting at 1", "name": "page", "in": "query"},
                    {"type": "string", "description": "new or old", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ListResult-model_Article"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/users/{username}/works": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "User works",
                "parameters": [
                    {"type": "string", "description": "Login name", "name": "username", "in": "path", "required": true},
                    {"type": "integer", "description": "Page, starting at 1", "name": "page", "in": "query"},
                    {"type": "string", "description": "new or old", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ListResult-model_Work"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/search": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["search"],
                "summary": "Submit search form",
                "parameters": [
                    {"type": "string", "description": "Search word", "name": "search", "in": "formData"},
                    {"type": "string", "description": "articles, works, users or tags", "name": "target", "in": "formData"},
                    {"type": "string", "description": "Sort of the page the form was submitted from", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "303": {"description": "See Other"}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/handler.fieldError"}},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "handler.fieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "rule": {"type": "string"}
            }
        },
        "model.Article": {
            "type": "object",
            "properties": {
                "author": {"$ref": "#/definitions/model.UserSummary"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"},
                "updated_at": {"type": "string"},
                "visibility": {"type": "boolean"}
            }
        },
        "model.Tag": {
            "type": "object",
            "properties": {
                "article_count": {"type": "integer"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "display_name": {"type": "string"},
                "id": {"type": "string"},
                "image": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "model.UserSummary": {
            "type": "object",
            "properties": {
                "display_name": {"type": "string"},
                "image": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "model.Work": {
            "type": "object",
            "properties": {
                "author": {"$ref": "#/definitions/model.UserSummary"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "thumbnail": {"type": "string"},
                "title": {"type": "string"},
                "visibility": {"type": "boolean"}
            }
        },
        "service.ListResult-model_Article": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Article"}},
                "page": {"type": "integer"},
                "pagination": {"$ref": "#/definitions/service.Pagination"},
                "total": {"type": "integer"}
            }
        },
        "service.ListResult-model_Work": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Work"}},
                "page": {"type": "integer"},
                "pagination": {"$ref": "#/definitions/service.Pagination"},
                "total": {"type": "integer"}
            }
        },
        "service.Pagination": {
            "type": "object",
            "properties": {
                "shown": {"type": "boolean"},
                "total_pages": {"type": "integer"}
            }
        },
        "service.ProfilePage": {
            "type": "object",
            "properties": {
                "articles": {"type": "object"},
                "is_current_user": {"type": "boolean"},
                "metadata": {"type": "object"},
                "stats": {"type": "array", "items": {"type": "object"}},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/model.Tag"}},
                "user": {"type": "object"},
                "works": {"type": "object"}
            }
        },
        "service.SearchPage": {
            "type": "object",
            "properties": {
                "active": {"type": "string"},
                "articles": {"type": "array", "items": {"$ref": "#/definitions/model.Article"}},
                "heading": {"type": "string"},
                "page": {"type": "integer"},
                "pagination": {"$ref": "#/definitions/service.Pagination"},
                "placeholders": {"type": "integer"},
                "query": {"type": "string"},
                "show_sort": {"type": "boolean"},
                "sort": {"type": "string"},
                "tags": {"type": "array", "items": {"$ref": "#/definitions/model.Tag"}},
                "targets": {"type": "array", "items": {"type": "object"}},
                "users": {"type": "array", "items": {"$ref": "#/definitions/model.User"}},
                "works": {"type": "array", "items": {"$ref": "#/definitions/model.Work"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Link Mono API",
	Description:      "Profile and search pages of Link Mono.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
