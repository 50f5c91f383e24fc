// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}],
                "responses": {"200": {"description": "token"}, "401": {"description": "invalid credentials"}}
            }
        },
        "/api/users": {
            "get": {"tags": ["Users"], "summary": "List users for assignment pickers", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Users"], "summary": "Create user (admin)", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/api/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "projetoId", "type": "integer"},
                    {"in": "query", "name": "assignedToId", "type": "integer"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["PENDENTE", "EM_ANDAMENTO", "CONCLUIDA"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Task"}}}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create a task",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Task"}}, "400": {"description": "Bad Request"}, "404": {"description": "Referenced row not found"}}
            }
        },
        "/api/tasks/{id}": {
            "get": {"tags": ["Tasks"], "summary": "Task with relations", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["Tasks"], "summary": "Partial update; projetoId null or empty clears the project", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["Tasks"], "summary": "Delete task, its comments, and detach its files", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/tasks/{id}/status": {
            "post": {"tags": ["Tasks"], "summary": "Move a task to another Kanban column", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/tasks/{id}/comments": {
            "get": {"tags": ["Comments"], "summary": "List comments", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Comments"], "summary": "Add a comment", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/tasks/{id}/mark-viewed": {
            "post": {"tags": ["Comments"], "summary": "Mark every comment of the task as viewed by the caller", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/files": {
            "get": {"tags": ["Files"], "summary": "List file metadata", "security": [{"BearerAuth": []}], "parameters": [{"in": "query", "name": "taskId", "type": "integer"}, {"in": "query", "name": "projetoId", "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Files"], "summary": "Register an uploaded file", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}},
            "delete": {"tags": ["Files"], "summary": "Delete file metadata (admin)", "security": [{"BearerAuth": []}], "parameters": [{"in": "query", "name": "id", "type": "integer", "required": true}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/api/files/{id}": {
            "put": {"tags": ["Files"], "summary": "Change task/projeto association (admin)", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["Files"], "summary": "Delete file metadata (admin)", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/api/reports/tasks.pdf": {
            "get": {"tags": ["Reports"], "summary": "Kanban board as PDF", "security": [{"BearerAuth": []}], "produces": ["application/pdf"], "parameters": [{"in": "query", "name": "projetoId", "type": "integer"}], "responses": {"200": {"description": "PDF"}}}
        }
    },
    "definitions": {
        "models.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.Task": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDENTE", "EM_ANDAMENTO", "CONCLUIDA"]},
                "priority": {"type": "integer"},
                "dueDate": {"type": "string"},
                "authorId": {"type": "integer"},
                "assignedToId": {"type": "integer"},
                "projetoId": {"type": "integer"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
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
	Title:            "Construtora API",
	Description:      "Tasks, comments, files and projects of the construtora admin area.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
