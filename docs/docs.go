// Package docs registers the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/tourism/main.go
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
        "/{type}": {
            "post": {
                "tags": ["actors"],
                "summary": "Sign up",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "users, tourguides or admins", "name": "type", "in": "path", "required": true},
                    {"description": "Signup details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["actors"],
                "summary": "Update profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "users, tourguides or admins", "name": "type", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/{type}/login": {
            "post": {
                "tags": ["actors"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "tourguides or admins", "name": "type", "in": "path", "required": true},
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "tags": ["actors"],
                "summary": "Login as user or tour guide",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sharedLoginResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/{type}/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["actors"],
                "summary": "Current profile",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "users, tourguides or admins", "name": "type", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/{type}/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["actors"],
                "summary": "Logout",
                "parameters": [
                    {"type": "string", "description": "users, tourguides or admins", "name": "type", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/{type}/like/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["actors"],
                "summary": "Like or unlike a post",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "users or tourguides", "name": "type", "in": "path", "required": true},
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.likeResponse"}}
                }
            }
        },
        "/users/jointour/{id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Join a tour",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Tour ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/users/unjointour": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Leave the current tour",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/users/tourusers/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Tour members",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Tour ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/{type}/{id}": {
            "get": {
                "tags": ["actors"],
                "summary": "Get actor",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "users or tourguides", "name": "type", "in": "path", "required": true},
                    {"type": "string", "description": "Actor ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["actors"],
                "summary": "Delete actor",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "users or tourguides", "name": "type", "in": "path", "required": true},
                    {"type": "string", "description": "Actor ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 7, "maxLength": 72},
                "phone": {"type": "string"},
                "country": {"type": "string"},
                "language": {"type": "string"},
                "license": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "handler.sharedLoginResponse": {
            "type": "object",
            "properties": {
                "user": {"type": "boolean"},
                "tourguide": {"type": "boolean"},
                "token": {"type": "string"}
            }
        },
        "handler.likeResponse": {
            "type": "object",
            "properties": {
                "liked": {"type": "boolean"},
                "likes": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tourism API",
	Description:      "Accounts and authentication for users, tour guides and admins.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
