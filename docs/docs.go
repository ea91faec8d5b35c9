// Package docs registers the OpenAPI document served at /openapi.json.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.RootResponse"}}}
            }
        },
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.PingResponse"}}}
            }
        },
        "/default-auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a local account",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.AccountView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/default-auth/authenticate": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded", "application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for an access token",
                "parameters": [
                    {"type": "string", "description": "email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/default-auth/auth/google": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with a Google ID token",
                "parameters": [{"type": "string", "name": "token", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.FederatedTokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/default-auth/auth/google/code": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with a Google authorization code",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.GoogleCodeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.FederatedTokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "501": {"description": "Not Implemented", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/default-auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current token subject",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/spaces": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["spaces"],
                "summary": "List spaces",
                "parameters": [
                    {"type": "integer", "name": "skip", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["spaces"],
                "summary": "Create a space",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}
            }
        },
        "/bookings/user/{user_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "List the caller's bookings",
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}
            }
        },
        "/rentals/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rentals"],
                "summary": "Rentals contained in a period",
                "parameters": [
                    {"type": "string", "name": "start_date", "in": "query"},
                    {"type": "string", "name": "end_date", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}
            }
        },
        "/notifications/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Notifications by user and read status",
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"type": "boolean", "name": "read_status", "in": "query", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}}
            }
        }
    },
    "definitions": {
        "model.AccountView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "is_admin": {"type": "boolean"},
                "auth_provider": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.FederatedTokenResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}, "token_type": {"type": "string"}}
        },
        "model.GoogleCodeRequest": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "redirect_uri": {"type": "string"}}
        },
        "model.MeResponse": {
            "type": "object",
            "properties": {"userid": {"type": "string"}, "email": {"type": "string"}}
        },
        "model.PingResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "model.RegisterRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "model.RootResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "message": {"type": "string"}}
        },
        "model.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "email": {"type": "string"},
                "userid": {"type": "string"},
                "is_admin": {"type": "boolean"}
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
	Title:            "Spacebook API",
	Description:      "Coworking space booking backend with local and Google sign-in.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
