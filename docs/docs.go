// Package docs registers the swagger document served at /swagger/*.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in and receive a session cookie",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SignInRequest"}}
                ],
                "responses": {
                    "200": {"description": "Set-Cookie: sessionId"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/sign-out": {
            "post": {
                "security": [{"SessionCookie": []}],
                "tags": ["auth"],
                "summary": "Revoke the current session",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/meals": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["meals"],
                "summary": "List the current user's meals in creation order",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MealsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "tags": ["meals"],
                "summary": "Record a meal",
                "parameters": [
                    {"description": "Meal", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.MealRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/meals/summary": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["meals"],
                "summary": "Meal counts and the longest on-diet streak",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SummaryResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/meals/{id}": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["meals"],
                "summary": "Get one of the current user's meals",
                "parameters": [{"type": "string", "description": "Meal ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MealResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "tags": ["meals"],
                "summary": "Replace one of the current user's meals",
                "parameters": [
                    {"type": "string", "description": "Meal ID", "name": "id", "in": "path", "required": true},
                    {"description": "Meal", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.MealRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"SessionCookie": []}],
                "tags": ["meals"],
                "summary": "Delete one of the current user's meals",
                "parameters": [{"type": "string", "description": "Meal ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.SignUpRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string", "example": "john@x.com"},
                "name": {"type": "string", "example": "John Doe"},
                "password": {"type": "string", "minLength": 6, "example": "12345678"}
            }
        },
        "handler.SignInRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "john@x.com"},
                "password": {"type": "string", "minLength": 6, "example": "12345678"}
            }
        },
        "handler.MealRequest": {
            "type": "object",
            "required": ["date", "description", "isOnDiet", "name"],
            "properties": {
                "date": {"type": "string", "example": "2024-03-10T12:30:00Z"},
                "description": {"type": "string", "example": "Delicious Burger"},
                "isOnDiet": {"type": "boolean", "example": false},
                "name": {"type": "string", "example": "Burger"}
            }
        },
        "handler.MealResponse": {
            "type": "object",
            "properties": {"meal": {"$ref": "#/definitions/model.Meal"}}
        },
        "handler.MealsResponse": {
            "type": "object",
            "properties": {"meals": {"type": "array", "items": {"$ref": "#/definitions/model.Meal"}}}
        },
        "handler.SummaryResponse": {
            "type": "object",
            "properties": {"summary": {"$ref": "#/definitions/model.MealSummary"}}
        },
        "model.Meal": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "date": {"type": "integer"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "is_on_diet": {"type": "boolean"},
                "name": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "model.MealSummary": {
            "type": "object",
            "properties": {
                "onDietMealsStreak": {"type": "integer"},
                "totalMeals": {"type": "integer"},
                "totalMealsNotOnDiet": {"type": "integer"},
                "totalMealsOnDiet": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {"type": "apiKey", "name": "sessionId", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Daily Diet API",
	Description:      "Session-authenticated meal tracking with an on-diet streak summary.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
