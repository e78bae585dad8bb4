// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/listening": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Stores one listening for the authenticated user with idempotency handling",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Listening"],
                "summary": "Record a track listening",
                "parameters": [
                    {
                        "description": "Listening payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/fiber.RecordListeningRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Duplicate listening", "schema": {"$ref": "#/definitions/fiber.RecordListeningResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/fiber.RecordListeningResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/listening/bulk": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Validates every item first, then stores them individually",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Listening"],
                "summary": "Bulk record listenings",
                "parameters": [
                    {
                        "description": "Bulk listening payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/fiber.BulkRecordListeningRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/fiber.BulkRecordListeningResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/statistics/excursion": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "Purchased excursions per time bucket",
                "parameters": [
                    {"type": "string", "description": "Period start (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Period end (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fiber.StatisticsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/statistics/listening": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "Track listenings per time bucket",
                "parameters": [
                    {"type": "string", "description": "Period start (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Period end (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fiber.StatisticsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/statistics/sales": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Sum of excursion price times purchases inside every bucket",
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "Sales amount per time bucket",
                "parameters": [
                    {"type": "string", "description": "Period start (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Period end (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fiber.StatisticsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        },
        "/statistics/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Statistics"],
                "summary": "New active users per time bucket",
                "parameters": [
                    {"type": "string", "description": "Period start (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)", "name": "start", "in": "query"},
                    {"type": "string", "description": "Period end (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/fiber.StatisticsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/fiber.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "fiber.BulkRecordListeningRequest": {
            "type": "object",
            "properties": {
                "listenings": {"type": "array", "items": {"$ref": "#/definitions/fiber.RecordListeningRequest"}}
            }
        },
        "fiber.BulkRecordListeningResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "duplicates": {"type": "integer"}
            }
        },
        "fiber.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid_time_interval"},
                "message": {"type": "string", "example": "Invalid time interval"}
            }
        },
        "fiber.RecordListeningRequest": {
            "description": "Listening DTO; timestamp is unix seconds and defaults to now",
            "type": "object",
            "properties": {
                "excursion_point_id": {"type": "integer", "example": 31},
                "timestamp": {"type": "integer", "example": 1710071940}
            }
        },
        "fiber.RecordListeningResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "created"}
            }
        },
        "fiber.StatisticsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object", "additionalProperties": {"type": "number"}},
                "type": {"type": "string", "example": "days"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Audio Tour Service API",
	Description:      "Listening capture and admin statistics for paid audio tours.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
