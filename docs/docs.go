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
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/v1/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Open a gate session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/navigate": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Runs the status gate and the route's guard chain for the\nsession's principal and tenant, applying forced logouts.",
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "Evaluate a navigation",
                "parameters": [
                    {"type": "string", "description": "Target path with optional query, e.g. /finance?portal=acme", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.navigationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "Operational status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statusResponse"}}}
            }
        },
        "/v1/status/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "Re-fetch operational status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/tenant": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "Current tenant and its entitlements",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tenantResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/tenant/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["gate"],
                "summary": "Re-fetch the tenant configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tenantResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/session/principal": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current principal",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Principal"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Store the logged-in principal",
                "parameters": [
                    {"description": "Principal record", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Principal"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Principal"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Update the stored principal",
                "parameters": [
                    {"description": "Fields to replace", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Principal"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["session"],
                "summary": "Log out",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/v1/session/theme": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Display theme",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.themeResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Set display theme",
                "parameters": [
                    {"description": "Theme", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.themeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.themeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Principal": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string"},
                "is_superuser": {"type": "boolean"},
                "teacher_id": {"type": "string"},
                "student_id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "domain.Pricing": {
            "type": "object",
            "properties": {
                "basic": {"type": "number"},
                "standard": {"type": "number"},
                "premium": {"type": "number"},
                "currency": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "session_id": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "handler.themeRequest": {
            "type": "object",
            "required": ["theme"],
            "properties": {"theme": {"type": "string", "enum": ["light", "dark", "system"]}}
        },
        "handler.themeResponse": {
            "type": "object",
            "properties": {"theme": {"type": "string"}}
        },
        "handler.decisionResponse": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["allow", "redirect", "pending", "upsell", "maintenance"]},
                "target": {"type": "string"},
                "clear_principal": {"type": "boolean"},
                "feature": {"type": "string"},
                "feature_name": {"type": "string"},
                "min_plan": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "handler.navigationResponse": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "route": {"type": "string"},
                "screen": {"type": "string"},
                "params": {"type": "object", "additionalProperties": {"type": "string"}},
                "decision": {"$ref": "#/definitions/handler.decisionResponse"},
                "decided_by": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "handler.statusResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["loading", "ready", "failed"]},
                "maintenance_mode": {"type": "boolean"},
                "registration_open": {"type": "boolean"},
                "pricing": {"$ref": "#/definitions/domain.Pricing"},
                "error": {"type": "string"}
            }
        },
        "handler.lockedFeature": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "min_plan": {"type": "string"}
            }
        },
        "handler.tenantResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["loading", "ready", "failed"]},
                "slug": {"type": "string"},
                "school_name": {"type": "string"},
                "plan": {"type": "string"},
                "pricing": {"$ref": "#/definitions/domain.Pricing"},
                "features": {"type": "array", "items": {"type": "string"}},
                "locked": {"type": "array", "items": {"$ref": "#/definitions/handler.lockedFeature"}},
                "error": {"type": "string"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
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
	Title:            "Portal Gate API",
	Description:      "Navigation gate for the school portals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
