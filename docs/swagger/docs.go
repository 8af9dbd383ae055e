// Package swagger registers the OpenAPI document served at /swagger.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@parking-microservice.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Service health",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/search/resolve": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Geocode a place query",
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unresolvable query"}}
            }
        },
        "/api/v1/search/nearby": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "One-shot nearby parking search",
                "parameters": [
                    {"name": "lat", "in": "query", "type": "number"},
                    {"name": "lon", "in": "query", "type": "number"},
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid request"}}
            }
        },
        "/api/v1/search/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Open a search session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/search/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Read a search session",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Close a search session",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/search/sessions/{id}/events": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Feed an event into a search session",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/lots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lots"],
                "summary": "List all parking lots",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/lots/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lots"],
                "summary": "Get one parking lot",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/lots/{id}/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lots"],
                "summary": "Get a lot's occupancy status",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/bookings/quote": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Bookings"],
                "summary": "Price a prospective booking",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/bookings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Bookings"],
                "summary": "Confirm a booking",
                "responses": {"200": {"description": "OK"}, "409": {"description": "No spot free for the window"}}
            }
        },
        "/api/v1/bookings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Bookings"],
                "summary": "Get one booking",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/api/v1/bookings/{id}/cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Bookings"],
                "summary": "Cancel an active booking",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Booking is not active"}}
            }
        },
        "/api/v1/manager/lots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Manager"],
                "security": [{"BearerAuth": []}],
                "summary": "List the authenticated manager's lots",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Manager"],
                "security": [{"BearerAuth": []}],
                "summary": "Register a new parking lot",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/manager/lots/{id}/bookings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Manager"],
                "security": [{"BearerAuth": []}],
                "summary": "List bookings for one of the manager's lots",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/manager/bookings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Manager"],
                "security": [{"BearerAuth": []}],
                "summary": "List bookings across the manager's lots",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/manager/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Manager"],
                "security": [{"BearerAuth": []}],
                "summary": "Manager dashboard summary",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Parking Microservice API",
	Description:      "Microservice for discovering and booking parking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
