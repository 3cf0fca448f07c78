// Package docs registers the OpenAPI description served at /swagger/*.
// Regenerate with `swag init -g cmd/app/main.go` after changing the
// handler annotations in internal/adapters/in/http.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/allocations": {
            "post": {
                "tags": ["allocations"],
                "summary": "Allocate an order to the nearest warehouse with room",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true},
                    {"type": "string", "name": "X-Role", "in": "header", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AllocationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/AllocationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "No warehouse has enough free capacity", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Capacity changed concurrently, resubmit", "schema": {"$ref": "#/definitions/Error"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders": {
            "get": {
                "tags": ["orders"],
                "summary": "List the trader's orders, newest first",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true},
                    {"type": "string", "name": "X-Role", "in": "header", "required": true},
                    {"type": "string", "description": "RFC3339 lower bound on creation time", "name": "since", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Order"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "tags": ["orders"],
                "summary": "Order totals and the five most recent orders of the trader",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true},
                    {"type": "string", "name": "X-Role", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TraderStats"}}
                }
            }
        },
        "/api/v1/geocode": {
            "get": {
                "tags": ["geocode"],
                "summary": "Resolve an address to coordinates",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Free-text address", "name": "address", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GeocodeResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/warehouses": {
            "get": {
                "tags": ["warehouses"],
                "summary": "Warehouse dashboard with load levels",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true},
                    {"type": "string", "name": "X-Role", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Warehouse"}}}
                }
            },
            "post": {
                "tags": ["warehouses"],
                "summary": "Register a new empty warehouse",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true},
                    {"type": "string", "name": "X-Role", "in": "header", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewWarehouse"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Warehouse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
        },
        "AllocationRequest": {
            "type": "object",
            "properties": {
                "farmerName": {"type": "string"},
                "farmerAddress": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "cropType": {"type": "string"},
                "grade": {"type": "string"},
                "quantity": {"type": "number"}
            }
        },
        "AllocationResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "orderId": {"type": "string"},
                "warehouse": {"type": "string"},
                "warehouseLat": {"type": "number"},
                "warehouseLng": {"type": "number"},
                "distanceKm": {"type": "number"},
                "etaMinutes": {"type": "integer"}
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "farmerName": {"type": "string"},
                "farmerAddress": {"type": "string"},
                "crop": {"type": "string"},
                "grade": {"type": "string"},
                "quantity": {"type": "number"},
                "distanceKm": {"type": "number"},
                "etaMinutes": {"type": "integer"},
                "createdAt": {"type": "string"},
                "warehouseId": {"type": "string"},
                "warehouseName": {"type": "string"},
                "warehouseLat": {"type": "number"},
                "warehouseLng": {"type": "number"}
            }
        },
        "TraderStats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "active": {"type": "integer"},
                "volume": {"type": "number"},
                "orders": {"type": "array", "items": {"$ref": "#/definitions/Order"}}
            }
        },
        "Warehouse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "region": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "capacity": {"type": "number"},
                "currentLoad": {"type": "number"},
                "loadPercent": {"type": "number"},
                "loadLevel": {"type": "string"},
                "address": {"type": "string"},
                "manager": {"type": "string"},
                "contact": {"type": "string"}
            }
        },
        "NewWarehouse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "region": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "capacity": {"type": "number"},
                "manager": {"type": "string"},
                "contact": {"type": "string"}
            }
        },
        "GeocodeResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "displayName": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Agri Allocation API",
	Description:      "Allocates farmer supply orders to the nearest warehouse with free capacity and estimates the delivery time.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
