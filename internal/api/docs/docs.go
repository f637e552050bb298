// Package docs registers the OpenAPI document served under /swagger/.
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
        "/module-versions": {
            "post": {
                "description": "Store the parameter schema of one module version",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["modules"],
                "summary": "Register a module version",
                "parameters": [
                    {
                        "description": "Module version",
                        "name": "version",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.ModuleVersion"}
                    }
                ],
                "responses": {
                    "201": {"description": "Stored module version", "schema": {"$ref": "#/definitions/model.ModuleVersion"}},
                    "400": {"description": "Invalid request payload", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/module-versions/{id}": {
            "get": {
                "description": "Retrieve the parameter schema of one module version",
                "produces": ["application/json"],
                "tags": ["modules"],
                "summary": "Get module version",
                "parameters": [
                    {"type": "string", "description": "Module version ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Module version", "schema": {"$ref": "#/definitions/model.ModuleVersion"}},
                    "404": {"description": "Module version not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/modules": {
            "post": {
                "description": "Store a module with the libraries it needs at runtime",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["modules"],
                "summary": "Register a module",
                "parameters": [
                    {
                        "description": "Module",
                        "name": "module",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.Module"}
                    }
                ],
                "responses": {
                    "201": {"description": "Stored module", "schema": {"$ref": "#/definitions/model.Module"}},
                    "400": {"description": "Invalid request payload", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/topologies": {
            "get": {
                "description": "Get all translations with their status, newest first",
                "produces": ["application/json"],
                "tags": ["topologies"],
                "summary": "List translations",
                "responses": {
                    "200": {"description": "List of translations", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Translation"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Translate a pipeline model into an execution descriptor, store the run and write its workspace",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["topologies"],
                "summary": "Translate a topology",
                "parameters": [
                    {
                        "description": "Pipeline model",
                        "name": "topology",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.Topology"}
                    }
                ],
                "responses": {
                    "201": {"description": "Translation result", "schema": {"$ref": "#/definitions/translation.Outcome"}},
                    "400": {"description": "Invalid request payload", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "422": {"description": "Topology cannot be translated", "schema": {"$ref": "#/definitions/handler.FailedTranslation"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/topologies/{id}": {
            "get": {
                "description": "Retrieve a translation with its pipeline model, descriptor and dependencies",
                "produces": ["application/json"],
                "tags": ["topologies"],
                "summary": "Get translation",
                "parameters": [
                    {"type": "string", "description": "Translation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Translation", "schema": {"$ref": "#/definitions/model.Translation"}},
                    "404": {"description": "Translation not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Delete a translation record, its diagnostics, errors and workspace",
                "tags": ["topologies"],
                "summary": "Delete translation",
                "parameters": [
                    {"type": "string", "description": "Translation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Translation not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/topologies/{id}/descriptor": {
            "get": {
                "description": "Retrieve the execution descriptor produced by a translation",
                "produces": ["application/json"],
                "tags": ["topologies"],
                "summary": "Get descriptor",
                "parameters": [
                    {"type": "string", "description": "Translation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Execution descriptor", "schema": {"$ref": "#/definitions/model.Descriptor"}},
                    "404": {"description": "Translation or descriptor not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/topologies/{id}/diagnostics": {
            "get": {
                "description": "Retrieve the nodes, parameters and wires skipped during translation",
                "produces": ["application/json"],
                "tags": ["topologies"],
                "summary": "Get diagnostics",
                "parameters": [
                    {"type": "string", "description": "Translation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Diagnostics", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/topologies/{id}/errors": {
            "get": {
                "description": "Retrieve the errors that made a translation fail",
                "produces": ["application/json"],
                "tags": ["topologies"],
                "summary": "Get translation errors",
                "parameters": [
                    {"type": "string", "description": "Translation ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Translation errors", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.FailedTranslation": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "translation": {"$ref": "#/definitions/model.Translation"},
                "diagnostics": {"type": "array", "items": {"$ref": "#/definitions/model.Diagnostic"}}
            }
        },
        "model.Component": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "class": {"type": "string"},
                "script": {"type": "string"},
                "language": {"type": "string"},
                "abstractionId": {"type": "string"},
                "parallelism": {"type": "string"},
                "sources": {"type": "array", "items": {"$ref": "#/definitions/model.Source"}},
                "params": {"type": "object", "additionalProperties": true}
            }
        },
        "model.Dependency": {
            "type": "object",
            "properties": {
                "groupId": {"type": "string"},
                "artifactId": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "model.Descriptor": {
            "type": "object",
            "properties": {
                "properties": {"type": "object", "additionalProperties": true},
                "builderConfig": {
                    "type": "object",
                    "properties": {
                        "ingress": {"type": "array", "items": {"$ref": "#/definitions/model.Component"}},
                        "processing": {"type": "array", "items": {"$ref": "#/definitions/model.Component"}},
                        "egress": {"type": "array", "items": {"$ref": "#/definitions/model.Component"}}
                    }
                }
            }
        },
        "model.Diagnostic": {
            "type": "object",
            "properties": {
                "element": {"type": "string"},
                "index": {"type": "integer"},
                "name": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "model.Endpoint": {
            "type": "object",
            "properties": {
                "node": {"type": "integer"},
                "terminal": {"type": "string"}
            }
        },
        "model.Field": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "label": {"type": "string"},
                "required": {"type": "boolean"},
                "default": {}
            }
        },
        "model.Library": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "url": {"type": "string"},
                "groupId": {"type": "string"},
                "artifactId": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "model.Module": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"},
                "language": {"type": "string"},
                "libraries": {"type": "array", "items": {"$ref": "#/definitions/model.Library"}}
            }
        },
        "model.ModuleVersion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "moduleId": {"type": "string"},
                "versionCode": {"type": "integer"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/model.Field"}}
            }
        },
        "model.Node": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "language": {"type": "string"},
                "name": {"type": "string"},
                "params": {"type": "object", "additionalProperties": true},
                "moduleId": {"type": "string"},
                "versionCode": {},
                "moduleVersionId": {"type": "string"},
                "parallelism": {}
            }
        },
        "model.Source": {
            "type": "object",
            "properties": {
                "sourceId": {"type": "string"},
                "streamId": {"type": "string"},
                "grouping": {"type": "string"}
            }
        },
        "model.Topology": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "properties": {"type": "object", "additionalProperties": true},
                "variables": {"type": "object", "additionalProperties": true},
                "nodes": {"type": "array", "items": {"$ref": "#/definitions/model.Node"}},
                "wires": {"type": "array", "items": {"$ref": "#/definitions/model.Wire"}}
            }
        },
        "model.Translation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "status": {"type": "string"},
                "topology": {"$ref": "#/definitions/model.Topology"},
                "descriptor": {"$ref": "#/definitions/model.Descriptor"},
                "dependencies": {"type": "array", "items": {"$ref": "#/definitions/model.Dependency"}},
                "workspace": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.Wire": {
            "type": "object",
            "properties": {
                "src": {"$ref": "#/definitions/model.Endpoint"},
                "tgt": {"$ref": "#/definitions/model.Endpoint"}
            }
        },
        "translation.Outcome": {
            "type": "object",
            "properties": {
                "translation": {"$ref": "#/definitions/model.Translation"},
                "diagnostics": {"type": "array", "items": {"$ref": "#/definitions/model.Diagnostic"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Topology Builder API",
	Description:      "Translates visual pipeline graphs into stream runtime execution descriptors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
