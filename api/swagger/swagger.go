package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Planner API",
        "description": "Generates clash-free, ranked course timetables from module indexes and a preference profile",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Timetables", "description": "Combination generation and export"},
        {"name": "Catalogue", "description": "Module and index lookups"},
        {"name": "Observability", "description": "Health and metrics"}
    ],
    "paths": {
        "/timetables/generate": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Generate ranked timetable combinations",
                "description": "Supply either inline modules or a semester with module codes. Omitted filter fields keep their permissive defaults.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Ranked combinations", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown module codes", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetables/export": {
            "post": {
                "tags": ["Timetables"],
                "summary": "Download one combination as CSV or PDF",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Timetable file", "schema": {"type": "file"}},
                    "400": {"description": "Invalid payload or two indexes of one module", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown module or index", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Picked indexes clash", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/modules/{code}/indexes": {
            "get": {
                "tags": ["Catalogue"],
                "summary": "List the indexes of a module",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Module with indexes", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Module not offered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalogue/{semester}/invalidate": {
            "post": {
                "tags": ["Catalogue"],
                "summary": "Drop cached catalogue entries for a semester",
                "parameters": [
                    {"name": "semester", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Invalidated"}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Runtime metrics snapshot",
                "responses": {
                    "200": {"description": "Snapshot", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ClassSession": {
            "type": "object",
            "required": ["type", "day", "startTime", "endTime"],
            "properties": {
                "type": {"type": "string", "example": "LEC/STUDIO"},
                "group": {"type": "string", "example": "T3"},
                "day": {"type": "string", "example": "MON"},
                "startTime": {"type": "string", "example": "0930"},
                "endTime": {"type": "string", "example": "1120"},
                "venue": {"type": "string", "example": "LT19"},
                "weeks": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "Index": {
            "type": "object",
            "properties": {
                "indexNumber": {"type": "string", "example": "10101"},
                "classes": {"type": "array", "items": {"$ref": "#/definitions/ClassSession"}}
            }
        },
        "Module": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "SC1007"},
                "indexes": {"type": "array", "items": {"$ref": "#/definitions/Index"}}
            }
        },
        "Range": {
            "type": "object",
            "properties": {
                "min": {"type": "number"},
                "max": {"type": "number"},
                "enabled": {"type": "boolean"}
            }
        },
        "Filters": {
            "type": "object",
            "properties": {
                "dayDuration": {"$ref": "#/definitions/Range"},
                "consecutiveClasses": {"$ref": "#/definitions/Range"},
                "gapsBetweenClasses": {"$ref": "#/definitions/Range"},
                "dayStartEnd": {
                    "type": "object",
                    "properties": {
                        "startAfter": {"type": "string", "example": "0800"},
                        "endBefore": {"type": "string", "example": "2200"},
                        "startEnabled": {"type": "boolean"},
                        "endEnabled": {"type": "boolean"}
                    }
                },
                "daysOfWeek": {
                    "type": "object",
                    "properties": {
                        "monday": {"type": "boolean"},
                        "tuesday": {"type": "boolean"},
                        "wednesday": {"type": "boolean"},
                        "thursday": {"type": "boolean"},
                        "friday": {"type": "boolean"},
                        "saturday": {"type": "boolean"},
                        "sunday": {"type": "boolean"}
                    }
                },
                "dailyLoad": {
                    "type": "object",
                    "properties": {
                        "preference": {"type": "string", "enum": ["balanced", "skewed"]},
                        "enabled": {"type": "boolean"}
                    }
                },
                "classesToConsider": {
                    "type": "object",
                    "properties": {
                        "tutorial": {"type": "boolean"},
                        "lab": {"type": "boolean"},
                        "seminar": {"type": "boolean"},
                        "lecture": {"type": "boolean"},
                        "project": {"type": "boolean"},
                        "design": {"type": "boolean"}
                    }
                },
                "venuePreference": {
                    "type": "object",
                    "properties": {
                        "includeOnline": {"type": "boolean"},
                        "includeInPerson": {"type": "boolean"}
                    }
                },
                "generationGoals": {
                    "type": "object",
                    "properties": {
                        "balanceWorkload": {"type": "boolean"},
                        "minimizeDays": {"type": "boolean"},
                        "consecutiveDays": {"type": "boolean"}
                    }
                }
            }
        },
        "Pick": {
            "type": "object",
            "required": ["moduleCode", "indexNumber"],
            "properties": {
                "moduleCode": {"type": "string"},
                "indexNumber": {"type": "string"}
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "semester": {"type": "string", "example": "2025_1"},
                "moduleCodes": {"type": "array", "items": {"type": "string"}},
                "modules": {"type": "array", "items": {"$ref": "#/definitions/Module"}},
                "filters": {"$ref": "#/definitions/Filters"}
            }
        },
        "ExportTimetableRequest": {
            "type": "object",
            "required": ["format", "picks"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "title": {"type": "string"},
                "semester": {"type": "string"},
                "picks": {"type": "array", "items": {"$ref": "#/definitions/Pick"}},
                "modules": {"type": "array", "items": {"$ref": "#/definitions/Module"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
