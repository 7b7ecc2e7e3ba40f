package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TutorTrack API",
        "description": "Single-tenant tutoring attendance tracker",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Sign-in and session management"},
        {"name": "Attendance", "description": "Attendance records and the monthly present cap"},
        {"name": "Reports", "description": "Monthly report exports"},
        {"name": "System", "description": "Health and schema initialization"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Environment and database probe",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/init-db": {
            "get": {
                "tags": ["System"],
                "summary": "Idempotently create tables, view, and default student",
                "responses": {
                    "200": {"description": "Initialized (or already initialized)"},
                    "401": {"description": "No session"}
                }
            }
        },
        "/api/auth/providers": {
            "get": {
                "tags": ["Auth"],
                "summary": "List enabled authentication strategies",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the current session",
                "responses": {
                    "200": {"description": "Signed out"},
                    "401": {"description": "No session"}
                }
            }
        },
        "/api/auth/session": {
            "get": {
                "tags": ["Auth"],
                "summary": "Describe the current session and its user",
                "responses": {
                    "200": {"description": "Session user and expiry"},
                    "401": {"description": "No session or deleted account"}
                }
            }
        },
        "/api/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List records with a present-day count",
                "parameters": [
                    {"name": "month", "in": "query", "type": "integer"},
                    {"name": "year", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid month/year"},
                    "401": {"description": "No session"}
                }
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Create or overwrite the record for a date",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stored record"},
                    "400": {"description": "Validation or monthly cap failure"},
                    "401": {"description": "No session"}
                }
            },
            "put": {
                "tags": ["Attendance"],
                "summary": "Overwrite a record's mutable fields by id",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stored record"},
                    "404": {"description": "Unknown id"}
                }
            },
            "delete": {
                "tags": ["Attendance"],
                "summary": "Delete a record by id",
                "parameters": [
                    {"name": "id", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Unknown id"}
                }
            }
        },
        "/api/report": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export a monthly report as PDF or Excel",
                "parameters": [
                    {"name": "month", "in": "query", "type": "integer", "required": true},
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "excel"], "required": true}
                ],
                "responses": {
                    "200": {"description": "Attachment stream"},
                    "400": {"description": "Missing or invalid parameters"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "UpsertAttendanceRequest": {
            "type": "object",
            "required": ["date", "status"],
            "properties": {
                "date": {"type": "string", "example": "2025-08-03"},
                "status": {"type": "string", "enum": ["Present", "Absent"]},
                "topic": {"type": "string"},
                "startTime": {"type": "string", "example": "16:00"},
                "endTime": {"type": "string", "example": "17:30"}
            }
        },
        "UpdateAttendanceRequest": {
            "type": "object",
            "required": ["id", "status"],
            "properties": {
                "id": {"type": "integer"},
                "status": {"type": "string", "enum": ["Present", "Absent"]},
                "topic": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
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
