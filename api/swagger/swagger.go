package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Portal API",
        "description": "Online course portal: enrollment, progress tracking and content delivery",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Registration and login for both roles"},
        {"name": "Student", "description": "Learner profile, enrollment, progress, certificates, messages"},
        {"name": "Courses", "description": "Catalog, course view and content delivery"},
        {"name": "Reviews", "description": "Course reviews"},
        {"name": "Admin", "description": "Roster, dashboard, course and certificate management"}
    ],
    "paths": {
        "/student/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error or email taken"}
                }
            }
        },
        "/student/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/admin/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register an administrator account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error or email taken"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate an administrator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List the course catalog",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/student/enroll/{courseID}": {
            "post": {
                "tags": ["Student"],
                "summary": "Enroll in a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Enrolled"},
                    "400": {"description": "Already enrolled"},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/student/course/{courseID}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get an enrolled course with normalized content",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not enrolled"},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/student/course/{courseID}/mark-complete": {
            "post": {
                "tags": ["Courses"],
                "summary": "Mark a content item completed",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseID", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkCompleteRequest"}}
                ],
                "responses": {
                    "200": {"description": "Recorded (idempotent)"},
                    "400": {"description": "content_id missing"}
                }
            }
        },
        "/student/course/{courseID}/download/{contentID}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Download a file content item (attachment)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseID", "in": "path", "required": true, "type": "string"},
                    {"name": "contentID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File bytes"},
                    "403": {"description": "Not enrolled or path rejected"},
                    "404": {"description": "Course, content or file missing"}
                }
            }
        },
        "/student/course/{courseID}/view/{contentID}": {
            "get": {
                "tags": ["Courses"],
                "summary": "View a file content item inline where the format allows",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseID", "in": "path", "required": true, "type": "string"},
                    {"name": "contentID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File bytes"},
                    "403": {"description": "Not enrolled or path rejected"},
                    "404": {"description": "Course, content or file missing"}
                }
            }
        },
        "/student/enrolled-courses": {
            "get": {
                "tags": ["Student"],
                "summary": "List enrolled courses",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/student/progress": {
            "get": {
                "tags": ["Student"],
                "summary": "Progress percentages for every enrolled course",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/student/dashboard-stats": {
            "get": {
                "tags": ["Student"],
                "summary": "Learner dashboard statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/student/certificates": {
            "get": {
                "tags": ["Student"],
                "summary": "List issued certificates",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/student/certificates/{courseID}/pdf": {
            "get": {
                "tags": ["Student"],
                "summary": "Download a certificate as PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF bytes"},
                    "404": {"description": "No certificate for this course"}
                }
            }
        },
        "/student/profile": {
            "get": {
                "tags": ["Student"],
                "summary": "Get own profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Student"],
                "summary": "Partially update own profile",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}
                ],
                "responses": {"200": {"description": "Updated"}, "400": {"description": "Email taken"}}
            },
            "delete": {
                "tags": ["Student"],
                "summary": "Delete own account",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/student/messages": {
            "get": {
                "tags": ["Student"],
                "summary": "List messages from administrators",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Student"],
                "summary": "Send a message to the administrators",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendMessageRequest"}}
                ],
                "responses": {"201": {"description": "Sent"}}
            }
        },
        "/reviews": {
            "post": {
                "tags": ["Reviews"],
                "summary": "Submit a course review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitReviewRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}
            }
        },
        "/admin/profile": {
            "get": {
                "tags": ["Admin"],
                "summary": "Get own profile",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["Admin"],
                "summary": "Partially update own profile",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}
                ],
                "responses": {"200": {"description": "Updated"}}
            },
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete own account",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/admin/dashboard-stats": {
            "get": {
                "tags": ["Admin"],
                "summary": "Fleet-wide dashboard statistics",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/students": {
            "get": {
                "tags": ["Admin"],
                "summary": "List the student roster",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/students/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Remove a student account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Student not found"}}
            }
        },
        "/admin/students/{id}/allow-certificate": {
            "post": {
                "tags": ["Admin"],
                "summary": "Grant a completion certificate",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AllowCertificateRequest"}}
                ],
                "responses": {"200": {"description": "Granted"}, "404": {"description": "Student or course not found"}}
            }
        },
        "/admin/courses": {
            "get": {
                "tags": ["Admin"],
                "summary": "List every course with full content",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/courses/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Course not found"}}
            }
        },
        "/courses/no-file": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create a course without content",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/admin/upload": {
            "post": {
                "tags": ["Admin"],
                "summary": "Upload course content (file or YouTube link)",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "course_id", "in": "formData", "required": true, "type": "string"},
                    {"name": "file", "in": "formData", "required": false, "type": "file"},
                    {"name": "youtube_link", "in": "formData", "required": false, "type": "string"}
                ],
                "responses": {"201": {"description": "Uploaded"}, "404": {"description": "Course not found"}}
            }
        },
        "/admin/messages": {
            "get": {
                "tags": ["Admin"],
                "summary": "List the shared inbox of student messages",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Send a message to a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminMessageRequest"}}
                ],
                "responses": {"201": {"description": "Sent"}, "404": {"description": "Student not found"}}
            }
        },
        "/admin/reviews": {
            "get": {
                "tags": ["Admin"],
                "summary": "List every course review",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["full_name", "email", "password", "date_of_birth", "gender", "security_question", "security_answer"],
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 4},
                "date_of_birth": {"type": "string"},
                "gender": {"type": "string"},
                "security_question": {"type": "string"},
                "security_answer": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "date_of_birth": {"type": "string"},
                "gender": {"type": "string"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["title", "description"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "MarkCompleteRequest": {
            "type": "object",
            "required": ["content_id"],
            "properties": {
                "content_id": {"type": "string"}
            }
        },
        "AllowCertificateRequest": {
            "type": "object",
            "required": ["course_id"],
            "properties": {
                "course_id": {"type": "string"}
            }
        },
        "SendMessageRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {
                "message": {"type": "string"}
            }
        },
        "AdminMessageRequest": {
            "type": "object",
            "required": ["student_id", "message"],
            "properties": {
                "student_id": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "SubmitReviewRequest": {
            "type": "object",
            "required": ["course_id", "rating"],
            "properties": {
                "course_id": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "comment": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
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
