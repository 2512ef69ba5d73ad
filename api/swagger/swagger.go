package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CampusBoard API",
        "description": "Campus community board: posts, class and lecture reviews, merged feed",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Cookie-session login, registration and logout"},
        {"name": "Classes", "description": "Class registry"},
        {"name": "Posts", "description": "Posts, replies and likes"},
        {"name": "Reviews", "description": "Class reviews"},
        {"name": "LectureReviews", "description": "Per-lecture reviews"},
        {"name": "Feed", "description": "Merged timeline"},
        {"name": "Calendar", "description": "Per-user calendar settings"}
    ],
    "paths": {
        "/auth": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login or register",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AuthenticateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"},
                    "400": {"description": "Invalid payload or email already registered"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Register class",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or code already exists"}
                }
            }
        },
        "/classes/delete": {
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete class and dependents",
                "parameters": [
                    {"name": "id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/posts": {
            "get": {
                "tags": ["Posts"],
                "summary": "List posts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Posts"],
                "summary": "Create post",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/posts/delete": {
            "delete": {
                "tags": ["Posts"],
                "summary": "Delete own post",
                "parameters": [
                    {"name": "id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Not the author"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/posts/like": {
            "post": {
                "tags": ["Posts"],
                "summary": "Toggle like",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleLikeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Post not found"}
                }
            }
        },
        "/posts/replies": {
            "get": {
                "tags": ["Posts"],
                "summary": "List replies",
                "parameters": [
                    {"name": "postId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Posts"],
                "summary": "Reply to post",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReplyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Post not found"}
                }
            }
        },
        "/reviews": {
            "get": {
                "tags": ["Reviews"],
                "summary": "List class reviews",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Reviews"],
                "summary": "Create class review",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reviews/export": {
            "get": {
                "tags": ["Reviews"],
                "summary": "Export class reviews",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/lecture-reviews": {
            "get": {
                "tags": ["LectureReviews"],
                "summary": "List lecture reviews",
                "parameters": [
                    {"name": "classCode", "in": "query", "type": "string", "description": "Limit to one class"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found"}
                }
            },
            "post": {
                "tags": ["LectureReviews"],
                "summary": "Create lecture review",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLectureReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Class not found"}
                }
            }
        },
        "/lecture-reviews/next-number": {
            "get": {
                "tags": ["LectureReviews"],
                "summary": "Suggest next lecture number",
                "parameters": [
                    {"name": "classCode", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/feed": {
            "get": {
                "tags": ["Feed"],
                "summary": "Merged timeline",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/user/calendar-settings": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get calendar settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CalendarSettings"}}
                }
            },
            "post": {
                "tags": ["Calendar"],
                "summary": "Save calendar settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalendarSettings"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CalendarSettings"}}
                }
            }
        }
    },
    "definitions": {
        "AuthenticateRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"},
                "rememberMe": {"type": "boolean"},
                "isLogin": {"type": "boolean"}
            },
            "required": ["email", "password"]
        },
        "CreateClassRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "instructor": {"type": "string"},
                "semester": {"type": "string"}
            },
            "required": ["code", "name", "instructor", "semester"]
        },
        "CreatePostRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "maxLength": 280}
            },
            "required": ["content"]
        },
        "ToggleLikeRequest": {
            "type": "object",
            "properties": {
                "postId": {"type": "string"}
            },
            "required": ["postId"]
        },
        "CreateReplyRequest": {
            "type": "object",
            "properties": {
                "postId": {"type": "string"},
                "content": {"type": "string"}
            },
            "required": ["postId", "content"]
        },
        "CreateClassReviewRequest": {
            "type": "object",
            "properties": {
                "classCode": {"type": "string"},
                "className": {"type": "string"},
                "instructor": {"type": "string"},
                "semester": {"type": "string"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "content": {"type": "string"}
            },
            "required": ["classCode", "rating", "content"]
        },
        "CreateLectureReviewRequest": {
            "type": "object",
            "properties": {
                "classCode": {"type": "string"},
                "lectureTitle": {"type": "string"},
                "lectureNumber": {"type": "integer"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "content": {"type": "string"}
            },
            "required": ["classCode", "lectureTitle", "rating", "content"]
        },
        "CalendarSettings": {
            "type": "object",
            "properties": {
                "calendarId": {"type": "string"},
                "apiKey": {"type": "string"},
                "embedCode": {"type": "string"}
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
