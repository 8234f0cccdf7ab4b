// Package docs registers the Courtside OpenAPI document with swag so
// http-swagger can serve it at /docs. It follows swag's generated layout and
// is kept in step with the @Router annotations on the handlers by hand.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Courtside"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API root info",
                "description": "Returns API name, version and status.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "description": "Returns basic health status, timestamp and player index size.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health/cache": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Cache health check",
                "description": "Returns response cache statistics for the active backend.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health/db": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Database health check",
                "description": "Verifies Postgres connectivity.",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "204": {"description": "Logged out"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/signup": {
            "post": {
                "description": "Creates a user account. Passwords must match and be at least 8 characters.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign up",
                "parameters": [
                    {"description": "Signup form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/players/lookup": {
            "get": {
                "description": "Returns the first player whose full name matches the title-cased query.",
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Look up a player",
                "parameters": [
                    {"type": "string", "maxLength": 100, "description": "Player name", "name": "name", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Name missing or longer than 100 characters", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/players/search": {
            "get": {
                "description": "Case-insensitive full-name match on the title-cased query, falling back to fuzzy ranking when nothing matches.",
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Search players",
                "parameters": [
                    {"type": "string", "maxLength": 100, "description": "Player name or part of it", "name": "name", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Name missing or longer than 100 characters", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/players/{playerID}": {
            "get": {
                "description": "Career totals and per-game rates. option selects the season breakdown; an unknown option is reported in option_error and treated as no selection.",
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Get player details",
                "parameters": [
                    {"type": "integer", "description": "NBA player ID", "name": "playerID", "in": "path", "required": true},
                    {"enum": ["---", "Reg. Season", "Post Season"], "type": "string", "description": "Season category", "name": "option", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PlayerDetailsResponse"}},
                    "304": {"description": "Not modified"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/profiles/{playerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Get player profile",
                "parameters": [
                    {"type": "integer", "description": "NBA player ID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ProfileResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/profiles/{playerID}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "List comments",
                "parameters": [
                    {"type": "integer", "description": "NBA player ID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Add comment",
                "parameters": [
                    {"type": "integer", "description": "NBA player ID", "name": "playerID", "in": "path", "required": true},
                    {"description": "Comment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/store.Comment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/profiles/{playerID}/snapshots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "List snapshots",
                "parameters": [
                    {"type": "integer", "description": "NBA player ID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Capture snapshot",
                "parameters": [
                    {"type": "integer", "description": "NBA player ID", "name": "playerID", "in": "path", "required": true},
                    {"description": "Snapshot label", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SnapshotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/store.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/roster": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["roster"],
                "summary": "Get roster",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/roster/{playerID}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["roster"],
                "summary": "Add player to roster",
                "parameters": [
                    {"type": "integer", "description": "NBA player ID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["roster"],
                "summary": "Remove player from roster",
                "parameters": [
                    {"type": "integer", "description": "NBA player ID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CommentRequest": {
            "type": "object",
            "properties": {"body": {"type": "string"}}
        },
        "handler.LoginRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handler.PlayerDetailsResponse": {
            "type": "object",
            "properties": {
                "career_per_game": {"$ref": "#/definitions/stats.Rates"},
                "career_stats": {"type": "object", "additionalProperties": true},
                "chosen_stats": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "chosen_title": {"type": "string"},
                "headshot_url": {"type": "string"},
                "option_error": {"type": "string"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/stats.Option"}},
                "player": {"$ref": "#/definitions/provider.PlayerInfo"},
                "player_id": {"type": "integer"},
                "player_name": {"type": "string"},
                "selected": {"type": "string"}
            }
        },
        "handler.ProfileResponse": {
            "type": "object",
            "properties": {
                "comments": {"type": "array", "items": {"$ref": "#/definitions/store.Comment"}},
                "profile": {"$ref": "#/definitions/store.PlayerProfile"},
                "snapshots": {"type": "array", "items": {"$ref": "#/definitions/store.Snapshot"}}
            }
        },
        "handler.SignupRequest": {
            "type": "object",
            "properties": {
                "confirm_password": {"type": "string"},
                "email": {"type": "string"},
                "favorite_team": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.SnapshotRequest": {
            "type": "object",
            "properties": {"label": {"type": "string"}}
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {
                "expires_at": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/store.User"}
            }
        },
        "provider.PlayerInfo": {
            "type": "object",
            "properties": {
                "country": {"type": "string"},
                "first_name": {"type": "string"},
                "from_year": {"type": "integer"},
                "headshot_url": {"type": "string"},
                "height": {"type": "string"},
                "id": {"type": "integer"},
                "jersey": {"type": "string"},
                "last_name": {"type": "string"},
                "name": {"type": "string"},
                "position": {"type": "string"},
                "team_abbreviation": {"type": "string"},
                "team_city": {"type": "string"},
                "team_name": {"type": "string"},
                "to_year": {"type": "integer"},
                "weight": {"type": "string"}
            }
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "detail": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/respond.ErrorBody"}
            }
        },
        "stats.Option": {
            "type": "object",
            "properties": {"label": {"type": "string"}, "value": {"type": "string"}}
        },
        "stats.Rates": {
            "type": "object",
            "properties": {
                "APG": {"type": "number"},
                "BLKPG": {"type": "number"},
                "PPG": {"type": "number"},
                "RPG": {"type": "number"},
                "STLPG": {"type": "number"}
            }
        },
        "store.Comment": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "player_id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "store.PlayerProfile": {
            "type": "object",
            "properties": {
                "background_colour": {"type": "string"},
                "player_id": {"type": "integer"},
                "player_image_url": {"type": "string"},
                "player_name": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "store.Snapshot": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "label": {"type": "string"},
                "payload": {"type": "object", "additionalProperties": true},
                "player_id": {"type": "integer"},
                "user_id": {"type": "integer"}
            }
        },
        "store.User": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "favorite_team": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"}
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
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Courtside API",
	Description:      "NBA player stats: career totals, per-game rates, season breakdowns, rosters and player profiles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
