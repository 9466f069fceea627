// Package vault registers the OpenAPI document for the vault HTTP API with
// swag, so the router can serve it at /swagger/. Keep it in step with the
// handler annotations in internal/vault/http.
package vault

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/credvault"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/livez": {
            "get": {
                "description": "Liveness probe returning uptime and version. Always 200 while the process is running.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/vaultsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe checking the database and the field cipher.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/vaultsdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/vaultsdk.HealthResponse"}}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "description": "Checks username and password, and the TOTP code when the operator has 2FA enabled. On success the session cookie is set.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Logged in", "schema": {"$ref": "#/definitions/vaultsdk.LoginResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "401": {"description": "Invalid credentials, or 2FA code required (require2FA set)", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.SuccessResponse"}}
                }
            }
        },
        "/v1/auth/2fa/setup": {
            "post": {
                "security": [{"SessionCookie": []}],
                "description": "Generates a new TOTP secret for the logged in operator. 2FA is not enforced until the secret is confirmed with /v1/auth/2fa/verify.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Start login 2FA enrolment",
                "responses": {
                    "200": {"description": "Secret, otpauth URL and QR code", "schema": {"$ref": "#/definitions/vaultsdk.TOTPSetupResponse"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "409": {"description": "2FA already enabled", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/auth/2fa/verify": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Confirm login 2FA enrolment",
                "parameters": [
                    {"description": "Current code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.TOTPCodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.SuccessResponse"}},
                    "400": {"description": "Invalid setup or invalid token", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/auth/2fa/disable": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Turn off login 2FA",
                "parameters": [
                    {"description": "Current code", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.TOTPCodeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.SuccessResponse"}},
                    "400": {"description": "2FA not enabled or invalid token", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/accounts": {
            "get": {
                "security": [{"SessionCookie": []}],
                "description": "Returns every account in display order, decrypted. Records that cannot be fully decrypted are returned with their optional fields cleared.",
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "List accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/vaultsdk.Account"}}},
                    "401": {"description": "Not logged in", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            },
            "post": {
                "security": [{"SessionCookie": []}],
                "description": "Encrypts and stores a new account at the end of the list.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Account", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.AccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/vaultsdk.Account"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "404": {"description": "Unknown group", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/accounts/export": {
            "get": {
                "security": [{"SessionCookie": []}],
                "description": "Downloads every account as pipe separated text or indented JSON.",
                "produces": ["text/plain", "application/json"],
                "tags": ["Accounts"],
                "summary": "Export accounts",
                "parameters": [
                    {"type": "string", "description": "text (default) or json", "name": "format", "in": "query"},
                    {"type": "string", "description": "display (default) or newest", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Export file", "schema": {"type": "string"}},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/accounts/reorder": {
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Reorder accounts",
                "parameters": [
                    {"description": "Account ids in display order", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.ReorderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/vaultsdk.Account"}}},
                    "400": {"description": "Duplicate ids", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "404": {"description": "Unknown id", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/accounts/{id}": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Get an account",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.Account"}},
                    "404": {"description": "No such account", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            },
            "put": {
                "security": [{"SessionCookie": []}],
                "description": "Replaces every field of the account. Its position in the list is kept.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Update an account",
                "parameters": [
                    {"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true},
                    {"description": "Account", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.AccountRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.Account"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "404": {"description": "No such account or group", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            },
            "delete": {
                "security": [{"SessionCookie": []}],
                "tags": ["Accounts"],
                "summary": "Delete an account",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "No such account", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/accounts/{id}/code": {
            "get": {
                "security": [{"SessionCookie": []}],
                "description": "Returns the account's current code and the seconds left in its window. A secret that is not valid base32 yields the \"------\" placeholder with valid=false.",
                "produces": ["application/json"],
                "tags": ["Codes"],
                "summary": "Current TOTP code",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.CodeResponse"}},
                    "404": {"description": "No such account, or account has no 2FA secret", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/accounts/{id}/code/stream": {
            "get": {
                "security": [{"SessionCookie": []}],
                "description": "Server-sent events, one per second. Events are named \"tick\" while the code is unchanged and \"refresh\" when a new window starts.",
                "produces": ["text/event-stream"],
                "tags": ["Codes"],
                "summary": "Stream TOTP codes",
                "parameters": [{"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Event data", "schema": {"$ref": "#/definitions/vaultsdk.CodeResponse"}},
                    "404": {"description": "No such account, or account has no 2FA secret", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/accounts/{id}/tags": {
            "patch": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tags"],
                "summary": "Set an account's tags",
                "parameters": [
                    {"type": "integer", "description": "Account ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comma separated tags", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.SetTagsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.SuccessResponse"}},
                    "404": {"description": "No such account", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/tags": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Tags"],
                "summary": "List tags",
                "responses": {
                    "200": {"description": "Distinct tags in first-seen order", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/v1/tags/accounts": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Tags"],
                "summary": "Accounts carrying a tag",
                "parameters": [{"type": "string", "description": "Tag to search for", "name": "from", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.TagCandidatesResponse"}},
                    "400": {"description": "Missing from", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/tags/replace": {
            "post": {
                "security": [{"SessionCookie": []}],
                "description": "Replaces fromTag with toTag on every account where it appears as a whole tag. All changes are made in one transaction.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tags"],
                "summary": "Rename a tag everywhere",
                "parameters": [
                    {"description": "Rename", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.TagReplaceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.TagReplaceResponse"}},
                    "400": {"description": "Missing or invalid tag", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/groups": {
            "get": {
                "security": [{"SessionCookie": []}],
                "produces": ["application/json"],
                "tags": ["Groups"],
                "summary": "List groups",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/vaultsdk.Group"}}}
                }
            },
            "post": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Groups"],
                "summary": "Create a group",
                "parameters": [
                    {"description": "Group", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.GroupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/vaultsdk.Group"}},
                    "400": {"description": "Group name is required", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "409": {"description": "A group with this name already exists", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        },
        "/v1/groups/{id}": {
            "put": {
                "security": [{"SessionCookie": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Groups"],
                "summary": "Rename a group",
                "parameters": [
                    {"type": "integer", "description": "Group ID", "name": "id", "in": "path", "required": true},
                    {"description": "Group", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/vaultsdk.GroupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/vaultsdk.Group"}},
                    "404": {"description": "No such group", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "409": {"description": "A group with this name already exists", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            },
            "delete": {
                "security": [{"SessionCookie": []}],
                "description": "Refused while any account still belongs to the group.",
                "tags": ["Groups"],
                "summary": "Delete a group",
                "parameters": [{"type": "integer", "description": "Group ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "No such group", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}},
                    "409": {"description": "Group still has accounts", "schema": {"$ref": "#/definitions/vaultsdk.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "vaultsdk.APIError": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "error": {"type": "string"},
                "require2FA": {"type": "boolean"}
            }
        },
        "vaultsdk.Account": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "dob": {"type": "string"},
                "email": {"type": "string"},
                "emailPassword": {"type": "string"},
                "group": {"$ref": "#/definitions/vaultsdk.GroupRef"},
                "groupId": {"type": "integer"},
                "id": {"type": "integer"},
                "order": {"type": "integer"},
                "password": {"type": "string"},
                "recoveryEmail": {"type": "string"},
                "tags": {"type": "string"},
                "twoFASecret": {"type": "string"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "vaultsdk.AccountRequest": {
            "type": "object",
            "properties": {
                "dob": {"type": "string"},
                "email": {"type": "string"},
                "emailPassword": {"type": "string"},
                "groupId": {"type": "integer"},
                "password": {"type": "string"},
                "recoveryEmail": {"type": "string"},
                "tags": {"type": "string"},
                "twoFASecret": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "vaultsdk.CodeResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "expiresAt": {"type": "string"},
                "refreshed": {"type": "boolean"},
                "remaining": {"type": "integer"},
                "valid": {"type": "boolean"}
            }
        },
        "vaultsdk.Group": {
            "type": "object",
            "properties": {
                "accountCount": {"type": "integer"},
                "createdAt": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "order": {"type": "integer"},
                "updatedAt": {"type": "string"}
            }
        },
        "vaultsdk.GroupRef": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "vaultsdk.GroupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}
            }
        },
        "vaultsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "cipher": {"type": "string"},
                "database": {"type": "string"}
            }
        },
        "vaultsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/vaultsdk.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "vaultsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "twoFactorCode": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "vaultsdk.LoginResponse": {
            "type": "object",
            "properties": {
                "expiresAt": {"type": "string"},
                "redirect": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "vaultsdk.ReorderRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "vaultsdk.SetTagsRequest": {
            "type": "object",
            "properties": {
                "tags": {"type": "string"}
            }
        },
        "vaultsdk.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        },
        "vaultsdk.TOTPCodeRequest": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        },
        "vaultsdk.TOTPSetupResponse": {
            "type": "object",
            "properties": {
                "otpauthUrl": {"type": "string"},
                "qrCodeUrl": {"type": "string"},
                "secret": {"type": "string"}
            }
        },
        "vaultsdk.TagCandidate": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "tags": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "vaultsdk.TagCandidatesResponse": {
            "type": "object",
            "properties": {
                "candidates": {"type": "array", "items": {"$ref": "#/definitions/vaultsdk.TagCandidate"}},
                "count": {"type": "integer"}
            }
        },
        "vaultsdk.TagReplaceRequest": {
            "type": "object",
            "properties": {
                "fromTag": {"type": "string"},
                "toTag": {"type": "string"}
            }
        },
        "vaultsdk.TagReplaceResponse": {
            "type": "object",
            "properties": {
                "matched": {"type": "integer"},
                "updated": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "SessionCookie": {
            "description": "Session token issued by /v1/auth/login.",
            "type": "apiKey",
            "name": "session-token",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Credential Vault API",
	Description:      "Stores third-party account credentials encrypted at rest and serves their TOTP codes.\n\nEvery route except login and the health probes requires a session, carried in the session-token cookie set by /v1/auth/login.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
