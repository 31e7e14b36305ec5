package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the OpenAPI document and a Swagger UI page:
// GET /swagger/index.html and GET /swagger/doc.json.
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>useradmin - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "useradmin", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "CallableError": { "type": "object", "properties": { "error": { "type": "object", "properties": { "status": { "type": "string", "enum": ["INVALID_ARGUMENT", "UNAUTHENTICATED", "PERMISSION_DENIED", "NOT_FOUND", "RESOURCE_EXHAUSTED", "INTERNAL"] }, "message": { "type": "string" } } } } },
      "ResultEnvelope": { "type": "object", "properties": { "result": { "type": "object", "properties": { "result": { "type": "string" } } } } }
    }
  },
  "security": [ { "bearer": [] } ],
  "paths": {
    "/createUser": {
      "post": {
        "summary": "Create an identity and its profile document (admin only)",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "data": { "type": "object", "properties": { "email": {"type":"string"}, "password": {"type":"string"}, "name": {"type":"string"}, "phone": {"type":"string"}, "role": {"type":"string"} } } } } } } },
        "responses": { "200": { "description": "created", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ResultEnvelope" } } } }, "403": { "description": "PERMISSION_DENIED" }, "500": { "description": "INTERNAL" } }
      }
    },
    "/setUserActiveStatus": {
      "post": {
        "summary": "Enable or disable a user (admin only)",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "data": { "type": "object", "properties": { "uid": {"type":"string"}, "isActive": {"type":"boolean"} } } } } } } },
        "responses": { "200": { "description": "status updated" }, "403": { "description": "PERMISSION_DENIED" }, "500": { "description": "INTERNAL" } }
      }
    },
    "/updateUser": {
      "post": {
        "summary": "Update profile fields and display name (admin only)",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "data": { "type": "object", "properties": { "uid": {"type":"string"}, "name": {"type":"string"}, "phone": {"type":"string"}, "role": {"type":"string"} } } } } } } },
        "responses": { "200": { "description": "updated" }, "403": { "description": "PERMISSION_DENIED" }, "500": { "description": "INTERNAL" } }
      }
    },
    "/setAdminRole": {
      "post": {
        "summary": "Replace a user's custom claims with {admin: true} (admin only)",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "data": { "type": "object", "properties": { "email": {"type":"string"} } } } } } } },
        "responses": { "200": { "description": "granted" }, "403": { "description": "PERMISSION_DENIED" }, "500": { "description": "INTERNAL" } }
      }
    },
    "/auth/login": {
      "post": {
        "summary": "Password login",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "tokens returned" }, "401": { "description": "invalid credentials" }, "403": { "description": "account disabled" } }
      }
    },
    "/auth/refresh": {
      "post": { "summary": "Refresh access token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}}}}}, "responses": { "200": { "description": "new access token" }, "401": { "description": "invalid refresh" }, "403": { "description": "account disabled" } } }
    },
    "/auth/logout": {
      "post": { "summary": "Logout and invalidate refresh token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refresh_token":{"type":"string"}}}}}}, "responses": { "200": { "description": "logged out" } } }
    },
    "/api/v1/me": {
      "get": { "summary": "Get the caller's profile", "responses": { "200": { "description": "profile" }, "404": { "description": "no profile" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
