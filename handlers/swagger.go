package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers Swagger/OpenAPI endpoints for the catalog API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>cinenotes API</title>
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

// OpenAPI document for the catalog API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "cinenotes", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Movie": { "type": "object", "properties": { "_id": {"type":"string"}, "title": {"type":"string"}, "category": {"type":"string"}, "image": {"type":"string"}, "description": {"type":"string"}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "Comment": { "type": "object", "properties": { "_id": {"type":"string"}, "text": {"type":"string","maxLength":500}, "username": {"type":"string"}, "movieId": {"type":"string"}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "Envelope": { "type": "object", "properties": { "success": {"type":"boolean"}, "data": {}, "message": {"type":"string"} } }
    }
  },
  "paths": {
    "/api/movies": {
      "get": { "summary": "List movies (Cache-Control: no-store)", "responses": { "200": { "description": "movies" }, "500": { "description": "server error" } } },
      "post": { "summary": "Create a movie", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title","category","image","description"],"properties":{"title":{"type":"string"},"category":{"type":"string"},"image":{"type":"string"},"description":{"type":"string"}}}}}}, "responses": { "201": { "description": "created" }, "400": { "description": "missing fields" } } }
    },
    "/api/movies/{id}": {
      "get": { "summary": "Get a movie", "responses": { "200": { "description": "movie" }, "404": { "description": "invalid id or not found" } } },
      "put": { "summary": "Partially update a movie", "responses": { "200": { "description": "updated" }, "404": { "description": "invalid id or not found" } } },
      "delete": { "summary": "Delete a movie (idempotent, comments are kept)", "responses": { "200": { "description": "deleted" }, "404": { "description": "invalid id" } } }
    },
    "/api/movies/posters": {
      "post": { "summary": "Upload a poster image (multipart field: image)", "responses": { "201": { "description": "url returned" }, "400": { "description": "missing or non-image file" }, "503": { "description": "storage not configured" } } }
    },
    "/api/comments/movie/{movieId}": {
      "get": { "summary": "List up to 100 comments, newest first", "responses": { "200": { "description": "comments" }, "404": { "description": "invalid id" } } },
      "post": { "summary": "Comment on a movie", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"text":{"type":"string"},"username":{"type":"string"}}}}}}, "responses": { "201": { "description": "created" }, "400": { "description": "missing or oversized" }, "404": { "description": "invalid id or movie absent" } } }
    },
    "/api/comments/{commentId}": {
      "put": { "summary": "Edit own comment", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"text":{"type":"string"},"username":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated" }, "403": { "description": "not owner" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete own comment", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"}}}}}}, "responses": { "200": { "description": "deleted" }, "400": { "description": "missing username" }, "403": { "description": "not owner" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
