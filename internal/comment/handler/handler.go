package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/comment/service"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/response"
)

type commentRequest struct {
	Text     string `json:"text"`
	Username string `json:"username"`
}

// bindOptional decodes a JSON body; an absent body leaves req zero-valued so
// the service reports which fields are missing.
func bindOptional(c *gin.Context, req *commentRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// RegisterCommentRoutes registers the comment thread endpoints under /comments.
func RegisterCommentRoutes(rg *gin.RouterGroup, svc *service.Service) {
	g := rg.Group("/comments")

	g.GET("/movie/:movieId", func(c *gin.Context) {
		list, err := svc.ListByMovie(c.Request.Context(), c.Param("movieId"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, list)
	})

	g.POST("/movie/:movieId", func(c *gin.Context) {
		var req commentRequest
		if !bindOptional(c, &req) {
			return
		}
		created, err := svc.Create(c.Request.Context(), c.Param("movieId"), req.Text, req.Username)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusCreated, created)
	})

	g.PUT("/:commentId", func(c *gin.Context) {
		var req commentRequest
		if !bindOptional(c, &req) {
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("commentId"), req.Text, req.Username)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Data(c, http.StatusOK, updated)
	})

	g.DELETE("/:commentId", func(c *gin.Context) {
		var req commentRequest
		if !bindOptional(c, &req) {
			return
		}
		if err := svc.Delete(c.Request.Context(), c.Param("commentId"), req.Username); err != nil {
			response.Error(c, err)
			return
		}
		response.Message(c, http.StatusOK, "Comment deleted successfully!")
	})
}
