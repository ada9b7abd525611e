package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie/service"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/logger"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/middleware"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/response"
)

// MaxPosterBytes caps poster uploads.
const MaxPosterBytes = 5 << 20

// PosterStore persists poster images and returns a URL usable as Movie.Image.
type PosterStore interface {
	UploadPoster(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
}

// Handler exposes the movie catalog over HTTP.
type Handler struct {
	svc     *service.Service
	posters PosterStore
}

// NewHandler builds a handler. posters may be nil, in which case uploads answer 503.
func NewHandler(svc *service.Service, posters PosterStore) *Handler {
	return &Handler{svc: svc, posters: posters}
}

// Register routes under /movies
func (h *Handler) Register(rg *gin.RouterGroup) {
	m := rg.Group("/movies")
	m.GET("", middleware.NoStore(), h.List)
	m.POST("", h.Create)
	m.POST("/posters", h.UploadPoster)
	m.GET("/:id", h.Get)
	m.PUT("/:id", h.Update)
	m.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, m)
}

func (h *Handler) Create(c *gin.Context) {
	var req movie.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	m, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusCreated, m)
}

// Update applies a partial payload; an empty body is an empty patch.
func (h *Handler) Update(c *gin.Context) {
	var req movie.Patch
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	m, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Data(c, http.StatusOK, m)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Movie Deleted!")
}

// UploadPoster accepts a multipart "image" file and answers with its public URL.
func (h *Handler) UploadPoster(c *gin.Context) {
	if h.posters == nil {
		response.Fail(c, http.StatusServiceUnavailable, "Poster storage is not configured")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPosterBytes+1<<10)
	fh, err := c.FormFile("image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide an image file")
		return
	}
	if fh.Size > MaxPosterBytes {
		response.Fail(c, http.StatusBadRequest, "Image cannot exceed 5MB")
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Fail(c, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide an image file")
		return
	}
	defer f.Close()

	url, err := h.posters.UploadPoster(c.Request.Context(), fh.Filename, f, fh.Size, contentType)
	if err != nil {
		logger.Errorf("error in uploading poster: %v", err)
		response.Fail(c, http.StatusInternalServerError, "Server Error")
		return
	}
	response.Data(c, http.StatusCreated, gin.H{"url": url})
}
