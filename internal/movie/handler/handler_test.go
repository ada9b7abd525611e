package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/ident"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie/repository"
	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type fakePosters struct {
	gotName string
	gotBody string
	err     error
}

func (f *fakePosters) UploadPoster(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.gotName = filename
	f.gotBody = string(b)
	return "http://minio:9000/posters/posters/abc.png", nil
}

func newEngine(posters PosterStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	svc := service.NewService(repository.NewMemoryRepo())
	NewHandler(svc, posters).Register(g.Group("/api"))
	return g
}

func do(g *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestMovieHandler_CRUD(t *testing.T) {
	g := newEngine(nil)

	// create
	w, env := do(g, http.MethodPost, "/api/movies", `{"title":"Dune","category":"Sci-Fi","image":"http://x/i.jpg","description":"desert planet"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	id, _ := created["_id"].(string)
	require.True(t, ident.Valid(id))

	// get
	w, env = do(g, http.MethodGet, "/api/movies/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "desert planet", got["description"])

	// list with caching disabled
	w, env = do(g, http.MethodGet, "/api/movies", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)

	// partial update
	w, env = do(g, http.MethodPut, "/api/movies/"+id, `{"title":"Dune: Part One"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Dune: Part One", updated["title"])
	assert.Equal(t, "Sci-Fi", updated["category"])

	// delete twice: both succeed
	w, env = do(g, http.MethodDelete, "/api/movies/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Movie Deleted!", env.Message)
	w, _ = do(g, http.MethodDelete, "/api/movies/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(g, http.MethodGet, "/api/movies/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Movie not found!", env.Message)
}

func TestMovieHandler_EmptyListIsArray(t *testing.T) {
	g := newEngine(nil)
	w, env := do(g, http.MethodGet, "/api/movies", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", string(env.Data))
}

func TestMovieHandler_Errors(t *testing.T) {
	g := newEngine(nil)

	w, env := do(g, http.MethodPost, "/api/movies", `{"title":"Dune"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "category, image, description")

	w, _ = do(g, http.MethodPost, "/api/movies", `{"title":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w, env = do(g, method, "/api/movies/m1", "")
		require.Equal(t, http.StatusNotFound, w.Code, method)
		assert.Equal(t, "Invalid Movie Id!", env.Message)
	}

	w, _ = do(g, http.MethodPut, "/api/movies/"+ident.New(), `{"title":"x"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func multipartImage(t *testing.T, field, filename, contentType, body string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestMovieHandler_UploadPoster(t *testing.T) {
	store := &fakePosters{}
	g := newEngine(store)

	body, ct := multipartImage(t, "image", "dune.png", "image/png", "PNGDATA")
	req := httptest.NewRequest(http.MethodPost, "/api/movies/posters", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "http://minio:9000/posters/posters/abc.png")
	require.Equal(t, "dune.png", store.gotName)
	require.Equal(t, "PNGDATA", store.gotBody)

	// non-image content type
	body, ct = multipartImage(t, "image", "notes.txt", "text/plain", "hello")
	req = httptest.NewRequest(http.MethodPost, "/api/movies/posters", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// storage failure is a generic 500
	store.err = errors.New("bucket gone")
	body, ct = multipartImage(t, "image", "dune.png", "image/png", "PNGDATA")
	req = httptest.NewRequest(http.MethodPost, "/api/movies/posters", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "bucket gone")
}

func TestMovieHandler_UploadPosterWithoutStorage(t *testing.T) {
	g := newEngine(nil)
	body, ct := multipartImage(t, "image", "dune.png", "image/png", "PNGDATA")
	req := httptest.NewRequest(http.MethodPost, "/api/movies/posters", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
