package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/apperr"
)

func run(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/", h)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestEnvelopes(t *testing.T) {
	w := run(func(c *gin.Context) { Data(c, http.StatusCreated, []int{}) })
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())

	w = run(func(c *gin.Context) { Message(c, http.StatusOK, "Movie Deleted!") })
	require.JSONEq(t, `{"success":true,"message":"Movie Deleted!"}`, w.Body.String())

	w = run(func(c *gin.Context) { Fail(c, http.StatusBadRequest, "nope") })
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"success":false,"message":"nope"}`, w.Body.String())
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apperr.Validation("Please provide text and username", "text"), http.StatusBadRequest, "Please provide text and username"},
		{apperr.NotFound(apperr.ReasonMalformedID, "Invalid Movie Id!"), http.StatusNotFound, "Invalid Movie Id!"},
		{apperr.Forbidden("You can only edit your own comments"), http.StatusForbidden, "You can only edit your own comments"},
		{apperr.Server(errors.New("socket closed")), http.StatusInternalServerError, apperr.ServerMessage},
		{errors.New("raw"), http.StatusInternalServerError, apperr.ServerMessage},
	}
	for _, tc := range cases {
		w := run(func(c *gin.Context) { Error(c, tc.err) })
		require.Equal(t, tc.status, w.Code, tc.msg)
		require.JSONEq(t, `{"success":false,"message":"`+tc.msg+`"}`, w.Body.String())
	}
}
