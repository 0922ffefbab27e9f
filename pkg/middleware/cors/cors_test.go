package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(origins []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/terms", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(method, "/terms", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAllowListedOrigin(t *testing.T) {
	rec := serve([]string{"http://localhost:3000/"}, http.MethodGet, "http://localhost:3000")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestRejectUnknownOrigin(t *testing.T) {
	rec := serve([]string{"http://localhost:3000"}, http.MethodGet, "http://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWildcardAndPreflight(t *testing.T) {
	rec := serve([]string{"*"}, http.MethodGet, "")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(nil, http.MethodOptions, "http://any.example")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://any.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
