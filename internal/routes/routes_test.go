package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutMiddleware_AttachesDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deadline time.Time
	var ok bool

	router := gin.New()
	router.Use(timeoutMiddleware(5 * time.Second))
	router.GET("/", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok, "handler context must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestRequestTimeout_FromEnv(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "30s")
	assert.Equal(t, 30*time.Second, requestTimeout())

	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	assert.Equal(t, defaultRequestTimeout, requestTimeout())

	t.Setenv("REQUEST_TIMEOUT", "")
	assert.Equal(t, defaultRequestTimeout, requestTimeout())
}
