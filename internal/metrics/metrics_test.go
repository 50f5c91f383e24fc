package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCounters(t *testing.T) {
	m := New()
	m.StatusChanged("PENDENTE", "EM_ANDAMENTO")
	m.StatusChanged("PENDENTE", "PENDENTE")
	m.CommentsViewed(3)
	m.CommentsViewed(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("PENDENTE", "EM_ANDAMENTO")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.commentsViewed))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.StatusChanged("A", "B")
		nilMetrics.CommentsViewed(1)
		nilMetrics.NotificationSent("email", nil)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping/2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/ping/:id", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `construtora_http_requests_total{code="200",method="GET",route="/ping/:id"} 2`)
}
