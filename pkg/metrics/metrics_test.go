package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("api")

	r := gin.New()
	r.Use(m.Middleware("api"))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("api", "GET", "/healthz", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("api", "GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestInFlight))
}

func TestRecordPipeline(t *testing.T) {
	m := New("api")
	m.RecordClassification("invoice", 100)
	m.RecordClassification("unknown_file", 40)
	m.RecordClassification("invoice", 92.5)
	m.RecordExtractionFailure("extract")
	m.RecordExtractionFailure("")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.classificationsTotal.WithLabelValues("invoice")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.extractionFailures.WithLabelValues("extract")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.extractionFailures.WithLabelValues("unknown")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New("api")
	m.RecordClassification("passport", 88)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `classifier_pipeline_classifications_total{class="passport"} 1`)
	assert.Contains(t, string(body), "classifier_pipeline_confidence_bucket")
}
