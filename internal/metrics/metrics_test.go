package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripper_CountsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Transport: NewRoundTripper(nil)}

	before := testutil.CollectAndCount(requestsTotal)

	resp, err := client.Get(server.URL + "/admin/users")
	require.NoError(t, err)
	defer resp.Body.Close()

	after := testutil.CollectAndCount(requestsTotal)
	assert.Greater(t, after, before-1)

	count := testutil.ToFloat64(requestsTotal.WithLabelValues(http.MethodGet, "/admin/users", "200"))
	assert.GreaterOrEqual(t, count, float64(1))
}

func TestNewRoundTripper_DefaultsToDefaultTransport(t *testing.T) {
	rt := NewRoundTripper(nil)
	assert.Equal(t, http.DefaultTransport, rt.next)
}
