package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/microbiomedata/nmdc-orcid-creditor/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordClaimOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)

	c.RecordClaimOutcome("claimed")
	c.RecordClaimOutcome("claimed")
	c.RecordClaimOutcome("no_matching_credit")

	expected := `
# HELP orcid_creditor_claims_total Claim attempts by outcome
# TYPE orcid_creditor_claims_total counter
orcid_creditor_claims_total{outcome="claimed"} 2
orcid_creditor_claims_total{outcome="no_matching_credit"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "orcid_creditor_claims_total"))
}

func TestCollector_InstrumentClient(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer upstream.Close()

	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	client := c.InstrumentClient("orcid", upstream.Client())

	resp, err := client.Post(upstream.URL, "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	expected := `
# HELP orcid_creditor_upstream_requests_total Requests to ORCID and the ledger proxy by status code
# TYPE orcid_creditor_upstream_requests_total counter
orcid_creditor_upstream_requests_total{code="201",method="post",upstream="orcid"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "orcid_creditor_upstream_requests_total"))
	count, err := testutil.GatherAndCount(reg, "orcid_creditor_upstream_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollector(reg)
	c.RecordClaimOutcome("claimed")

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `orcid_creditor_claims_total{outcome="claimed"} 1`)
}
