package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/wear-health-sync/internal/metrics"
	"github.com/MKhiriev/wear-health-sync/models"
)

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
	body   string
}

// expectedRoutes lists every route that Init() must register.
var expectedRoutes = []routeCase{
	{http.MethodGet, "/api/version/", ""},
	{http.MethodGet, "/metrics", ""},
	{http.MethodGet, "/api/health/state", ""},
	{http.MethodGet, "/api/health/latest", ""},
	{http.MethodGet, "/api/health/history", ""},
	{http.MethodPost, "/api/health/sync", ""},
	{http.MethodDelete, "/api/health/error", ""},
	{http.MethodPost, "/api/app/state", `{"state":"active"}`},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	d := newTestDeps(t)
	d.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("test-version").AnyTimes()
	d.sync.EXPECT().Snapshot().Return(models.SyncSnapshot{Latest: &testRecord}).AnyTimes()
	d.sync.EXPECT().TriggerManual(gomock.Any()).Return(models.OutcomeSuccess, nil).AnyTimes()
	d.sync.EXPECT().ClearError().AnyTimes()
	d.sync.EXPECT().AppStateChanged(gomock.Any(), gomock.Any()).Return(false).AnyTimes()

	h := d.handler(WithMetrics(metrics.New()))

	for _, tc := range expectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := serve(h, tc.method, tc.path, strings.NewReader(tc.body), nil)

			assert.NotEqual(t, http.StatusNotFound, rec.Code, "route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code, "method not allowed: %s %s", tc.method, tc.path)
		})
	}
}

func TestInit_MetricsRouteOnlyWithMetrics(t *testing.T) {
	d := newTestDeps(t)

	rec := serve(d.handler(), http.MethodGet, "/metrics", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	d := newTestDeps(t)

	rec := serve(d.handler(), http.MethodGet, "/api/nonexistent", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	tests := []routeCase{
		{method: http.MethodPost, path: "/api/health/state"},
		{method: http.MethodGet, path: "/api/health/sync"},
		{method: http.MethodPut, path: "/api/app/state"},
		{method: http.MethodDelete, path: "/api/version/"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			d := newTestDeps(t)

			rec := serve(d.handler(), tc.method, tc.path, nil, nil)

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestInit_ResponsesCarryTraceID(t *testing.T) {
	d := newTestDeps(t)
	d.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.0.0")

	rec := serve(d.handler(), http.MethodGet, "/api/version/", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_RequestsAreCounted(t *testing.T) {
	d := newTestDeps(t)
	d.sync.EXPECT().Snapshot().Return(models.SyncSnapshot{}).Times(2)
	m := metrics.New()
	h := d.handler(WithMetrics(m))

	serve(h, http.MethodGet, "/api/health/state", nil, nil)
	serve(h, http.MethodGet, "/api/health/state", nil, nil)

	rec := serve(h, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`healthsync_api_requests_total{method="GET",route="/api/health/state",status="OK"} 2`)
}

func TestInit_RecoversFromPanics(t *testing.T) {
	d := newTestDeps(t)
	d.sync.EXPECT().Snapshot().DoAndReturn(func() models.SyncSnapshot {
		panic("boom")
	})

	rec := serve(d.handler(), http.MethodGet, "/api/health/state", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
