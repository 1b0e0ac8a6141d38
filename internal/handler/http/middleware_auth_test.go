package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/wear-health-sync/internal/app"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/service"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
	"github.com/MKhiriev/wear-health-sync/models"
)

// ---- Helpers ----

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func tokenFor(subject string) models.Token {
	return models.Token{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}}
}

// ---- Table test ----

func TestAuth_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		setup          func(d *testDeps)
		wantStatus     int
		wantNextCalled bool
		wantMessage    string
	}{
		{
			name:        "missing header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:        "no token part",
			header:      "Bearer",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:        "wrong scheme",
			header:      "Basic dXNlcjpwYXNz",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:   "invalid token",
			header: "Bearer garbage",
			setup: func(d *testDeps) {
				d.auth.EXPECT().ParseToken(gomock.Any(), "garbage").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(d *testDeps) {
				d.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(tokenFor("phone"), nil)
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:   "lowercase scheme",
			header: "bearer good",
			setup: func(d *testDeps) {
				d.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(tokenFor("phone"), nil)
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(d.handler(), tt.header, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decode[utils.ErrorResponse](t, rr).Error)
			}
		})
	}
}

func TestAuth_StoresSubjectInContext(t *testing.T) {
	d := newTestDeps(t)
	d.auth.EXPECT().ParseToken(gomock.Any(), "tok").Return(tokenFor("phone-shell"), nil)

	var subject string
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, found = utils.GetSubjectFromContext(r.Context())
	})

	executeAuth(d.handler(), "Bearer tok", next)

	require.True(t, found)
	assert.Equal(t, "phone-shell", subject)
}

func TestAuth_TagsRequestLoggerWithSubject(t *testing.T) {
	tests := []struct {
		name        string
		subject     string
		wantSubject bool
	}{
		{name: "subject present", subject: "phone-shell", wantSubject: true},
		{name: "empty subject", subject: "", wantSubject: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			d.auth.EXPECT().ParseToken(gomock.Any(), "tok").Return(tokenFor(tt.subject), nil)

			var buf bytes.Buffer
			base := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("handled")
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer tok")
			req = req.WithContext(base.WithContext(req.Context()))
			d.handler().auth(next).ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			assert.Contains(t, out, `"trace_id":"t-1"`)
			if tt.wantSubject {
				assert.Contains(t, out, `"subject":"phone-shell"`)
			} else {
				assert.NotContains(t, out, `"subject"`)
			}
		})
	}
}

func TestAuth_UnexpectedParseErrorIsRejected(t *testing.T) {
	d := newTestDeps(t)
	d.auth.EXPECT().ParseToken(gomock.Any(), "tok").Return(models.Token{}, fmt.Errorf("wrapped: %w", errors.New("boom")))

	rr := executeAuth(d.handler(), "Bearer tok", http.NotFoundHandler())

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_ProtectsControlRoutes(t *testing.T) {
	protected := []routeCase{
		{method: http.MethodGet, path: "/api/health/state"},
		{method: http.MethodGet, path: "/api/health/latest"},
		{method: http.MethodGet, path: "/api/health/history"},
		{method: http.MethodPost, path: "/api/health/sync"},
		{method: http.MethodDelete, path: "/api/health/error"},
		{method: http.MethodPost, path: "/api/app/state"},
	}

	for _, tc := range protected {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			d := newTestDeps(t)

			rec := serve(d.handler(WithAuth(true)), tc.method, tc.path, nil, nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_ValidTokenReachesHandler(t *testing.T) {
	d := newTestDeps(t)
	d.auth.EXPECT().ParseToken(gomock.Any(), "tok").Return(tokenFor("cli"), nil)
	d.sync.EXPECT().ClearError()

	rec := serve(d.handler(WithAuth(true)), http.MethodDelete, "/api/health/error", nil,
		map[string]string{"Authorization": "Bearer tok"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
