package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/wear-health-sync/internal/app"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
	"github.com/MKhiriev/wear-health-sync/models"
)

func TestAppStateChanged_ForwardsState(t *testing.T) {
	tests := []struct {
		state     models.AppState
		triggered bool
	}{
		{models.AppStateActive, true},
		{models.AppStateInactive, false},
		{models.AppStateBackground, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			d := newTestDeps(t)
			d.sync.EXPECT().AppStateChanged(gomock.Any(), tt.state).Return(tt.triggered)

			body := jsonBody(t, models.AppStateRequest{State: string(tt.state)})
			rec := serve(d.handler(), http.MethodPost, "/api/app/state", body, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, models.AppStateResponse{Triggered: tt.triggered}, decode[models.AppStateResponse](t, rec))
		})
	}
}

func TestAppStateChanged_BadRequests(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{name: "invalid JSON", body: `{"state":`, wantMessage: app.MsgInvalidDataProvided},
		{name: "empty body", body: ``, wantMessage: app.MsgInvalidDataProvided},
		{name: "unknown state", body: `{"state":"suspended"}`, wantMessage: app.MsgUnknownAppState},
		{name: "missing state", body: `{}`, wantMessage: app.MsgUnknownAppState},
		{name: "wrong case", body: `{"state":"Active"}`, wantMessage: app.MsgUnknownAppState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)

			rec := serve(d.handler(), http.MethodPost, "/api/app/state", strings.NewReader(tt.body), nil)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMessage, decode[utils.ErrorResponse](t, rec).Error)
		})
	}
}
