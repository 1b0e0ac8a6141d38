// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppState is the host application's lifecycle state as reported by the
// platform: active (foreground), inactive (transitioning) or background.
type AppState string

const (
	AppStateActive     AppState = "active"
	AppStateInactive   AppState = "inactive"
	AppStateBackground AppState = "background"
)

// ParseAppState validates s and returns it as an [AppState].
func ParseAppState(s string) (AppState, error) {
	switch st := AppState(s); st {
	case AppStateActive, AppStateInactive, AppStateBackground:
		return st, nil
	default:
		return "", fmt.Errorf("unknown app state %q", s)
	}
}

// IsActive reports whether the app is in the foreground.
func (s AppState) IsActive() bool {
	return s == AppStateActive
}

// AppStateRequest is the body of a lifecycle notification.
type AppStateRequest struct {
	State string `json:"state"`
}

// AppStateResponse tells the host whether the notification started a cycle.
type AppStateResponse struct {
	Triggered bool `json:"triggered"`
}
