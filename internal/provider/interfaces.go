// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package provider reads health metrics from the wearable.
//
// The primary abstraction is [DataProvider], which decouples the sync
// controller from where the numbers come from. Two implementations ship:
// a simulated generator ([NewSimulatedProvider]) and an HTTP client for a
// watch bridge ([NewHTTPProvider]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of transport.
package provider

import (
	"context"

	"github.com/MKhiriev/wear-health-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/provider_mock.go -package=mock

// DataProvider is the device-data source.
type DataProvider interface {
	// RequestPermission asks the platform for access to health data.
	// Returns true when access is granted.
	RequestPermission(ctx context.Context) (bool, error)

	// Connect checks that the watch is reachable. A false result with a nil
	// error means the device is simply not connected.
	Connect(ctx context.Context) (bool, error)

	// Fetch reads one snapshot of the four metrics, timestamped now.
	Fetch(ctx context.Context) (models.HealthRecord, error)
}
