// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// HealthRecord is a single timestamped snapshot of the four tracked metrics.
//
// Records are produced by a data provider and are never mutated afterwards;
// they are passed around by value. ID is empty until a store assigns one.
type HealthRecord struct {
	// ID is the store-assigned identifier (UUIDv7). Empty for records that
	// have not been persisted yet.
	ID string `json:"id,omitempty"`

	// HeartRate in beats per minute.
	HeartRate int `json:"heart_rate"`

	// Steps taken.
	Steps int `json:"steps"`

	// SleepHours is the amount of sleep in hours, in 0.5h steps for the
	// simulated source.
	SleepHours float64 `json:"sleep_hours"`

	// ScreenTimeMinutes is the watch screen-on time in minutes.
	ScreenTimeMinutes int `json:"screen_time_minutes"`

	// Timestamp is the moment the reading was taken. Serialized as RFC 3339.
	Timestamp time.Time `json:"timestamp"`
}

// WithID returns a copy of r carrying the given identifier.
func (r HealthRecord) WithID(id string) HealthRecord {
	r.ID = id
	return r
}

// NewerThan reports whether r was taken strictly after other.
func (r HealthRecord) NewerThan(other HealthRecord) bool {
	return r.Timestamp.After(other.Timestamp)
}
