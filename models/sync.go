// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncOutcome is the terminal state of a single sync cycle.
type SyncOutcome string

const (
	// OutcomeSuccess means the record was fetched and persisted.
	OutcomeSuccess SyncOutcome = "success"
	// OutcomeConnectionFailed means the device could not be reached.
	OutcomeConnectionFailed SyncOutcome = "connection_failed"
	// OutcomeFetchFailed means the device was reachable but the read failed.
	OutcomeFetchFailed SyncOutcome = "fetch_failed"
	// OutcomePersistFailed means the read succeeded but the store rejected it.
	OutcomePersistFailed SyncOutcome = "persist_failed"
	// OutcomeDropped means another cycle was in flight and the trigger was discarded.
	OutcomeDropped SyncOutcome = "dropped"
)

// Failed reports whether the outcome is one of the failure states.
// A dropped trigger is not a failure.
func (o SyncOutcome) Failed() bool {
	switch o {
	case OutcomeConnectionFailed, OutcomeFetchFailed, OutcomePersistFailed:
		return true
	}
	return false
}

// TriggerSource names what requested a sync cycle.
type TriggerSource string

const (
	TriggerInitial    TriggerSource = "initial"
	TriggerTimer      TriggerSource = "timer"
	TriggerManual     TriggerSource = "manual"
	TriggerForeground TriggerSource = "foreground"
)

// SyncSnapshot is a read-only copy of the sync state handed to consumers.
// Mutating a snapshot has no effect on the controller.
type SyncSnapshot struct {
	// Latest is the most recently fetched record, nil before the first
	// successful read.
	Latest *HealthRecord `json:"latest"`

	// History holds the most recent persisted records, newest first.
	History []HealthRecord `json:"history"`

	// IsSyncing is true while a cycle is in flight.
	IsSyncing bool `json:"is_syncing"`

	// LastError is the user-facing message of the last failed attempt,
	// empty when the last attempt succeeded or the error was cleared.
	LastError string `json:"last_error,omitempty"`

	// LastSyncTime is the time of the last successful persist.
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`
}

// SyncResponse is the body returned to a manual sync request.
type SyncResponse struct {
	Outcome SyncOutcome `json:"outcome"`
	Error   string      `json:"error,omitempty"`
}
