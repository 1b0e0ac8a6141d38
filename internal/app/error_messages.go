// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// sync controller and the control API.
//
// All Msg* constants are human-readable message strings that end up in
// SyncSnapshot.LastError, HTTP response bodies or log entries. Keeping them in
// one place ensures consistent wording throughout.
package app

// User-facing sync failure messages stored in lastError.
const (
	// MsgPermissionDenied is set when the platform refused access to health data.
	MsgPermissionDenied = "permission denied"

	// MsgConnectionError is set when the watch could not be reached.
	MsgConnectionError = "connection error"

	// MsgFetchError is set when reading the metrics from the watch failed.
	MsgFetchError = "fetch error"

	// MsgPersistError is set when the fetched record could not be saved.
	MsgPersistError = "persist error"

	// MsgAlreadySyncing is returned to a manual trigger that was dropped
	// because a cycle is already running. It is never stored in lastError.
	MsgAlreadySyncing = "already syncing"
)

// Control API messages.
const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgUnknownAppState is returned when a lifecycle notification carries a
	// state other than active, inactive or background.
	MsgUnknownAppState = "unknown app state"

	// MsgNoRecordYet is returned by the latest-record endpoint before the
	// first successful fetch.
	MsgNoRecordYet = "no health record yet"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"
)
