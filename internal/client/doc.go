// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync service process runtime.
//
// It wires the record store, the device-data provider, metrics, services,
// the control API and the sync loop into a single process lifecycle, and
// tears them down on SIGINT, SIGTERM or SIGQUIT.
package client
