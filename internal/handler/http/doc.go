// Package http implements the control API of the sync service.
//
// It exposes route wiring, request handlers, and middleware. The host
// application reads the sync snapshot and sends manual triggers and
// lifecycle notifications through it. Request tracing, access logging,
// request metrics and optional bearer-token authentication are handled here
// before requests reach the service layer.
package http
