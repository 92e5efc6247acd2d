// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the route table using Go 1.22+ method and path
patterns on the standard library ServeMux.

Routes:

	GET /health      → liveness probe
	GET /ws          → WebSocket upgrade (realtime protocol)
	GET /api/poll    → current poll snapshot
	GET /api/history → expired polls
	GET /api/roster  → connected participants
	GET /            → API banner

The returned handler is wrapped in CORS for the configured origin.
*/
package router
