// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the read-only HTTP API over the live session.

All mutations travel over the WebSocket protocol (package realtime);
these endpoints expose snapshots for dashboards and debugging:

	GET /api/poll    → GetCurrentPoll (404 when no poll is active)
	GET /api/history → GetHistory (expired polls, most recent first)
	GET /api/roster  → GetRoster (connectionId → name)

Handlers hold the coordinator and return point-in-time copies, so a
response never reflects a half-applied state change.
*/
package handlers
