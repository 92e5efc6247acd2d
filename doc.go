// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ClassPulse server.

ClassPulse coordinates a live classroom poll: a teacher broadcasts a
question with options, connected students vote once each, tallies
stream back in real time, and the poll expires after its time limit.

# Starting the Server

	go run main.go

Or with flags:

	go run main.go -p 10000 -o "https://classroom.example.com"

# Configuration

Optional settings (flags or environment):

  - PORT (-p): server port (default: 10000)
  - ALLOWED_ORIGIN (-o): CORS/WebSocket origin (default: "*")
  - DEFAULT_TIME_LIMIT_MS (-t): fallback poll time limit (default: 60000)

# Architecture

All session state is held in memory by one coordinator behind a single
lock; there is no database and no cross-process state:

  - session: roster, poll lifecycle, tallies, history, expiry timer
  - realtime: WebSocket endpoint, connection hub, message protocol
  - handlers: read-only HTTP views of the live session
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: wire and domain types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
