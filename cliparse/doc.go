// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags with
environment variable fallback.

Settings:

  - PORT (-p): server port (default: 10000)
  - ALLOWED_ORIGIN (-o): CORS/WebSocket origin (default: "*")
  - DEFAULT_TIME_LIMIT_MS (-t): poll time limit applied when a create
    request omits one (default: 60000)

A .env file in the working directory is loaded by main before parsing,
so all settings can live there during development.
*/
package cliparse
