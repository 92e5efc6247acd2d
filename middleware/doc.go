// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by the read-only API:
request logging, JSON response encoding, and CORS.

WithLogging wraps individual handlers; CORS wraps the whole router so
the browser client can reach both the API and the WebSocket endpoint
from a different origin.
*/
package middleware
