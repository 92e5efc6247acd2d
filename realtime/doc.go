// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime is the broadcast gateway between the session
coordinator and connected WebSocket clients.

# Hub

Hub implements session.Gateway: a registry of per-connection buffered
event channels. Broadcast and SendTo never block; a subscriber that
cannot keep up loses events and recovers from the next full-snapshot
broadcast.

# Protocol

Clients send JSON messages {id?, type, payload} and receive one ack
{id, ok, error?, code?, data?} per message, plus server-pushed events
{type, payload}. HandleMessage contains the full dispatch table and is
independent of the transport, so it is tested without sockets.

# Transport

ServeWS upgrades GET /ws with gorilla/websocket. One goroutine reads
and dispatches; one goroutine owns all writes (events and acks), since
gorilla connections allow a single concurrent writer. Closing the
socket is the disconnect request: the participant is removed from the
roster and the roster update is broadcast.
*/
package realtime
