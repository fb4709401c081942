// Package ws streams live replay progress to WebSocket clients. It
// mirrors the connection-management half of a pub/sub hub: a registry
// of connected clients, a ticker-driven broadcast loop, and per-client
// pumps that keep the socket alive with ping/pong frames. Unlike a
// multi-topic hub, there is exactly one feed — the progress.Tracker of
// whichever replay is currently running — so the broadcast payload is
// always the same shape.
package ws
