// Package ipc exposes the record catalog over JSON-RPC Unix sockets and
// ships the matching client used by the CLI.
//
// It owns socket lifecycle management and the request/response DTOs. Every
// response embeds a Result envelope: domain failures (invalid payloads,
// unknown ids) travel there while transport errors surface through the RPC
// layer, so the client can tell a rejected request from a dead daemon.
//
// Reuse these types when adding new RPC endpoints to keep the protocol
// stable and compatible with existing command implementations.
package ipc
