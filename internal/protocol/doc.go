// Package protocol defines the wire format spoken over the chat
// backend's WebSocket connection.
//
// # Outbound commands
//
// Commands are JSON objects with a "type" discriminator:
//
//	{"type":"authenticate","token":"<jwt>"}
//	{"type":"create_conversation","participant":"<user uuid>"}
//	{"type":"say","message":"hi","conversation_id":"<conversation uuid>"}
//
// Encode produces the exact payload that goes on the wire (and into the
// frame log).
//
// # Inbound frames
//
// The server replies with tagged JSON frames, type one of "chat", "info"
// or "error". Classify turns a raw frame into exactly one Event; frames
// that fail to parse, use an unknown type, or omit a required field
// become KindUnparseable and carry the raw payload untouched.
//
// # Conversation-id sniffing
//
// The server announces new conversations only inside human-readable info
// text. SniffConversationID implements the heuristic the console uses to
// auto-fill the active conversation id from that text; see its doc
// comment for the AUTH OK exclusion rule and the heuristic's limits.
package protocol
